// Package plumb is a data-validation and transformation engine: small
// steps — predicates, coercions, transforms, static values — compose
// via algebraic operators (And, Or, Not, Default) into larger types that
// validate, coerce, and reshape arbitrary input data, producing either a
// typed value or a structured error tree.
//
// # Overview
//
// The library is split across four packages:
//
//   - step: the Result monad, the Step contract, and the composition
//     operators (And, Or, Not, Deferred, Pipeline) over leaf steps.
//   - types: the compound types built from steps — Array, Tuple,
//     HashClass (schema and map modes), HashMap, TaggedHash, Stream.
//   - visitor: read-only AST visitors — Metadata and JSONSchema — kept
//     separate from step to avoid an import cycle with types.
//   - schema: a thin builder DSL over types.HashClass, including a YAML
//     loader.
//
// # Quick start
//
//	import (
//		"github.com/glaszig/plumb/step"
//		"github.com/glaszig/plumb/types"
//	)
//
//	person := types.Schema(
//		types.F("name", step.Match(step.TypeOfValue(""))),
//		types.Opt("nickname", step.Any()),
//	)
//
//	value, err := step.Parse(person, map[string]any{"name": "Ismael"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Companion binaries
//
// cmd/plumb is a small CLI demonstrating schema validation and JSON
// Schema projection from the command line. cmd/plumbmcp exposes the same
// operations as an MCP server over stdio. Both are built on the public
// step/types/visitor/schema surface plus the generic helpers under
// internal/ (cliutil, maputil, options, textutil).
package plumb
