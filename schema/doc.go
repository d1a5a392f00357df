// Package schema is a thin, optional builder DSL over types.HashClass
// (spec.md §1 Out of scope: "the thin Schema builder DSL (sugar over
// Hash-schema)"). It lets callers describe a schema as a map literal —
// bare literals desugar to step.Static, step.Step values are used as
// declared — and load the same shape from YAML via go.yaml.in/yaml/v4.
package schema
