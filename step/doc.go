// Package step implements the step algebra at the heart of plumb: the
// Result monad, the uniform Step contract, and the composition operators
// (sequence, union, negation, deferral) that every compound type in the
// types package is built from.
//
// # Overview
//
// Every validator, coercion, and transform in plumb is a Step: an
// immutable value exposing Call(Result) Result and AST() *ASTNode. Small
// steps compose into larger ones with the operators in this package:
//
//	age := step.And(
//	    step.Match(intType),
//	    step.Check("must be positive", func(v any) bool { return v.(int) > 0 }),
//	)
//
// Once built and published, a Step is frozen (see Freeze) and carries no
// per-call state; Result values are the only thing that varies between
// invocations.
//
// # Errors
//
// Resolve never fails — it always returns a Result. Parse unwraps a Valid
// Result or raises a *TypeError carrying the structured errors payload.
// See errors.go for the full error family, modeled on the teacher's
// oaserrors package.
package step
