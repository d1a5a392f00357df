// Package visitor walks the step.ASTNode tree every step publishes,
// computing merged metadata and emitting JSON-Schema. These live
// outside package step to avoid a step<->visitor import cycle: step
// types expose only AST(), and Metadata/JSONSchema are free functions
// over that AST rather than methods on step.Step itself.
package visitor
