// Package types implements plumb's compound value shapes: Array, Tuple,
// Hash (schema mode and map mode), HashMap, TaggedHash, and Stream. Each
// type is a step.Step built by composing the step package's primitives
// over the shape's structural traversal (index for Array/Tuple, key for
// Hash/HashMap, discriminator for TaggedHash).
package types
