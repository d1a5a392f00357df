package step

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is(), mirroring the teacher's
// oaserrors package: one sentinel per structured error type so callers
// can branch without a type assertion.
var (
	// ErrType indicates parse() surfaced a Halt as a raised error.
	ErrType = errors.New("type error")

	// ErrConstruction indicates a step was built from a malformed shape:
	// an invalid YAML schema document, an unknown rule name, a TaggedHash
	// variant without a static discriminator, or similar construction-time
	// mistakes.
	ErrConstruction = errors.New("construction error")

	// ErrUnsupportedRule indicates a rule was attached to an incompatible
	// base type tag.
	ErrUnsupportedRule = errors.New("unsupported rule")

	// ErrDispatch indicates a TaggedHash found no variant for the
	// discriminator value it read.
	ErrDispatch = errors.New("dispatch error")
)

// TypeError is raised by Parse when resolution halts. It carries the
// same structured errors payload spec.md §7 describes living inside the
// Result: a string, a mapping, or an ordered list, depending on which
// combinator produced it.
type TypeError struct {
	// Value is the value that failed to validate.
	Value any
	// Errors is the structured errors payload from the halting Result.
	Errors any
}

// Error returns a human-readable message. It does not attempt to
// localize or otherwise prettify Errors beyond fmt's default formatting
// (spec.md Non-goals: no localized error messages).
func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: %v (value: %v)", e.Errors, e.Value)
}

// Is reports whether target matches this error type.
func (e *TypeError) Is(target error) bool { return target == ErrType }

// ConstructionError represents a malformed schema (schema.FromYAML,
// TaggedHash) or a rule name that is not registered (AttachRule). These
// are raised synchronously from the builder call that detected them,
// never from Call.
type ConstructionError struct {
	// Component names the constructor that rejected the input (e.g.
	// "Tuple", "Hash", "TaggedHash").
	Component string
	// Message describes the specific problem.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *ConstructionError) Error() string {
	msg := "construction error"
	if e.Component != "" {
		msg += " in " + e.Component
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConstructionError) Unwrap() error { return e.Cause }
func (e *ConstructionError) Is(target error) bool {
	return target == ErrConstruction
}

// UnsupportedRuleError is raised when a rule is attached to a base type
// whose tag is not in the rule's compatibility set (spec.md §4.7).
type UnsupportedRuleError struct {
	// Rule is the rule name that was rejected.
	Rule string
	// Arg is the argument the rule was given.
	Arg any
	// BaseType is the incompatible base type tag.
	BaseType TypeTag
}

func (e *UnsupportedRuleError) Error() string {
	return fmt.Sprintf("rule %q is not supported for base type %q (arg: %v)", e.Rule, e.BaseType, e.Arg)
}

func (e *UnsupportedRuleError) Is(target error) bool {
	return target == ErrUnsupportedRule
}

// DispatchError represents a TaggedHash dispatch-miss: the discriminator
// value read from the input did not match any declared variant.
type DispatchError struct {
	// Key is the discriminator field name.
	Key string
	// Value is the discriminator value that was read.
	Value any
	// Variants is the ordered list of valid discriminator values.
	Variants []any
}

func (e *DispatchError) Error() string {
	variants := make([]string, len(e.Variants))
	for i, v := range e.Variants {
		variants[i] = fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("expected :%s to be one of %s", e.Key, strings.Join(variants, ", "))
}

func (e *DispatchError) Is(target error) bool { return target == ErrDispatch }
