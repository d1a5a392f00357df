package step

// Result is the monad every Step consumes and produces: a sum type of
// Valid(value) and Halt(value, errors). The zero value is not meaningful;
// always construct one with Wrap.
//
// Invariant: value is always present, even on Halt, so callers can
// inspect the offending value when reporting errors.
type Result struct {
	value   any
	errors  any
	isValid bool
}

// Wrap builds a Valid Result around v.
func Wrap(v any) Result {
	return Result{value: v, isValid: true}
}

// Value returns the carried value. Present on both Valid and Halt results.
func (r Result) Value() any { return r.value }

// Errors returns the structured errors payload. Nil on a Valid result.
func (r Result) Errors() any { return r.errors }

// IsValid reports whether r is the Valid variant.
func (r Result) IsValid() bool { return r.isValid }

// IsHalt reports whether r is the Halt variant.
func (r Result) IsHalt() bool { return !r.isValid }

// Valid returns a new Valid Result carrying v. Typically used to replace
// the value after a successful transform.
func (r Result) Valid(v any) Result {
	return Result{value: v, isValid: true}
}

// Halt returns a new Halt Result carrying errs. If value is supplied, it
// replaces the carried value; otherwise the current value is kept so
// callers can still see what was being validated when it failed.
func (r Result) Halt(errs any, value ...any) Result {
	v := r.value
	if len(value) > 0 {
		v = value[0]
	}
	return Result{value: v, errors: errs, isValid: false}
}
