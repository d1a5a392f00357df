package step

// undefinedType is the process-wide sentinel denoting "no value provided".
// It is distinct from nil: a field that was never supplied carries
// Undefined, while a field explicitly set to null/nil carries nil.
type undefinedType struct{}

func (undefinedType) String() string { return "Undefined" }

// Undefined is the sentinel value meaning "no value provided".
var Undefined any = undefinedType{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedType)
	return ok
}
