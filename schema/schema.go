package schema

import (
	"strings"

	"github.com/glaszig/plumb/internal/maputil"
	"github.com/glaszig/plumb/step"
	"github.com/glaszig/plumb/types"
)

// Def is a map-literal schema definition, one entry per field. A string
// key ending in "?" declares an optional field, matching spec.md §4.4's
// "foo?" notation. A value may be a step.Step (used directly), a
// map[string]any (recursed into a nested From schema), or any other
// literal (desugared directly to step.Static, so the field always
// resolves to that constant regardless of the input value).
type Def map[string]any

// From reduces def to a *types.HashClass, in a stable key order (sorted
// by declared key, including any "?" suffix) so repeated calls over the
// same literal produce an identical field order.
func From(def Def) *types.HashClass {
	fields := make(types.Fields, 0, len(def))
	for _, declared := range maputil.SortedKeys(def) {
		name := strings.TrimSuffix(declared, "?")
		optional := strings.HasSuffix(declared, "?")
		fieldType := toStep(def[declared])
		if optional {
			fields = append(fields, types.Opt(name, fieldType))
		} else {
			fields = append(fields, types.F(name, fieldType))
		}
	}
	return types.Schema(fields...)
}

func toStep(v any) step.Step {
	switch t := v.(type) {
	case step.Step:
		return t
	case Def:
		return From(t)
	case map[string]any:
		return From(Def(t))
	default:
		return step.Static(t)
	}
}
