package types

import (
	"fmt"

	"github.com/glaszig/plumb/internal/maputil"
	"github.com/glaszig/plumb/step"
)

// Hook runs before or after a Hash's field validation and may itself
// Halt (spec.md §9 Open Question: before and after are two distinct,
// independently optional slots — before runs ahead of field
// validation, after runs once every field has validated successfully).
type Hook func(step.Result) step.Result

// Field is one declared entry of a schema-mode Hash: a name, whether it
// is optional, and the step (or literal, desugared to Static) validating
// its value.
type Field struct {
	Name     string
	Optional bool
	Type     step.Step
}

// Fields is ordered schema-mode field input. Declaration order becomes
// output key order (spec.md §4.4: "Output mapping preserves declared
// key order").
type Fields []Field

// F is sugar for declaring a required field.
func F(name string, t step.Step) Field { return Field{Name: name, Type: t} }

// Opt is sugar for declaring an optional field ("foo?" in spec.md's
// notation).
func Opt(name string, t step.Step) Field { return Field{Name: name, Optional: true, Type: t} }

// HashClass is Hash's step, in either schema mode (declared Fields) or
// map mode (KeyType/ValueType over arbitrary entries).
type HashClass struct {
	fields    Fields
	keyType   step.Step
	valueType step.Step
	mapMode   bool
	before    Hook
	after     Hook
}

// Schema builds a schema-mode Hash from fields, in declaration order.
func Schema(fields ...Field) *HashClass {
	return &HashClass{fields: append(Fields(nil), fields...)}
}

// MapSchema builds a map-mode Hash: every entry's key must satisfy
// keyType and every entry's value must satisfy valueType (spec.md §4.4
// "schema(KeyType, ValueType) switches to map mode").
func MapSchema(keyType, valueType step.Step) *HashClass {
	return &HashClass{keyType: keyType, valueType: valueType, mapMode: true}
}

// Before attaches a hook run ahead of field validation; it receives the
// whole-input Result and may Halt to short-circuit the Hash entirely.
func (h *HashClass) Before(hook Hook) *HashClass {
	return &HashClass{fields: h.fields, keyType: h.keyType, valueType: h.valueType, mapMode: h.mapMode, before: hook, after: h.after}
}

// After attaches a hook run once every declared field has validated
// successfully; it receives the built-output Result and may still Halt.
func (h *HashClass) After(hook Hook) *HashClass {
	return &HashClass{fields: h.fields, keyType: h.keyType, valueType: h.valueType, mapMode: h.mapMode, before: h.before, after: hook}
}

// Keys returns the declared field keys, in order. Empty in map mode.
func (h *HashClass) Keys() []Key {
	keys := make([]Key, len(h.fields))
	for i, f := range h.fields {
		keys[i] = Key{Name: f.Name, Optional: f.Optional}
	}
	return keys
}

func (h *HashClass) Call(r step.Result) step.Result {
	if h.before != nil {
		r = h.before(r)
		if r.IsHalt() {
			return r
		}
	}

	m, ok := toMap(r.Value())
	if !ok {
		return r.Halt("must be a hash")
	}

	var result step.Result
	if h.mapMode {
		result = h.callMapMode(r, m)
	} else {
		result = h.callSchemaMode(r, m)
	}
	if result.IsHalt() || h.after == nil {
		return result
	}
	return h.after(result)
}

func (h *HashClass) callSchemaMode(r step.Result, m map[string]any) step.Result {
	out := make(map[string]any, len(h.fields))
	errs := make(map[string]any)

	for _, f := range h.fields {
		v, present := m[f.Name]
		if !present {
			if f.Optional {
				continue
			}
			v = step.Undefined
		}
		res := step.Resolve(f.Type, v)
		if res.IsHalt() {
			errs[f.Name] = res.Errors()
			continue
		}
		out[f.Name] = res.Value()
	}

	if len(errs) > 0 {
		return r.Halt(errs, out)
	}
	return r.Valid(out)
}

func (h *HashClass) callMapMode(r step.Result, m map[string]any) step.Result {
	out := make(map[string]any, len(m))
	errs := make(map[string]any)

	for _, k := range maputil.SortedKeys(m) {
		v := m[k]
		kr := step.Resolve(h.keyType, k)
		if kr.IsHalt() {
			errs[k] = fmt.Sprintf("key %v: %v", k, kr.Errors())
			continue
		}
		vr := step.Resolve(h.valueType, v)
		if vr.IsHalt() {
			errs[k] = vr.Errors()
			continue
		}
		out[k] = vr.Value()
	}

	if len(errs) > 0 {
		return r.Halt(errs, out)
	}
	return r.Valid(out)
}

// Merge implements "+": right wins on conflicting field types; a field
// optional on either side is optional in the result only if optional on
// both (spec.md §4.4).
func (h *HashClass) Merge(other *HashClass) *HashClass {
	byName := map[string]Field{}
	order := []string{}
	for _, f := range h.fields {
		byName[f.Name] = f
		order = append(order, f.Name)
	}
	for _, f := range other.fields {
		existing, had := byName[f.Name]
		merged := f
		if had {
			merged.Optional = existing.Optional && f.Optional
		} else {
			order = append(order, f.Name)
		}
		byName[f.Name] = merged
	}
	fields := make(Fields, len(order))
	for i, name := range order {
		fields[i] = byName[name]
	}
	return &HashClass{fields: fields}
}

// Intersect implements "&": only keys present in both, typed by the
// right operand, dropping everything else (spec.md §4.4).
func (h *HashClass) Intersect(other *HashClass) *HashClass {
	rightByName := map[string]Field{}
	for _, f := range other.fields {
		rightByName[f.Name] = f
	}
	fields := Fields{}
	for _, f := range h.fields {
		if rf, ok := rightByName[f.Name]; ok {
			fields = append(fields, rf)
		}
	}
	return &HashClass{fields: fields}
}

// Union implements "|" over two Hashes: a value that satisfies either
// (spec.md §4.4). The resulting step is an Or, not a HashClass, since a
// union no longer has a single fixed key set.
func (h *HashClass) Union(other *HashClass) step.Step {
	return step.Or(h, other)
}

// TaggedBy builds a TaggedHash dispatching on discriminator key k across
// variants (spec.md §4.4, §4.6).
func (h *HashClass) TaggedBy(k string, variants ...*HashClass) (step.Step, error) {
	return TaggedHash(k, variants...)
}

func (h *HashClass) AST() *step.ASTNode {
	if h.mapMode {
		return step.NewNode(step.TagHash, map[string]any{"map_mode": true}, h.keyType.AST(), h.valueType.AST())
	}
	children := make([]*step.ASTNode, len(h.fields))
	attrs := map[string]any{}
	required := []string{}
	for i, f := range h.fields {
		children[i] = step.NewNode(step.TagStep, map[string]any{"name": f.Name, "optional": f.Optional}, f.Type.AST())
		if !f.Optional {
			required = append(required, f.Name)
		}
	}
	attrs["required"] = required
	return &step.ASTNode{Tag: step.TagHash, Attrs: attrs, Children: children}
}

func (h *HashClass) Name() string {
	if h.mapMode {
		return "hash_map_mode"
	}
	return "hash"
}

var _ step.Step = (*HashClass)(nil)

func toMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	return nil, false
}
