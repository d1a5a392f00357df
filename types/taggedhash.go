package types

import (
	"fmt"

	"github.com/glaszig/plumb/step"
)

// TaggedHash builds a discriminated union of hash-schema variants
// dispatching on the static value each declares at key k (spec.md
// §4.6). Construction fails if any variant isn't a schema-mode Hash,
// doesn't declare k, or k's type doesn't resolve to a static value.
func TaggedHash(k string, variants ...*HashClass) (step.Step, error) {
	variantByTag := map[any]*HashClass{}
	tags := make([]any, 0, len(variants))

	for _, v := range variants {
		if v.mapMode {
			return nil, &step.ConstructionError{Component: "TaggedHash", Message: "every variant must be a schema-mode hash"}
		}
		var field *Field
		for i := range v.fields {
			if v.fields[i].Name == k {
				field = &v.fields[i]
				break
			}
		}
		if field == nil {
			return nil, &step.ConstructionError{Component: "TaggedHash", Message: fmt.Sprintf("every variant must declare key %q", k)}
		}
		tagValue, ok := staticValueOf(field.Type)
		if !ok {
			return nil, &step.ConstructionError{Component: "TaggedHash", Message: fmt.Sprintf("key %q must resolve to a static value", k)}
		}
		variantByTag[tagValue] = v
		tags = append(tags, tagValue)
	}

	return &taggedHashStep{key: k, variantByTag: variantByTag, tags: tags}, nil
}

// staticValueOf recovers the literal a field's step always resolves to.
// Only a step whose AST node has tag "static" qualifies; its attr "value"
// is the literal. schema.From desugars a bare literal field value to
// Static, so that's what TaggedHash variants are expected to declare at
// the discriminator key.
func staticValueOf(s step.Step) (any, bool) {
	ast := s.AST()
	if ast.Tag != step.TagStatic {
		return nil, false
	}
	v, ok := ast.Attrs["value"]
	return v, ok
}

type taggedHashStep struct {
	key          string
	variantByTag map[any]*HashClass
	tags         []any
}

func (t *taggedHashStep) Call(r step.Result) step.Result {
	m, ok := toMap(r.Value())
	if !ok {
		return r.Halt("must be a hash")
	}
	tagValue, present := m[t.key]
	if !present {
		return r.Halt(&step.DispatchError{Key: t.key, Value: step.Undefined, Variants: t.tags})
	}
	variant, ok := t.variantByTag[tagValue]
	if !ok {
		return r.Halt(&step.DispatchError{Key: t.key, Value: tagValue, Variants: t.tags})
	}
	return variant.Call(r)
}

func (t *taggedHashStep) AST() *step.ASTNode {
	children := make([]*step.ASTNode, 0, len(t.variantByTag))
	for _, tag := range t.tags {
		children = append(children, t.variantByTag[tag].AST())
	}
	return step.NewNode(step.TagTaggedHash, map[string]any{"key": t.key, "tags": t.tags}, children...)
}
func (t *taggedHashStep) Name() string { return "tagged_hash(" + t.key + ")" }

var _ step.Step = (*taggedHashStep)(nil)
