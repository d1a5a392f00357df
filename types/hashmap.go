package types

import (
	"fmt"

	"github.com/glaszig/plumb/internal/maputil"
	"github.com/glaszig/plumb/step"
)

// HashMap validates every entry of a map against KeyType/ValueType,
// short-circuiting at the first failing entry (spec.md §4.5): inputs
// with many entries must not pay for validating all of them once one
// has already failed. On success the input is returned unchanged.
func HashMap(keyType, valueType step.Step) *HashMapClass {
	return &HashMapClass{keyType: keyType, valueType: valueType}
}

// HashMapClass is HashMap's step.
type HashMapClass struct {
	keyType   step.Step
	valueType step.Step
}

func (h *HashMapClass) Call(r step.Result) step.Result {
	m, ok := toMap(r.Value())
	if !ok {
		return r.Halt("must be a hash")
	}

	for _, k := range maputil.SortedKeys(m) {
		v := m[k]
		kr := step.Resolve(h.keyType, k)
		if kr.IsHalt() {
			return r.Halt(fmt.Sprintf("key %v %v", k, kr.Errors()))
		}
		vr := step.Resolve(h.valueType, v)
		if vr.IsHalt() {
			return r.Halt(fmt.Sprintf("value %v %v", v, vr.Errors()))
		}
	}
	return r.Valid(r.Value())
}

func (h *HashMapClass) AST() *step.ASTNode {
	return step.NewNode(step.TagHashMap, nil, h.keyType.AST(), h.valueType.AST())
}
func (h *HashMapClass) Name() string { return "hash_map" }

var _ step.Step = (*HashMapClass)(nil)
