package types

import (
	"strconv"

	"github.com/glaszig/plumb/step"
)

// Tuple builds a step validating that the input is a sequence of
// exactly len(elements), applying elements[i] to the i-th item and
// accumulating errors by index (spec.md §4.3).
func Tuple(elements ...step.Step) *TupleClass {
	return &TupleClass{elements: append([]step.Step(nil), elements...)}
}

// TupleClass is Tuple's step.
type TupleClass struct {
	elements []step.Step
}

func (t *TupleClass) Call(r step.Result) step.Result {
	items, ok := toSlice(r.Value())
	if !ok {
		return r.Halt("must be a tuple")
	}
	if len(items) != len(t.elements) {
		return r.Halt("must have exactly " + strconv.Itoa(len(t.elements)) + " elements")
	}

	values := make([]any, len(items))
	errs := make(map[int]any, len(items))
	for i, item := range items {
		res := step.Resolve(t.elements[i], item)
		if res.IsHalt() {
			errs[i] = res.Errors()
			continue
		}
		values[i] = res.Value()
	}

	if len(errs) > 0 {
		return r.Halt(errs)
	}
	return r.Valid(values)
}

func (t *TupleClass) AST() *step.ASTNode {
	children := make([]*step.ASTNode, len(t.elements))
	for i, e := range t.elements {
		children[i] = e.AST()
	}
	return &step.ASTNode{Tag: step.TagTuple, Attrs: map[string]any{}, Children: children}
}
func (t *TupleClass) Name() string { return "tuple" }

var _ step.Step = (*TupleClass)(nil)
