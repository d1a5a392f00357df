package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glaszig/plumb/step"
)

func TestArray_HaltsOnNonSequence(t *testing.T) {
	r := step.Resolve(Array(step.Any()), "not a sequence")
	assert.True(t, r.IsHalt())
}

func TestArray_AppliesElementToEveryItem(t *testing.T) {
	positive := step.Check("must be positive", func(v any) bool { return v.(int) > 0 })
	r := step.Resolve(Array(positive), []any{1, 2, 3})
	require.True(t, r.IsValid())
	assert.Equal(t, []any{1, 2, 3}, r.Value())
}

func TestArray_AggregatesErrorsByIndex(t *testing.T) {
	positive := step.Check("must be positive", func(v any) bool { return v.(int) > 0 })
	r := step.Resolve(Array(positive), []any{1, -2, 3, -4})
	require.True(t, r.IsHalt())
	errs, ok := r.Errors().(map[int]any)
	require.True(t, ok)
	assert.Len(t, errs, 2)
	assert.Equal(t, "must be positive", errs[1])
	assert.Equal(t, "must be positive", errs[3])
}

func TestArray_Concurrent_PreservesOrder(t *testing.T) {
	double := step.Transform("int", func(v any) any { return v.(int) * 2 })
	r := step.Resolve(Array(double).Concurrent(), []any{1, 2, 3, 4, 5})
	require.True(t, r.IsValid())
	assert.Equal(t, []any{2, 4, 6, 8, 10}, r.Value())
}

func TestArray_Concurrent_AggregatesErrorsByIndex(t *testing.T) {
	positive := step.Check("must be positive", func(v any) bool { return v.(int) > 0 })
	r := step.Resolve(Array(positive).Concurrent(), []any{1, -2, 3})
	require.True(t, r.IsHalt())
	errs, ok := r.Errors().(map[int]any)
	require.True(t, ok)
	assert.Equal(t, "must be positive", errs[1])
}

func TestArray_AST(t *testing.T) {
	a := Array(step.Any())
	ast := a.AST()
	assert.Equal(t, step.TagArray, ast.Tag)
	require.Len(t, ast.Children, 1)
}
