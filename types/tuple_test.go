package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glaszig/plumb/step"
)

func TestTuple_HaltsOnWrongArity(t *testing.T) {
	tup := Tuple(step.Any(), step.Any())
	r := step.Resolve(tup, []any{1})
	assert.True(t, r.IsHalt())
}

func TestTuple_HaltsOnNonSequence(t *testing.T) {
	tup := Tuple(step.Any())
	r := step.Resolve(tup, "nope")
	assert.True(t, r.IsHalt())
}

func TestTuple_S4Scenario(t *testing.T) {
	tup := Tuple(
		step.Or(step.ValueStep("ok"), step.ValueStep("error")),
		step.Boolean(),
		step.Any(),
	)

	r := step.Resolve(tup, []any{"ok", true, "Hi"})
	require.True(t, r.IsValid())
	assert.Equal(t, []any{"ok", true, "Hi"}, r.Value())

	r2 := step.Resolve(tup, []any{"ok", "nope", "Hi"})
	require.True(t, r2.IsHalt())
	errs, ok := r2.Errors().(map[int]any)
	require.True(t, ok)
	_, hasIndex1 := errs[1]
	assert.True(t, hasIndex1)
}
