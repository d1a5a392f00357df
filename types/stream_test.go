package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glaszig/plumb/step"
)

func TestStream_HaltsOnNonSequence(t *testing.T) {
	r := step.Resolve(Stream(step.Any()), "nope")
	assert.True(t, r.IsHalt())
}

func TestStream_PullsLazilyInOrder(t *testing.T) {
	s := Stream(step.Any())
	r := step.Resolve(s, []any{1, 2, 3})
	require.True(t, r.IsValid())
	cursor := r.Value().(*Cursor)

	var pulled []any
	for {
		res, ok := cursor.Next()
		if !ok {
			break
		}
		pulled = append(pulled, res.Value())
	}
	assert.Equal(t, []any{1, 2, 3}, pulled)
}

func TestStream_DoesNotShortCircuitOnElementFailure(t *testing.T) {
	positive := step.Check("must be positive", func(v any) bool { return v.(int) > 0 })
	s := Stream(positive)
	r := step.Resolve(s, []any{1, -2, 3})
	require.True(t, r.IsValid())
	cursor := r.Value().(*Cursor)

	var results []step.Result
	for {
		res, ok := cursor.Next()
		if !ok {
			break
		}
		results = append(results, res)
	}
	require.Len(t, results, 3)
	assert.True(t, results[0].IsValid())
	assert.True(t, results[1].IsHalt())
	assert.True(t, results[2].IsValid())
}

func TestStream_RemainingCounts(t *testing.T) {
	s := Stream(step.Any())
	r := step.Resolve(s, []any{1, 2})
	cursor := r.Value().(*Cursor)
	assert.Equal(t, 2, cursor.Remaining())
	cursor.Next()
	assert.Equal(t, 1, cursor.Remaining())
	cursor.Next()
	assert.Equal(t, 0, cursor.Remaining())
}
