package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_SequencesSteps(t *testing.T) {
	p := NewPipeline(
		Transform("plus1", func(v any) any { return v.(int) + 1 }),
		Transform("times2", func(v any) any { return v.(int) * 2 }),
	)
	r := Resolve(p, 1)
	require.True(t, r.IsValid())
	assert.Equal(t, 4, r.Value())
}

func TestPipeline_ShortCircuitsOnHalt(t *testing.T) {
	p := NewPipeline(ValueStep(1), Static("unreached"))
	r := Resolve(p, 2)
	assert.True(t, r.IsHalt())
}

func TestPipeline_AroundWrapsInnermostFirst(t *testing.T) {
	var order []string
	record := func(label string) AroundFunc {
		return func(next Step, r Result) Result {
			order = append(order, label+":before")
			res := next.Call(r)
			order = append(order, label+":after")
			return res
		}
	}

	p := NewPipeline(Any()).Around(record("innermost-registered-first")).Around(record("outermost-registered-second"))
	_ = Resolve(p, "x")

	assert.Equal(t, []string{
		"outermost-registered-second:before",
		"innermost-registered-first:before",
		"innermost-registered-first:after",
		"outermost-registered-second:after",
	}, order)
}

func TestPipeline_AroundIsImmutable(t *testing.T) {
	base := NewPipeline(Any())
	withAround := base.Around(func(next Step, r Result) Result { return next.Call(r) })
	assert.NotSame(t, base, withAround)
	assert.Empty(t, base.arounds)
	assert.Len(t, withAround.arounds, 1)
}

func TestPipeline_AST(t *testing.T) {
	p := NewPipeline(Any(), True())
	ast := p.AST()
	assert.Equal(t, TagPipeline, ast.Tag)
	require.Len(t, ast.Children, 2)
}

func TestPipeline_Name(t *testing.T) {
	assert.Equal(t, "pipeline", NewPipeline().Name())
}
