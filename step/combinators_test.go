package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnd_ShortCircuits(t *testing.T) {
	s := And(ValueStep(1), Static("unreached"))
	r := Resolve(s, 2)
	require.True(t, r.IsHalt())
}

func TestAnd_SequencesValue(t *testing.T) {
	s := And(Any(), Transform("upper", func(v any) any { return v.(string) + "!" }))
	r := Resolve(s, "hi")
	require.True(t, r.IsValid())
	assert.Equal(t, "hi!", r.Value())
}

func TestOr_FirstValidWins(t *testing.T) {
	s := Or(ValueStep(1), ValueStep(2))
	r := Resolve(s, 1)
	require.True(t, r.IsValid())
	assert.Equal(t, 1, r.Value())
}

func TestOr_FallsThroughToSecond(t *testing.T) {
	s := Or(ValueStep(1), ValueStep(2))
	r := Resolve(s, 2)
	require.True(t, r.IsValid())
	assert.Equal(t, 2, r.Value())
}

func TestOr_BothHaltAggregatesErrors(t *testing.T) {
	s := Or(ValueStep(1), ValueStep(2))
	r := Resolve(s, 3)
	require.True(t, r.IsHalt())
	errs, ok := r.Errors().([]any)
	require.True(t, ok)
	assert.Len(t, errs, 2)
}

func TestNot_InvertsValidToHalt(t *testing.T) {
	s := Not(ValueStep(1))
	r := Resolve(s, 1)
	assert.True(t, r.IsHalt())
}

func TestNot_InvertsHaltToValid(t *testing.T) {
	s := Not(ValueStep(1))
	r := Resolve(s, 2)
	require.True(t, r.IsValid())
	assert.Equal(t, 2, r.Value())
}

func TestNot_CustomError(t *testing.T) {
	s := Not(ValueStep(1), "custom message")
	r := Resolve(s, 1)
	assert.Equal(t, "custom message", r.Errors())
}

func TestDefault_UndefinedYieldsDefault(t *testing.T) {
	s := Default(Any(), "fallback")
	r := Resolve(s)
	require.True(t, r.IsValid())
	assert.Equal(t, "fallback", r.Value())
}

func TestDefault_DefinedValuePassesThrough(t *testing.T) {
	s := Default(Any(), "fallback")
	r := Resolve(s, "given")
	require.True(t, r.IsValid())
	assert.Equal(t, "given", r.Value())
}

func TestDefault_ASTWrapsInnerNotDesugared(t *testing.T) {
	s := Default(Any(), "fallback")
	ast := s.AST()
	assert.Equal(t, TagDefault, ast.Tag)
	assert.Equal(t, "fallback", ast.Attrs["default"])
	require.Len(t, ast.Children, 1)
	assert.Equal(t, TagAny, ast.Children[0].Tag)
}

func TestNullableAndOptional(t *testing.T) {
	s := Nullable(ValueStep(1))
	assert.True(t, Resolve(s, nil).IsValid())
	assert.True(t, Resolve(s, 1).IsValid())
	assert.True(t, Resolve(s, 2).IsHalt())

	opt := Optional(ValueStep(1))
	assert.True(t, Resolve(opt, nil).IsValid())
}

func TestWithPresence(t *testing.T) {
	s := WithPresence(Any())
	assert.True(t, Resolve(s, "x").IsValid())
	assert.True(t, Resolve(s, "").IsHalt())
	assert.True(t, Resolve(s).IsHalt())
}

func TestCheck(t *testing.T) {
	s := Check("must be positive", func(v any) bool { return v.(int) > 0 })
	assert.True(t, Resolve(s, 1).IsValid())
	r := Resolve(s, -1)
	assert.True(t, r.IsHalt())
	assert.Equal(t, "must be positive", r.Errors())
}

func TestConstructor(t *testing.T) {
	s := Constructor("even", func(v any) (any, error) {
		n := v.(int)
		if n%2 != 0 {
			return nil, assertErr{"must be even"}
		}
		return n * 2, nil
	})
	r := Resolve(s, 4)
	require.True(t, r.IsValid())
	assert.Equal(t, 8, r.Value())

	r2 := Resolve(s, 3)
	assert.True(t, r2.IsHalt())
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }

func TestCoerce(t *testing.T) {
	s := Coerce(TypeOfValue(""), func(v any) any { return len(v.(string)) })
	r := Resolve(s, "hello")
	require.True(t, r.IsValid())
	assert.Equal(t, 5, r.Value())

	r2 := Resolve(s, 5)
	assert.True(t, r2.IsHalt())
}

func TestValueOf(t *testing.T) {
	s := ValueOf(Any(), 10)
	assert.True(t, Resolve(s, 10).IsValid())
	assert.True(t, Resolve(s, 11).IsHalt())
}

func TestMeta_DoesNotAlterValue(t *testing.T) {
	s := Meta(Any(), map[string]any{"label": "x"})
	r := Resolve(s, "v")
	assert.True(t, r.IsValid())
	assert.Equal(t, "v", r.Value())
}

func TestHalt_ForcesHaltOnOtherwiseValid(t *testing.T) {
	s := Halt(Any(), "nope")
	r := Resolve(s, "anything")
	assert.True(t, r.IsHalt())
	assert.Equal(t, "nope", r.Errors())
}

func TestHalt_PropagatesExistingHalt(t *testing.T) {
	s := Halt(ValueStep(1), "nope")
	r := Resolve(s, 2)
	assert.True(t, r.IsHalt())
	assert.NotEqual(t, "nope", r.Errors())
}

func TestChain_Fluent(t *testing.T) {
	s := Of(Any()).Then(Check("must be long", func(v any) bool { return len(v.(string)) > 2 })).Step
	assert.True(t, Resolve(s, "abcd").IsValid())
	assert.True(t, Resolve(s, "a").IsHalt())
}

func TestChain_Rule(t *testing.T) {
	s := Of(Any()).Rule(DefaultRegistry, "eq", "x").Step
	assert.True(t, Resolve(s, "x").IsValid())
	assert.True(t, Resolve(s, "y").IsHalt())
}

func TestChain_Freeze(t *testing.T) {
	s := Of(Any()).Freeze("named")
	assert.Equal(t, "named", s.Name())
}
