package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_HasBuiltins(t *testing.T) {
	names := []string{"eq", "not_eq", "gt", "gte", "lt", "lte", "match", "included_in", "excluded_from", "respond_to", "size", "email"}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			_, ok := DefaultRegistry.Lookup(name)
			assert.True(t, ok)
		})
	}
}

func TestAttachRule_CompatibilityMatrix(t *testing.T) {
	tests := []struct {
		name    string
		rule    string
		tags    []TypeTag
		wantErr bool
	}{
		{name: "gt on numeric ok", rule: "gt", tags: []TypeTag{TypeNumeric}, wantErr: false},
		{name: "gt on boolean rejected", rule: "gt", tags: []TypeTag{TypeBoolean}, wantErr: true},
		{name: "size on hash ok", rule: "size", tags: []TypeTag{TypeHash}, wantErr: false},
		{name: "size on boolean rejected", rule: "size", tags: []TypeTag{TypeBoolean}, wantErr: true},
		{name: "eq on any base always ok", rule: "eq", tags: []TypeTag{TypeBoolean, TypeHash, TypeArray}, wantErr: false},
		{name: "unknown rule errors", rule: "nope", tags: []TypeTag{TypeAny}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AttachRule(DefaultRegistry, Any(), tt.tags, tt.rule, 1)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAttachRule_UnionRequiresEveryBranchCompatible(t *testing.T) {
	_, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeInteger, TypeBoolean}, "gt", 1)
	require.Error(t, err)
	var unsupported *UnsupportedRuleError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, TypeBoolean, unsupported.BaseType)
}

func TestPolicyStep_HaltsWhenPredicateFails(t *testing.T) {
	s, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeInteger}, "gt", 10)
	require.NoError(t, err)

	r := Resolve(s, 20)
	assert.True(t, r.IsValid())

	r2 := Resolve(s, 5)
	assert.True(t, r2.IsHalt())
	assert.Contains(t, r2.Errors(), "greater than")
}

func TestPolicyStep_PropagatesInnerHalt(t *testing.T) {
	s, err := AttachRule(DefaultRegistry, ValueStep(1), []TypeTag{TypeInteger}, "gt", 100)
	require.NoError(t, err)

	r := Resolve(s, 2)
	assert.True(t, r.IsHalt())
	assert.Equal(t, "must equal 1", r.Errors())
}

func TestPolicyStep_AST(t *testing.T) {
	s, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeAny}, "eq", "x")
	require.NoError(t, err)

	ast := s.AST()
	assert.Equal(t, TagPolicy, ast.Tag)
	assert.Equal(t, "eq", ast.Attrs["policy_name"])
	assert.Equal(t, "x", ast.Attrs["arg"])
	require.Len(t, ast.Children, 1)
}

func TestRules_NestsInDeclaredOrder(t *testing.T) {
	s, err := Rules(DefaultRegistry, Any(), []TypeTag{TypeInteger}, []string{"gt", "lt"}, map[string]any{
		"gt": 0,
		"lt": 10,
	})
	require.NoError(t, err)

	assert.True(t, Resolve(s, 5).IsValid())
	assert.True(t, Resolve(s, -1).IsHalt())
	assert.True(t, Resolve(s, 20).IsHalt())
}

func TestSizeRule_StringRangeAndHash(t *testing.T) {
	s, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeString}, "size", Range{Min: 2, Max: 4})
	require.NoError(t, err)
	assert.True(t, Resolve(s, "abc").IsValid())
	assert.True(t, Resolve(s, "a").IsHalt())

	hashRule, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeHash}, "size", 2)
	require.NoError(t, err)
	assert.True(t, Resolve(hashRule, map[string]any{"a": 1, "b": 2}).IsValid())
	assert.True(t, Resolve(hashRule, map[string]any{"a": 1}).IsHalt())
}

func TestIncludedInExcludedFrom(t *testing.T) {
	includedStep, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeString}, "included_in", []string{"a", "b"})
	require.NoError(t, err)
	assert.True(t, Resolve(includedStep, "a").IsValid())
	assert.True(t, Resolve(includedStep, "z").IsHalt())

	excludedStep, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeString}, "excluded_from", []string{"a", "b"})
	require.NoError(t, err)
	assert.True(t, Resolve(excludedStep, "z").IsValid())
	assert.True(t, Resolve(excludedStep, "a").IsHalt())
}

func TestRespondToRule(t *testing.T) {
	s, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeAny}, "respond_to", "Greet")
	require.NoError(t, err)
	assert.True(t, Resolve(s, greeter{}).IsValid())
	assert.True(t, Resolve(s, 5).IsHalt())
}

func TestOrderedRules_String(t *testing.T) {
	gtStep, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeString}, "gt", "m")
	require.NoError(t, err)
	assert.True(t, Resolve(gtStep, "z").IsValid())
	assert.True(t, Resolve(gtStep, "a").IsHalt())

	lteStep, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeString}, "lte", "m")
	require.NoError(t, err)
	assert.True(t, Resolve(lteStep, "m").IsValid())
	assert.True(t, Resolve(lteStep, "z").IsHalt())
}

func TestOrderedRules_ArrayBySize(t *testing.T) {
	gtStep, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeArray}, "gt", 2)
	require.NoError(t, err)
	assert.True(t, Resolve(gtStep, []any{1, 2, 3}).IsValid())
	assert.True(t, Resolve(gtStep, []any{1}).IsHalt())

	ltStep, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeArray}, "lt", 2)
	require.NoError(t, err)
	assert.True(t, Resolve(ltStep, []any{1}).IsValid())
	assert.True(t, Resolve(ltStep, []any{1, 2, 3}).IsHalt())
}

func TestMatchRule_RangeOverArraySize(t *testing.T) {
	s, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeArray}, "match", Range{Min: 2, Max: 4})
	require.NoError(t, err)
	assert.True(t, Resolve(s, []any{1, 2, 3}).IsValid())
	assert.True(t, Resolve(s, []any{1}).IsHalt())
}

func TestEmailRule(t *testing.T) {
	s, err := AttachRule(DefaultRegistry, Any(), []TypeTag{TypeString}, "email", nil)
	require.NoError(t, err)
	assert.True(t, Resolve(s, "a@example.com").IsValid())
	assert.True(t, Resolve(s, "not-an-email").IsHalt())
	assert.True(t, Resolve(s, 5).IsHalt())
}

func TestNewRuleRegistry_Independent(t *testing.T) {
	custom := NewRuleRegistry()
	_, ok := custom.Lookup("eq")
	assert.False(t, ok, "a fresh registry should not inherit DefaultRegistry's builtins")

	custom.Register(RuleDef{
		Name:           "always",
		Predicate:      func(any, any) bool { return true },
		Format:         func(any) string { return "always" },
		CompatibleTags: allTags(),
	})
	_, ok = custom.Lookup("always")
	assert.True(t, ok)
}
