package step

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/glaszig/plumb/internal/stringutil"
	"github.com/glaszig/plumb/internal/textutil"
)

// RulePredicate evaluates whether value satisfies a rule given its arg.
type RulePredicate func(value any, arg any) bool

// RuleArgFormatter renders a rule's argument into the deterministic error
// message spec.md §4.7 requires (e.g. "must be greater than 10").
type RuleArgFormatter func(arg any) string

// RuleDef is a single registered rule: a name, its predicate, its message
// formatter, and the set of base type tags it may be attached to.
type RuleDef struct {
	Name           string
	Predicate      RulePredicate
	Format         RuleArgFormatter
	CompatibleTags map[TypeTag]bool
}

// RuleRegistry is a process-wide, read-mostly mapping of rule name to
// RuleDef (spec.md §5: "Rule registration is a process-wide operation
// expected to complete before any types are published"). Registration is
// guarded by a mutex but is expected to happen once at startup, not on
// every validation call.
type RuleRegistry struct {
	mu     sync.RWMutex
	defs   map[string]RuleDef
	logger Logger
}

// RuleRegistryOption configures a RuleRegistry at construction.
type RuleRegistryOption func(*RuleRegistry)

// WithRuleLogger sets the logger used for registration diagnostics.
func WithRuleLogger(l Logger) RuleRegistryOption {
	return func(r *RuleRegistry) { r.logger = l }
}

// NewRuleRegistry builds an empty registry. Use Register to populate it,
// or start from DefaultRegistry, which already carries the built-ins.
func NewRuleRegistry(opts ...RuleRegistryOption) *RuleRegistry {
	r := &RuleRegistry{defs: map[string]RuleDef{}, logger: NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds or replaces def in the registry.
func (r *RuleRegistry) Register(def RuleDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[def.Name] = def
	r.logger.Debug("registered rule", "name", def.Name)
}

// Lookup returns the RuleDef for name, if registered.
func (r *RuleRegistry) Lookup(name string) (RuleDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.defs[name]
	return d, ok
}

// DefaultRegistry carries the built-in rules enumerated in spec.md §4.7
// and the compatibility matrix in §6.
var DefaultRegistry = NewRuleRegistry()

func init() {
	registerBuiltinRules(DefaultRegistry)
}

func allTags() map[TypeTag]bool {
	return map[TypeTag]bool{
		TypeAny: true, TypeString: true, TypeInteger: true, TypeNumeric: true,
		TypeDecimal: true, TypeBoolean: true, TypeArray: true, TypeHash: true, TypeNil: true,
	}
}

func tagSet(tags ...TypeTag) map[TypeTag]bool {
	m := make(map[TypeTag]bool, len(tags))
	for _, t := range tags {
		m[t] = true
	}
	return m
}

func registerBuiltinRules(reg *RuleRegistry) {
	reg.Register(RuleDef{
		Name:           "eq",
		Predicate:      func(v, arg any) bool { return equal(v, arg) },
		Format:         func(arg any) string { return fmt.Sprintf("must equal %v", arg) },
		CompatibleTags: allTags(),
	})
	reg.Register(RuleDef{
		Name:           "not_eq",
		Predicate:      func(v, arg any) bool { return !equal(v, arg) },
		Format:         func(arg any) string { return fmt.Sprintf("must not equal %v", arg) },
		CompatibleTags: allTags(),
	})
	reg.Register(RuleDef{
		Name: "gt",
		Predicate: func(v, arg any) bool {
			c, ok := compareOrdered(v, arg)
			return ok && c > 0
		},
		Format:         func(arg any) string { return fmt.Sprintf("must be greater than %v", arg) },
		CompatibleTags: tagSet(TypeInteger, TypeNumeric, TypeDecimal, TypeArray, TypeString),
	})
	reg.Register(RuleDef{
		Name: "gte",
		Predicate: func(v, arg any) bool {
			c, ok := compareOrdered(v, arg)
			return ok && c >= 0
		},
		Format:         func(arg any) string { return fmt.Sprintf("must be greater than or equal to %v", arg) },
		CompatibleTags: tagSet(TypeInteger, TypeNumeric, TypeDecimal, TypeArray, TypeString),
	})
	reg.Register(RuleDef{
		Name: "lt",
		Predicate: func(v, arg any) bool {
			c, ok := compareOrdered(v, arg)
			return ok && c < 0
		},
		Format:         func(arg any) string { return fmt.Sprintf("must be less than %v", arg) },
		CompatibleTags: tagSet(TypeInteger, TypeNumeric, TypeDecimal, TypeArray, TypeString),
	})
	reg.Register(RuleDef{
		Name: "lte",
		Predicate: func(v, arg any) bool {
			c, ok := compareOrdered(v, arg)
			return ok && c <= 0
		},
		Format:         func(arg any) string { return fmt.Sprintf("must be less than or equal to %v", arg) },
		CompatibleTags: tagSet(TypeInteger, TypeNumeric, TypeDecimal, TypeArray, TypeString),
	})
	reg.Register(RuleDef{
		Name: "match",
		Predicate: func(v, arg any) bool {
			if rg, ok := arg.(Range); ok && isArrayLike(v) {
				n, ok2 := sizeOf(v)
				return ok2 && rg.Includes(n)
			}
			return AutoMatcher(arg).matches(v)
		},
		Format:         func(arg any) string { return fmt.Sprintf("must match %s", AutoMatcher(arg).describe()) },
		CompatibleTags: tagSet(TypeString, TypeInteger, TypeNumeric, TypeArray),
	})
	reg.Register(RuleDef{
		Name: "included_in",
		Predicate: func(v, arg any) bool {
			for _, candidate := range toSlice(arg) {
				if equal(v, candidate) {
					return true
				}
			}
			return false
		},
		Format:         func(arg any) string { return fmt.Sprintf("must be one of %v", arg) },
		CompatibleTags: allTags(),
	})
	reg.Register(RuleDef{
		Name: "excluded_from",
		Predicate: func(v, arg any) bool {
			for _, candidate := range toSlice(arg) {
				if equal(v, candidate) {
					return false
				}
			}
			return true
		},
		Format:         func(arg any) string { return fmt.Sprintf("must not be one of %v", arg) },
		CompatibleTags: allTags(),
	})
	reg.Register(RuleDef{
		Name: "respond_to",
		Predicate: func(v, arg any) bool {
			name, ok := arg.(string)
			if !ok || v == nil {
				return false
			}
			_, found := reflect.TypeOf(v).MethodByName(name)
			return found
		},
		Format:         func(arg any) string { return fmt.Sprintf("must respond to %v", arg) },
		CompatibleTags: allTags(),
	})
	reg.Register(RuleDef{
		Name: "size",
		Predicate: func(v, arg any) bool {
			n, ok := sizeOf(v)
			if !ok {
				return false
			}
			switch a := arg.(type) {
			case Range:
				return a.Includes(n)
			default:
				fa, ok := toFloat(arg)
				return ok && float64(n) == fa
			}
		},
		Format: func(arg any) string {
			if rg, ok := arg.(Range); ok {
				return fmt.Sprintf("size must be within %s", rangeMatcher{r: rg}.describe())
			}
			return fmt.Sprintf("size must be %v", arg)
		},
		CompatibleTags: tagSet(TypeString, TypeArray, TypeHash),
	})
	reg.Register(RuleDef{
		Name: "email",
		Predicate: func(v, _ any) bool {
			s, ok := v.(string)
			return ok && stringutil.IsValidEmail(s)
		},
		Format:         func(_ any) string { return "must be a valid email address" },
		CompatibleTags: tagSet(TypeString),
	})
}

func toSlice(v any) []any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

func isArrayLike(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
}

// compareOrdered implements the "ordered" comparison spec.md §6 requires
// for gt/gte/lt/lte across Integer/Numeric/Decimal (numeric value),
// String (lexicographic), and Array (by size) base types. Returns ok=false
// when v and arg aren't comparable under any of those rules.
func compareOrdered(v, arg any) (int, bool) {
	if fv, ok1 := toFloat(v); ok1 {
		if fa, ok2 := toFloat(arg); ok2 {
			return floatCompare(fv, fa), true
		}
	}
	if sv, ok1 := v.(string); ok1 {
		if sa, ok2 := arg.(string); ok2 {
			switch {
			case sv < sa:
				return -1, true
			case sv > sa:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	if isArrayLike(v) {
		if n, ok1 := sizeOf(v); ok1 {
			if fa, ok2 := toFloat(arg); ok2 {
				return floatCompare(float64(n), fa), true
			}
		}
	}
	return 0, false
}

func floatCompare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func sizeOf(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return textutil.Length(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len(), true
	default:
		return 0, false
	}
}

// AttachRule attaches a single named rule to inner, validating at
// construction time that name is compatible with every tag in tags
// (spec.md §4.7: "For a union base (A | B), the rule must be compatible
// with every branch"). Returns *UnsupportedRuleError if not (usable with
// errors.As), or *ConstructionError if name isn't registered at all.
func AttachRule(registry *RuleRegistry, inner Step, tags []TypeTag, name string, arg any) (Step, error) {
	def, ok := registry.Lookup(name)
	if !ok {
		return nil, &ConstructionError{Component: "Rules", Message: fmt.Sprintf("unknown rule %q", name)}
	}
	for _, t := range tags {
		if !def.CompatibleTags[t] {
			return nil, &UnsupportedRuleError{Rule: name, Arg: arg, BaseType: t}
		}
	}
	return &policyStep{inner: inner, def: def, arg: arg, name: name}, nil
}

type policyStep struct {
	inner Step
	def   RuleDef
	arg   any
	name  string
}

func (p *policyStep) Call(r Result) Result {
	res := p.inner.Call(r)
	if res.IsHalt() {
		return res
	}
	if !p.def.Predicate(res.Value(), p.arg) {
		return res.Halt(p.def.Format(p.arg))
	}
	return res
}
func (p *policyStep) AST() *ASTNode {
	return NewNode(TagPolicy, map[string]any{"policy_name": p.name, "arg": p.arg}, p.inner.AST())
}
func (p *policyStep) Name() string { return p.name + "(" + p.inner.Name() + ")" }

// Rules attaches every (name -> arg) pair in specs to inner, in the
// order given by names, each producing a nested "policy" AST node
// (spec.md §4.7: "A Rules(specs, base_type_tag) step carries a mapping
// of rule-name -> argument"). Returns the first construction error
// encountered, if any.
func Rules(registry *RuleRegistry, inner Step, tags []TypeTag, names []string, specs map[string]any) (Step, error) {
	cur := inner
	for _, name := range names {
		s, err := AttachRule(registry, cur, tags, name, specs[name])
		if err != nil {
			return nil, err
		}
		cur = s
	}
	return cur, nil
}
