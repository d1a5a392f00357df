package step

import (
	"fmt"
	"reflect"
	"regexp"
)

// Matcher is the case-equality polymorphism from spec.md §4.2/§9
// ("Match") implemented as an explicit tagged union rather than an
// open-ended type switch at every call site: class/type membership,
// numeric range containment, regex match, predicate invocation, or plain
// equality.
type Matcher interface {
	matches(value any) bool
	describe() string
}

// Range is a numeric range matcher: Min <= v <= Max, or Min <= v < Max
// when ExclusiveMax is set.
type Range struct {
	Min, Max     float64
	ExclusiveMax bool
}

// Includes reports whether v (coerced to float64 when numeric) falls
// within the range.
func (rg Range) Includes(v any) bool {
	f, ok := toFloat(v)
	if !ok {
		return false
	}
	if f < rg.Min {
		return false
	}
	if rg.ExclusiveMax {
		return f < rg.Max
	}
	return f <= rg.Max
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

type typeMatcher struct{ t reflect.Type }

func (m typeMatcher) matches(v any) bool {
	if v == nil {
		return false
	}
	vt := reflect.TypeOf(v)
	if m.t.Kind() == reflect.Interface {
		return vt.Implements(m.t)
	}
	return vt == m.t
}
func (m typeMatcher) describe() string { return m.t.String() }

// TypeOfValue builds a Matcher that accepts values of exactly the same
// dynamic type as example. Matching by interface goes through TypeOfKind.
func TypeOfValue(example any) Matcher {
	return typeMatcher{t: reflect.TypeOf(example)}
}

// TypeOfKind builds a Matcher that accepts any value implementing iface,
// e.g. TypeOfKind[io.Reader]() would be spelled TypeOfKind(reflect.TypeFor[io.Reader]()).
func TypeOfKind(iface reflect.Type) Matcher {
	return typeMatcher{t: iface}
}

type rangeMatcher struct{ r Range }

func (m rangeMatcher) matches(v any) bool { return m.r.Includes(v) }
func (m rangeMatcher) describe() string {
	op := "<="
	if m.r.ExclusiveMax {
		op = "<"
	}
	return fmt.Sprintf("%v <= x %s %v", m.r.Min, op, m.r.Max)
}

// RangeMatcher builds a Matcher over a numeric range.
func RangeMatcher(r Range) Matcher { return rangeMatcher{r: r} }

type regexMatcher struct{ re *regexp.Regexp }

func (m regexMatcher) matches(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return m.re.MatchString(s)
}
func (m regexMatcher) describe() string { return m.re.String() }

// RegexMatcher builds a Matcher over a compiled regular expression.
func RegexMatcher(re *regexp.Regexp) Matcher { return regexMatcher{re: re} }

type callableMatcher struct {
	fn   func(any) bool
	desc string
}

func (m callableMatcher) matches(v any) bool { return m.fn(v) }
func (m callableMatcher) describe() string {
	if m.desc != "" {
		return m.desc
	}
	return "<callable>"
}

// CallableMatcher builds a Matcher from an arbitrary predicate.
func CallableMatcher(fn func(any) bool, description string) Matcher {
	return callableMatcher{fn: fn, desc: description}
}

type valueMatcher struct{ v any }

func (m valueMatcher) matches(v any) bool { return equal(v, m.v) }
func (m valueMatcher) describe() string   { return fmt.Sprintf("%v", m.v) }

// ScalarMatcher builds a Matcher that accepts only values equal to v.
func ScalarMatcher(v any) Matcher { return valueMatcher{v: v} }

// AutoMatcher dispatches on the dynamic type of m to build the matcher a
// caller most likely meant: a *regexp.Regexp matches by pattern, a Range
// matches by containment, a func(any) bool is invoked directly, a
// reflect.Type matches by type/interface membership, and anything else
// falls back to equality. This mirrors the host-language case-equality
// dispatch spec.md describes, made explicit per spec.md §9.
func AutoMatcher(m any) Matcher {
	switch t := m.(type) {
	case Matcher:
		return t
	case *regexp.Regexp:
		return RegexMatcher(t)
	case Range:
		return RangeMatcher(t)
	case func(any) bool:
		return CallableMatcher(t, "")
	case reflect.Type:
		return TypeOfKind(t)
	default:
		return ScalarMatcher(t)
	}
}

// Match builds a leaf step that halts unless the input value satisfies
// m (auto-dispatched via AutoMatcher). Halt message: "Must match <m>".
func Match(m any) Step {
	matcher := AutoMatcher(m)
	return leafStep{
		tag:   TagMatch,
		attrs: map[string]any{"matcher": matcher.describe()},
		call: func(r Result) Result {
			if matcher.matches(r.Value()) {
				return r.Valid(r.Value())
			}
			return r.Halt(fmt.Sprintf("Must match %s", matcher.describe()))
		},
	}
}
