package step

import "fmt"

// And sequences a then b: if a.Call(r) is Valid, b receives it; otherwise
// the Halt from a is returned unchanged (short-circuit).
func And(a, b Step) Step {
	return &andStep{a: a, b: b}
}

type andStep struct{ a, b Step }

func (s *andStep) Call(r Result) Result {
	r1 := s.a.Call(r)
	if r1.IsHalt() {
		return r1
	}
	return s.b.Call(r1)
}
func (s *andStep) AST() *ASTNode {
	return NewNode(TagAnd, nil, s.a.AST(), s.b.AST())
}
func (s *andStep) Name() string {
	return fmt.Sprintf("(%s >> %s)", s.a.Name(), s.b.Name())
}

// Or tries a; if Valid, returns it. Otherwise tries b against the
// original r; if Valid, returns it. If both halt, the result Halts with
// errors set to the ordered pair [a's errors, b's errors].
func Or(a, b Step) Step {
	return &orStep{a: a, b: b}
}

type orStep struct{ a, b Step }

func (s *orStep) Call(r Result) Result {
	r1 := s.a.Call(r)
	if r1.IsValid() {
		return r1
	}
	r2 := s.b.Call(r)
	if r2.IsValid() {
		return r2
	}
	return r.Halt([]any{r1.Errors(), r2.Errors()})
}
func (s *orStep) AST() *ASTNode {
	return NewNode(TagOr, nil, s.a.AST(), s.b.AST())
}
func (s *orStep) Name() string {
	return fmt.Sprintf("(%s | %s)", s.a.Name(), s.b.Name())
}

// Not inverts a: Valid becomes Halt(err), Halt becomes Valid(original
// value). err defaults to a generic message naming the inverted step.
func Not(a Step, err ...any) Step {
	var e any
	if len(err) > 0 {
		e = err[0]
	}
	return &notStep{inner: a, err: e}
}

type notStep struct {
	inner Step
	err   any
}

func (s *notStep) Call(r Result) Result {
	res := s.inner.Call(r)
	if res.IsValid() {
		e := s.err
		if e == nil {
			e = fmt.Sprintf("must not match %s", s.inner.Name())
		}
		return r.Halt(e)
	}
	return r.Valid(r.Value())
}
func (s *notStep) AST() *ASTNode {
	return NewNode(TagNot, nil, s.inner.AST())
}
func (s *notStep) Name() string { return "not(" + s.inner.Name() + ")" }

// WithAST wraps inner, overriding the AST it emits with ast while keeping
// its Call behavior. Used by combinators like Default, whose desugared
// implementation should not leak through AST-driven tooling (spec.md §4.1,
// §9: "the AST deliberately does not expand the thunk").
func WithAST(inner Step, ast *ASTNode) Step {
	return &astOverride{inner: inner, ast: ast}
}

type astOverride struct {
	inner Step
	ast   *ASTNode
}

func (w *astOverride) Call(r Result) Result { return w.inner.Call(r) }
func (w *astOverride) AST() *ASTNode        { return w.ast }
func (w *astOverride) Name() string         { return w.inner.Name() }

// Default desugars to (Nothing >> Static(v)) | self: Undefined input
// yields v, anything else delegates to s. AST tag "default" wraps s's
// AST node rather than exposing the desugared Or.
func Default(s Step, v any) Step {
	behavior := Or(And(Nothing(), Static(v)), s)
	return WithAST(behavior, NewNode(TagDefault, map[string]any{"default": v}, s.AST()))
}

// Nullable is Nil | self.
func Nullable(s Step) Step { return Or(Nil(), s) }

// Optional is an alias for Nullable (spec.md §4.1: "nullable / optional").
func Optional(s Step) Step { return Nullable(s) }

// WithPresence sequences the Present leaf in front of s, so Undefined,
// nil, and empty values halt before s ever sees them.
func WithPresence(s Step) Step { return And(Present(), s) }

// Transform applies fn to the value unconditionally, recording
// targetType in its AST/metadata.
func Transform(targetType string, fn func(any) any) Step {
	return &transformStep{targetType: targetType, fn: fn}
}

type transformStep struct {
	targetType string
	fn         func(any) any
}

func (t *transformStep) Call(r Result) Result { return r.Valid(t.fn(r.Value())) }
func (t *transformStep) AST() *ASTNode {
	return NewNode(TagTransform, map[string]any{"target_type": t.targetType})
}
func (t *transformStep) Name() string { return "transform(" + t.targetType + ")" }

// Check halts with err unless predicate(value) holds.
func Check(err any, predicate func(any) bool) Step {
	return &checkStep{err: err, predicate: predicate}
}

type checkStep struct {
	err       any
	predicate func(any) bool
}

func (c *checkStep) Call(r Result) Result {
	if c.predicate(r.Value()) {
		return r.Valid(r.Value())
	}
	return r.Halt(c.err)
}
func (c *checkStep) AST() *ASTNode { return NewNode(TagStep, map[string]any{"check": true}) }
func (c *checkStep) Name() string  { return "check" }

// Constructor applies fn to the value, halting with fn's error message
// on failure. targetType is recorded for metadata/JSON-Schema purposes.
func Constructor(targetType string, fn func(any) (any, error)) Step {
	return &constructorStep{targetType: targetType, fn: fn}
}

type constructorStep struct {
	targetType string
	fn         func(any) (any, error)
}

func (c *constructorStep) Call(r Result) Result {
	v, err := c.fn(r.Value())
	if err != nil {
		return r.Halt(err.Error())
	}
	return r.Valid(v)
}
func (c *constructorStep) AST() *ASTNode {
	return NewNode(TagConstructor, map[string]any{"target_type": c.targetType})
}
func (c *constructorStep) Name() string { return "constructor(" + c.targetType + ")" }

// Coerce applies fn only when matcher matches the current value;
// otherwise halts with a coercion-failure message (spec.md §7).
func Coerce(matcher any, fn func(any) any) Step {
	m := AutoMatcher(matcher)
	return &coerceStep{matcher: m, fn: fn}
}

type coerceStep struct {
	matcher Matcher
	fn      func(any) any
}

func (c *coerceStep) Call(r Result) Result {
	if !c.matcher.matches(r.Value()) {
		return r.Halt(fmt.Sprintf("%v can't be coerced", r.Value()))
	}
	return r.Valid(c.fn(r.Value()))
}
func (c *coerceStep) AST() *ASTNode {
	return NewNode(TagStep, map[string]any{"coerce": c.matcher.describe()})
}
func (c *coerceStep) Name() string { return "coerce" }

// ValueOf sequences s then ValueStep(v): the result of s must equal v.
func ValueOf(s Step, v any) Step { return And(s, ValueStep(v)) }

// metadataStep is a no-op step whose sole purpose is contributing attrs
// to the computed metadata of whatever it's sequenced after.
type metadataStep struct{ attrs map[string]any }

func (m metadataStep) Call(r Result) Result { return r }
func (m metadataStep) AST() *ASTNode        { return NewNode(TagMetadata, m.attrs) }
func (m metadataStep) Name() string         { return "meta" }

// Meta sequences s with a no-op Metadata step contributing attrs to s's
// computed metadata (see visitor.Metadata).
func Meta(s Step, attrs map[string]any) Step {
	return And(s, metadataStep{attrs: attrs})
}

// Halt wraps s such that any Valid result becomes a Halt with err
// (defaulting to "halted" when omitted).
func Halt(s Step, err ...any) Step {
	var e any = "halted"
	if len(err) > 0 {
		e = err[0]
	}
	return &haltStep{inner: s, err: e}
}

type haltStep struct {
	inner Step
	err   any
}

func (h *haltStep) Call(r Result) Result {
	res := h.inner.Call(r)
	if res.IsHalt() {
		return res
	}
	return res.Halt(h.err)
}
func (h *haltStep) AST() *ASTNode { return NewNode(TagNot, nil, h.inner.AST()) }
func (h *haltStep) Name() string  { return "halt(" + h.inner.Name() + ")" }

// Chain is a fluent wrapper over Step giving composition closer to
// spec.md's operator notation (a >> b, a | b, a.not) than bare function
// calls allow in Go.
type Chain struct{ Step }

// Of begins a fluent chain from s.
func Of(s Step) Chain { return Chain{s} }

func (c Chain) Then(b Step) Chain             { return Chain{And(c.Step, b)} }
func (c Chain) Or(b Step) Chain               { return Chain{Or(c.Step, b)} }
func (c Chain) Not(err ...any) Chain          { return Chain{Not(c.Step, err...)} }
func (c Chain) Default(v any) Chain           { return Chain{Default(c.Step, v)} }
func (c Chain) Nullable() Chain               { return Chain{Nullable(c.Step)} }
func (c Chain) Optional() Chain               { return Chain{Optional(c.Step)} }
func (c Chain) Present() Chain                { return Chain{WithPresence(c.Step)} }
func (c Chain) Value(v any) Chain             { return Chain{ValueOf(c.Step, v)} }
func (c Chain) Meta(attrs map[string]any) Chain { return Chain{Meta(c.Step, attrs)} }
func (c Chain) Halt(err ...any) Chain         { return Chain{Halt(c.Step, err...)} }
func (c Chain) Check(err any, predicate func(any) bool) Chain {
	return Chain{And(c.Step, Check(err, predicate))}
}
func (c Chain) Transform(targetType string, fn func(any) any) Chain {
	return Chain{And(c.Step, Transform(targetType, fn))}
}
func (c Chain) Rule(registry *RuleRegistry, name string, arg any) Chain {
	s, err := AttachRule(registry, c.Step, []TypeTag{TypeOf(c.Step)}, name, arg)
	if err != nil {
		return Chain{Halt(c.Step, err.Error())}
	}
	return Chain{s}
}
func (c Chain) Freeze(name ...string) Step { return Freeze(c.Step, name...) }
