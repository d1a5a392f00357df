package step

import "sync"

// Deferred builds a lazy reference to a step resolved on first call. The
// thunk may close over the very type being defined, which is what makes
// recursive types possible (spec.md §4.1, §9):
//
//	var list step.Step
//	list = types.Schema(
//	    types.F("value", step.Any()),
//	    types.F("next", step.Nullable(step.Deferred(func() step.Step { return list }))),
//	)
//
// The thunk is resolved at most once, guarded by sync.Once so concurrent
// re-entrant first calls block on the same resolution rather than racing
// (spec.md §5: "must ensure the thunk memoizes its target after first
// resolution"). No third-party singleflight/memoization library in the
// retrieved pack addresses this narrower case better than the standard
// library's exactly-once primitive, so Deferred stays on sync.Once — see
// DESIGN.md.
//
// AST deliberately does not expand the thunk — it emits a leaf "any" node
// so AST traversals stay finite even for self-referential types.
func Deferred(thunk func() Step) Step {
	return &deferredStep{thunk: thunk}
}

type deferredStep struct {
	thunk    func() Step
	once     sync.Once
	resolved Step
}

func (d *deferredStep) resolve() Step {
	d.once.Do(func() {
		d.resolved = d.thunk()
	})
	return d.resolved
}

func (d *deferredStep) Call(r Result) Result { return d.resolve().Call(r) }
func (d *deferredStep) AST() *ASTNode {
	return NewNode(TagAny, map[string]any{"deferred": true})
}
func (d *deferredStep) Name() string { return "deferred" }
