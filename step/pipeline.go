package step

// Pipeline is an ordered list of child steps executed sequentially like
// And, plus around(fn) middleware wrapping every subsequent step(result)
// invocation. Multiple arounds compose innermost-first: the first
// registered around sits closest to the raw step call, and each
// later-registered around wraps everything registered before it
// (spec.md §4.8).
type Pipeline struct {
	steps   []Step
	arounds []AroundFunc
	name    string
}

// AroundFunc wraps a single step invocation. next is the step (or the
// composition of previously-registered arounds around it) being wrapped;
// fn decides whether/how to call next.Call(r).
type AroundFunc func(next Step, r Result) Result

// NewPipeline builds a Pipeline over steps, executed in order.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: append([]Step(nil), steps...)}
}

// Around registers fn as middleware around every subsequent step call,
// returning a new Pipeline (the receiver is left unmodified, consistent
// with steps being immutable once published).
func (p *Pipeline) Around(fn AroundFunc) *Pipeline {
	return &Pipeline{
		steps:   p.steps,
		arounds: append(append([]AroundFunc(nil), p.arounds...), fn),
		name:    p.name,
	}
}

// Call runs each child step in order, short-circuiting on the first Halt.
func (p *Pipeline) Call(r Result) Result {
	cur := r
	for _, s := range p.steps {
		cur = p.invoke(s, cur)
		if cur.IsHalt() {
			return cur
		}
	}
	return cur
}

func (p *Pipeline) invoke(s Step, r Result) Result {
	call := stepFunc{fn: s.Call, name: s.Name()}
	composed := Step(call)
	for _, fn := range p.arounds {
		wrapped := composed
		around := fn
		composed = stepFunc{fn: func(rr Result) Result { return around(wrapped, rr) }}
	}
	return composed.Call(r)
}

// AST emits tag "pipeline" with one child per step, in order.
func (p *Pipeline) AST() *ASTNode {
	children := make([]*ASTNode, 0, len(p.steps))
	for _, s := range p.steps {
		children = append(children, s.AST())
	}
	return &ASTNode{Tag: TagPipeline, Attrs: map[string]any{}, Children: children}
}

// Name returns the pipeline's display name, or "pipeline" if unset.
func (p *Pipeline) Name() string {
	if p.name != "" {
		return p.name
	}
	return "pipeline"
}

var _ Step = (*Pipeline)(nil)
