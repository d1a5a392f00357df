package types

import "github.com/glaszig/plumb/step"

// Stream builds a lazy, finite (bounded by the input sequence),
// non-restartable sequence of Results: each pull applies element to the
// next input item. Unlike Array, a failing element does not halt the
// whole Stream — the consumer decides what to do with each pulled
// Result (spec.md §4.3).
func Stream(element step.Step) *StreamClass {
	return &StreamClass{element: element}
}

// StreamClass is Stream's step. Call validates that the input is a
// sequence and returns a *Cursor over it; Call itself never Halts for
// element failures, only for a non-sequence input.
type StreamClass struct {
	element step.Step
}

func (s *StreamClass) Call(r step.Result) step.Result {
	items, ok := toSlice(r.Value())
	if !ok {
		return r.Halt("must be a stream source")
	}
	return r.Valid(&Cursor{element: s.element, items: items})
}

func (s *StreamClass) AST() *step.ASTNode {
	return step.NewNode(step.TagStream, nil, s.element.AST())
}
func (s *StreamClass) Name() string { return "stream(" + s.element.Name() + ")" }

var _ step.Step = (*StreamClass)(nil)

// Cursor is a one-shot, forward-only pull cursor over a Stream's
// source sequence. It is not safe for concurrent use — a Stream is
// pull-based and synchronous per spec.md §5: "each pull is synchronous;
// consumer drives concurrency, not the stream."
type Cursor struct {
	element step.Step
	items   []any
	pos     int
}

// Next pulls and validates the next item, reporting ok=false once the
// source is exhausted. A failing element's Result is still returned
// (ok=true) so the consumer can inspect the Halt — Stream itself never
// short-circuits on element failure.
func (c *Cursor) Next() (result step.Result, ok bool) {
	if c.pos >= len(c.items) {
		return step.Result{}, false
	}
	item := c.items[c.pos]
	c.pos++
	return step.Resolve(c.element, item), true
}

// Remaining reports how many items have not yet been pulled.
func (c *Cursor) Remaining() int { return len(c.items) - c.pos }
