package types

import (
	"context"
	"fmt"
	"reflect"

	"golang.org/x/sync/errgroup"

	"github.com/glaszig/plumb/step"
)

// Array builds a step validating that the input is an ordered sequence
// and that element accepts every item (spec.md §4.3). On any child
// Halt, the overall Result Halts with an errors mapping {index ->
// errors}; the carried value is the original sequence.
func Array(element step.Step) *ArrayClass {
	return &ArrayClass{element: element}
}

// ArrayClass is Array's step. Use Concurrent to evaluate elements on a
// worker pool instead of sequentially.
type ArrayClass struct {
	element    step.Step
	concurrent bool
}

// Concurrent returns a copy of a that evaluates its elements in
// parallel via golang.org/x/sync/errgroup. Ordering of the output
// sequence matches input order regardless of completion order; a panic
// in a worker surfaces as a Halt for that index rather than crashing
// the process (spec.md §5).
func (a *ArrayClass) Concurrent() *ArrayClass {
	return &ArrayClass{element: a.element, concurrent: true}
}

func (a *ArrayClass) Call(r step.Result) step.Result {
	items, ok := toSlice(r.Value())
	if !ok {
		return r.Halt("must be an array")
	}

	values := make([]any, len(items))
	errs := make(map[int]any, len(items))

	if a.concurrent {
		a.runConcurrent(items, values, errs)
	} else {
		a.runSequential(items, values, errs)
	}

	if len(errs) > 0 {
		return r.Halt(errs)
	}
	return r.Valid(values)
}

func (a *ArrayClass) runSequential(items []any, values []any, errs map[int]any) {
	for i, item := range items {
		res := step.Resolve(a.element, item)
		if res.IsHalt() {
			errs[i] = res.Errors()
			continue
		}
		values[i] = res.Value()
	}
}

func (a *ArrayClass) runConcurrent(items []any, values []any, errs map[int]any) {
	g, _ := errgroup.WithContext(context.Background())
	type outcome struct {
		value any
		err   any
	}
	outcomes := make([]outcome, len(items))

	for i, item := range items {
		i, item := i, item
		g.Go(func() (panicErr error) {
			defer func() {
				if rec := recover(); rec != nil {
					outcomes[i] = outcome{err: fmt.Sprintf("panic: %v", rec)}
				}
			}()
			res := step.Resolve(a.element, item)
			if res.IsHalt() {
				outcomes[i] = outcome{err: res.Errors()}
				return nil
			}
			outcomes[i] = outcome{value: res.Value()}
			return nil
		})
	}
	_ = g.Wait()

	for i, o := range outcomes {
		if o.err != nil {
			errs[i] = o.err
			continue
		}
		values[i] = o.value
	}
}

func (a *ArrayClass) AST() *step.ASTNode {
	return step.NewNode(step.TagArray, map[string]any{"concurrent": a.concurrent}, a.element.AST())
}
func (a *ArrayClass) Name() string { return "array(" + a.element.Name() + ")" }

var _ step.Step = (*ArrayClass)(nil)

// toSlice reflects v into a []any, accepting any slice or array kind,
// including []any itself.
func toSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}
