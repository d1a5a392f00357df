package step

import (
	"fmt"
	"reflect"
)

// Any is the identity step: always Valid, unchanged.
func Any() Step {
	return leafStep{
		tag:  TagAny,
		call: func(r Result) Result { return r },
	}
}

// Static always returns Valid(v) regardless of the input value.
func Static(v any) Step {
	return leafStep{
		tag:   TagStatic,
		attrs: map[string]any{"value": v, "default": v},
		call:  func(r Result) Result { return r.Valid(v) },
	}
}

// ValueStep halts unless the input value equals v.
func ValueStep(v any) Step {
	return leafStep{
		tag:   TagValue,
		attrs: map[string]any{"value": v},
		call: func(r Result) Result {
			if equal(r.Value(), v) {
				return r.Valid(r.Value())
			}
			return r.Halt(fmt.Sprintf("must equal %v", v))
		},
	}
}

// Nothing matches only the Undefined sentinel.
func Nothing() Step {
	return leafStep{
		tag: TagUndefined,
		call: func(r Result) Result {
			if IsUndefined(r.Value()) {
				return r.Valid(r.Value())
			}
			return r.Halt("must be undefined")
		},
	}
}

// Nil matches only a nil value (including typed nils held in an any).
func Nil() Step {
	return leafStep{
		tag:   TagAny,
		attrs: map[string]any{"type": TypeNil},
		call: func(r Result) Result {
			if isNil(r.Value()) {
				return r.Valid(r.Value())
			}
			return r.Halt("must be nil")
		},
	}
}

// True matches the boolean value true.
func True() Step {
	return leafStep{
		tag:   TagBoolean,
		attrs: map[string]any{"type": TypeBoolean, "value": true},
		call: func(r Result) Result {
			if b, ok := r.Value().(bool); ok && b {
				return r.Valid(r.Value())
			}
			return r.Halt("must be true")
		},
	}
}

// False matches the boolean value false.
func False() Step {
	return leafStep{
		tag:   TagBoolean,
		attrs: map[string]any{"type": TypeBoolean, "value": false},
		call: func(r Result) Result {
			if b, ok := r.Value().(bool); ok && !b {
				return r.Valid(r.Value())
			}
			return r.Halt("must be false")
		},
	}
}

// Boolean matches true or false. Equivalent to Or(True(), False()).
func Boolean() Step {
	return Or(True(), False())
}

// Present checks the CURRENT value for absence: Undefined, nil, an empty
// string, or an empty slice/array/map. Supplemented per SPEC_FULL.md —
// spec.md describes this as "tested via a respond_to empty?-equivalent
// capability check"; Go has no such universal protocol, so Emptiable is
// consulted first and reflection is the fallback.
//
// Present is the leaf; WithPresence sequences it in front of another
// step the way Chain.Present does (spec.md §4.1 "present").
func Present() Step {
	return leafStep{
		tag: TagAny,
		call: func(r Result) Result {
			if isAbsent(r.Value()) {
				return r.Halt("must be present")
			}
			return r.Valid(r.Value())
		},
	}
}

// Emptiable lets a custom type opt into Present's absence check without
// reflection.
type Emptiable interface {
	IsEmpty() bool
}

func isAbsent(v any) bool {
	if IsUndefined(v) || isNil(v) {
		return true
	}
	if e, ok := v.(Emptiable); ok {
		return e.IsEmpty()
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len() == 0
	default:
		return false
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Interface is Valid iff the input value responds to (implements a
// method named) every name in names — the method-set analogue of
// duck typing, resolved via reflection over the value's (possibly
// pointer) method set.
func Interface(names ...string) Step {
	wanted := append([]string(nil), names...)
	return leafStep{
		tag:   TagInterface,
		attrs: map[string]any{"methods": wanted},
		call: func(r Result) Result {
			v := r.Value()
			if v == nil {
				return r.Halt(fmt.Sprintf("must respond to %v", wanted))
			}
			t := reflect.TypeOf(v)
			for _, name := range wanted {
				if _, ok := t.MethodByName(name); !ok {
					return r.Halt(fmt.Sprintf("must respond to %s", name))
				}
			}
			return r.Valid(v)
		},
	}
}

// leafStep is the common shape for leaf steps with no children: a tag,
// optional attrs, and a call function closing over the matcher logic.
type leafStep struct {
	tag   Tag
	attrs map[string]any
	name  string
	call  func(Result) Result
}

func (l leafStep) Call(r Result) Result { return l.call(r) }
func (l leafStep) AST() *ASTNode        { return NewNode(l.tag, l.attrs) }
func (l leafStep) Name() string {
	if l.name != "" {
		return l.name
	}
	return string(l.tag)
}

// equal compares two values for equality without panicking on
// uncomparable dynamic types (e.g. comparing a slice to a slice).
func equal(a, b any) bool {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if !av.IsValid() || !bv.IsValid() {
		return a == nil && b == nil
	}
	if av.Type() != bv.Type() {
		return false
	}
	if !av.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}
