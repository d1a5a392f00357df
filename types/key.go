package types

// Key is a Hash field descriptor: a name and whether it may be absent
// from input. Equality ignores Optional so that "foo" and "foo?" refer
// to the same slot across merges (spec.md §3).
type Key struct {
	Name     string
	Optional bool
}

// Equal compares two keys by Name only.
func (k Key) Equal(other Key) bool { return k.Name == other.Name }
