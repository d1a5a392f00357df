// Package maputil provides small generic helpers over Go maps shared by
// plumb's compound types, where deterministic iteration order matters
// (types.HashMap, types.HashClass map mode).
package maputil

import (
	"cmp"
	"sort"
)

// SortedKeys returns m's keys in ascending order. Never nil, so callers
// can range over the result without a nil check.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
