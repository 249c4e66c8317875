package utils

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// GetKeys returns the keys of the input map.
// Order is not guaranteed.
func GetKeys[K constraints.Ordered, V any](m map[K]V) (keys []K) {

	keys = make([]K, len(m))

	var i int
	for key := range m {
		keys[i] = key
		i++
	}

	return
}

// GetSortedKeys returns the sorted keys of a map.
func GetSortedKeys[K constraints.Ordered, V any](m map[K]V) (keys []K) {
	keys = GetKeys(m)
	SortSlice(keys)
	return
}

// GetDistincts returns the list of distinct elements in v.
// Order is not guaranteed.
func GetDistincts[V comparable](v []V) (vd []V) {
	m := map[V]bool{}
	for _, vi := range v {
		m[vi] = true
	}

	vd = make([]V, len(m))

	var i int
	for mi := range m {
		vd[i] = mi
		i++
	}

	return
}

// SortSlice sorts a slice in place.
func SortSlice[T constraints.Ordered](s []T) {
	sort.Slice(s, func(i, j int) bool {
		return s[i] < s[j]
	})
}

// EqualSlice checks the equality between two slices of comparable values.
func EqualSlice[V comparable](a, b []V) (v bool) {
	if len(a) != len(b) {
		return false
	}
	v = true
	for i := range a {
		v = v && (a[i] == b[i])
	}
	return
}

// IsInSlice checks if x is in slice.
func IsInSlice[V comparable](x V, slice []V) (v bool) {
	for i := range slice {
		v = v || (slice[i] == x)
	}
	return
}

// Range returns the slice [start, start+1, ..., end-1].
func Range[V constraints.Integer](start, end V) (r []V) {
	if end <= start {
		return []V{}
	}
	r = make([]V, 0, end-start)
	for i := start; i < end; i++ {
		r = append(r, i)
	}
	return
}
