// Package utils implements various helper functions.
package utils

import (
	"golang.org/x/exp/constraints"
)

// Min returns the minimum value of the two inputs.
func Min[V constraints.Ordered](a, b V) (r V) {
	if a <= b {
		return a
	}
	return b
}

// Max returns the maximum value of the two inputs.
func Max[V constraints.Ordered](a, b V) (r V) {
	if a >= b {
		return a
	}
	return b
}

// MinSlice returns the minimum value of a non-empty slice.
func MinSlice[V constraints.Ordered](slice []V) (min V) {
	min = slice[0]
	for _, c := range slice[1:] {
		min = Min(min, c)
	}
	return
}

// MaxSlice returns the maximum value of a non-empty slice.
func MaxSlice[V constraints.Ordered](slice []V) (max V) {
	max = slice[0]
	for _, c := range slice[1:] {
		max = Max(max, c)
	}
	return
}

// Abs returns the absolute value of x.
func Abs[V constraints.Signed](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

// GCD computes the non-negative greatest common divisor of a and b.
// GCD(0, 0) = 0.
func GCD[V constraints.Signed](a, b V) V {
	a, b = Abs(a), Abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// FloorDiv returns the floor of a/b for b != 0.
func FloorDiv[V constraints.Signed](a, b V) V {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Pow returns x^n for n >= 0 by square and multiply.
// Overflow is not checked.
func Pow[V constraints.Integer](x V, n int) (r V) {
	r = 1
	for n > 0 {
		if n&1 == 1 {
			r *= x
		}
		x *= x
		n >>= 1
	}
	return
}
