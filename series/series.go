// Package series implements exact truncated formal power series in one
// indeterminate q, with rational coefficients and possibly negative exponents.
package series

import (
	"github.com/cockroachdb/errors"

	"github.com/tuneinsight/qseries/utils"
	"github.com/tuneinsight/qseries/utils/bignum"
)

// ErrNotInvertible is returned when inverting or dividing by the zero series.
var ErrNotInvertible = errors.New("series: not invertible")

// Series is an immutable truncated formal Laurent series
// sum_{e < trunc} c_e q^e, where coefficients at exponents >= trunc are unknown.
// Only nonzero coefficients are stored.
type Series struct {
	coeffs map[int]bignum.Frac
	trunc  int
}

// New returns the series sum_e coeffs[e] q^e truncated at T.
// Zero coefficients and exponents >= T are dropped. The map is copied.
func New(coeffs map[int]bignum.Frac, T int) Series {
	c := make(map[int]bignum.Frac, len(coeffs))
	for e, v := range coeffs {
		if e < T && !v.IsZero() {
			c[e] = v
		}
	}
	return Series{coeffs: c, trunc: T}
}

// FromInts returns the series sum_i coeffs[i] q^i truncated at T.
func FromInts(coeffs []int64, T int) Series {
	c := make(map[int]bignum.Frac, len(coeffs))
	for i, v := range coeffs {
		if i < T && v != 0 {
			c[i] = bignum.FracOf(v)
		}
	}
	return Series{coeffs: c, trunc: T}
}

// Zero returns 0 + O(q^T).
func Zero(T int) Series {
	return Series{coeffs: map[int]bignum.Frac{}, trunc: T}
}

// One returns 1 + O(q^T).
func One(T int) Series {
	return Constant(bignum.FracOf(1), T)
}

// Constant returns c + O(q^T).
func Constant(c bignum.Frac, T int) Series {
	return Monomial(c, 0, T)
}

// Q returns the canonical indeterminate q + O(q^T).
func Q(T int) Series {
	return QPow(1, T)
}

// QPow returns q^e + O(q^T).
func QPow(e, T int) Series {
	return Monomial(bignum.FracOf(1), e, T)
}

// Monomial returns c*q^e + O(q^T).
func Monomial(c bignum.Frac, e, T int) Series {
	s := Zero(T)
	if e < T && !c.IsZero() {
		s.coeffs[e] = c
	}
	return s
}

// Trunc returns the truncation order of s.
func (s Series) Trunc() int {
	return s.trunc
}

// Coeff returns the coefficient of q^e, zero if absent.
func (s Series) Coeff(e int) bignum.Frac {
	return s.coeffs[e]
}

// Len returns the number of nonzero coefficients of s.
func (s Series) Len() int {
	return len(s.coeffs)
}

// IsZero returns true if s has no nonzero coefficient.
func (s Series) IsZero() bool {
	return len(s.coeffs) == 0
}

// Exponents returns the exponents of the nonzero coefficients in ascending order.
func (s Series) Exponents() []int {
	return utils.GetSortedKeys(s.coeffs)
}

// MinExp returns the smallest exponent with a nonzero coefficient, 0 for the zero series.
func (s Series) MinExp() int {
	if len(s.coeffs) == 0 {
		return 0
	}
	first := true
	var m int
	for e := range s.coeffs {
		if first || e < m {
			m, first = e, false
		}
	}
	return m
}

// MaxExp returns the largest exponent with a nonzero coefficient, -1 for the zero series.
func (s Series) MaxExp() int {
	if len(s.coeffs) == 0 {
		return -1
	}
	first := true
	var m int
	for e := range s.coeffs {
		if first || e > m {
			m, first = e, false
		}
	}
	return m
}

// IsMonomial returns true if s has exactly one nonzero coefficient.
func (s Series) IsMonomial() bool {
	return len(s.coeffs) == 1
}

// IsCanonicalQ returns true if s is exactly q + O(q^T).
func (s Series) IsCanonicalQ() bool {
	return len(s.coeffs) == 1 && s.coeffs[1].IsOne()
}

// CoeffList returns the coefficients of q^from, ..., q^to (inclusive).
func (s Series) CoeffList(from, to int) []bignum.Frac {
	if to < from {
		return []bignum.Frac{}
	}
	out := make([]bignum.Frac, to-from+1)
	for i := range out {
		out[i] = s.coeffs[from+i]
	}
	return out
}

// Equal returns true if s and o have the same truncation and coefficients.
func (s Series) Equal(o Series) bool {
	if s.trunc != o.trunc || len(s.coeffs) != len(o.coeffs) {
		return false
	}
	for e, c := range s.coeffs {
		if !c.Equal(o.coeffs[e]) {
			return false
		}
	}
	return true
}

// TruncTo returns s with truncation min(s.Trunc(), T).
func (s Series) TruncTo(T int) Series {
	return New(s.coeffs, utils.Min(s.trunc, T))
}

// Neg returns -s.
func (s Series) Neg() Series {
	c := make(map[int]bignum.Frac, len(s.coeffs))
	for e, v := range s.coeffs {
		c[e] = v.Neg()
	}
	return Series{coeffs: c, trunc: s.trunc}
}

// Add returns s + o truncated at min(s.Trunc(), o.Trunc()).
func (s Series) Add(o Series) Series {
	t := utils.Min(s.trunc, o.trunc)
	c := make(map[int]bignum.Frac, len(s.coeffs)+len(o.coeffs))
	for e, v := range s.coeffs {
		if e < t {
			c[e] = v
		}
	}
	for e, v := range o.coeffs {
		if e < t {
			if sum := c[e].Add(v); sum.IsZero() {
				delete(c, e)
			} else {
				c[e] = sum
			}
		}
	}
	return Series{coeffs: c, trunc: t}
}

// Sub returns s - o truncated at min(s.Trunc(), o.Trunc()).
func (s Series) Sub(o Series) Series {
	return s.Add(o.Neg())
}

// Scale returns c*s.
func (s Series) Scale(c bignum.Frac) Series {
	if c.IsZero() {
		return Zero(s.trunc)
	}
	out := make(map[int]bignum.Frac, len(s.coeffs))
	for e, v := range s.coeffs {
		out[e] = v.Mul(c)
	}
	return Series{coeffs: out, trunc: s.trunc}
}

// Shift returns q^m * s with the same truncation. Exponents reaching the
// truncation are dropped.
func (s Series) Shift(m int) Series {
	c := make(map[int]bignum.Frac, len(s.coeffs))
	for e, v := range s.coeffs {
		if e+m < s.trunc {
			c[e+m] = v
		}
	}
	return Series{coeffs: c, trunc: s.trunc}
}

// Mul returns s * o truncated at min(s.Trunc(), o.Trunc()).
func (s Series) Mul(o Series) Series {

	t := utils.Min(s.trunc, o.trunc)

	if len(s.coeffs) == 0 || len(o.coeffs) == 0 {
		return Zero(t)
	}

	se, oe := s.Exponents(), o.Exponents()

	c := make(map[int]bignum.Frac)
	for _, ea := range se {
		if ea+oe[0] >= t {
			break
		}
		ca := s.coeffs[ea]
		for _, eb := range oe {
			e := ea + eb
			if e >= t {
				break
			}
			c[e] = c[e].Add(ca.Mul(o.coeffs[eb]))
		}
	}

	for e, v := range c {
		if v.IsZero() {
			delete(c, e)
		}
	}

	return Series{coeffs: c, trunc: t}
}

// Inverse returns 1/s with the truncation of s.
// If the minimal exponent m of s is nonzero, s = q^m h and the result is
// q^-m h^-1, where h^-1 is computed at truncation trunc-m; the result may
// carry negative exponents.
// Returns ErrNotInvertible for the zero series.
func (s Series) Inverse() (Series, error) {

	if s.IsZero() {
		return Series{}, errors.Wrapf(ErrNotInvertible, "0 + O(q^%d)", s.trunc)
	}

	if m := s.MinExp(); m != 0 {
		h := make(map[int]bignum.Frac, len(s.coeffs))
		for e, v := range s.coeffs {
			h[e-m] = v
		}
		inv, err := Series{coeffs: h, trunc: s.trunc - m}.Inverse()
		if err != nil {
			return Series{}, err
		}
		c := make(map[int]bignum.Frac, len(inv.coeffs))
		for e, v := range inv.coeffs {
			if e-m < s.trunc {
				c[e-m] = v
			}
		}
		return Series{coeffs: c, trunc: s.trunc}, nil
	}

	t := s.trunc
	if t <= 0 {
		return Zero(t), nil
	}

	c0inv := bignum.FracOf(1).MustQuo(s.coeffs[0])
	negc0inv := c0inv.Neg()

	// Nonzero coefficients of s at positive exponents, ascending.
	var exps []int
	for _, e := range s.Exponents() {
		if e > 0 {
			exps = append(exps, e)
		}
	}

	g := make([]bignum.Frac, t)
	g[0] = c0inv
	for n := 1; n < t; n++ {
		var acc bignum.Frac
		for _, j := range exps {
			if j > n {
				break
			}
			acc = acc.Add(s.coeffs[j].Mul(g[n-j]))
		}
		g[n] = negc0inv.Mul(acc)
	}

	c := make(map[int]bignum.Frac)
	for n, v := range g {
		if !v.IsZero() {
			c[n] = v
		}
	}

	return Series{coeffs: c, trunc: t}, nil
}

// Div returns s / o.
// Returns ErrNotInvertible if o is the zero series.
func (s Series) Div(o Series) (Series, error) {
	inv, err := o.Inverse()
	if err != nil {
		return Series{}, err
	}
	return s.Mul(inv), nil
}

// Pow returns s^n by binary exponentiation. A negative n inverts s first and
// n = 0 returns One(s.Trunc()).
// Returns ErrNotInvertible if n < 0 and s is the zero series.
func (s Series) Pow(n int) (Series, error) {

	if n < 0 {
		inv, err := s.Inverse()
		if err != nil {
			return Series{}, err
		}
		return inv.Pow(-n)
	}

	r, b := One(s.trunc), s
	for n > 0 {
		if n&1 == 1 {
			r = r.Mul(b)
		}
		n >>= 1
		if n > 0 {
			b = b.Mul(b)
		}
	}

	return r, nil
}

// MustPow is the same as Pow but panics on error.
func (s Series) MustPow(n int) Series {
	r, err := s.Pow(n)
	if err != nil {
		panic(err)
	}
	return r
}

// SubsQ returns s(q^k).
// For k = 0 the result is the constant sum of the coefficients of s with the
// same truncation. Otherwise exponents are multiplied by k, the truncation by |k|,
// and exponents reaching the new truncation are dropped.
func (s Series) SubsQ(k int) Series {

	if k == 0 {
		var sum bignum.Frac
		for _, v := range s.coeffs {
			sum = sum.Add(v)
		}
		return Constant(sum, s.trunc)
	}

	t := s.trunc * utils.Abs(k)
	c := make(map[int]bignum.Frac, len(s.coeffs))
	for e, v := range s.coeffs {
		if e*k < t {
			c[e*k] = v
		}
	}

	return Series{coeffs: c, trunc: t}
}

// Qdiff returns the q-derivative q d/dq s = sum e c_e q^e.
func (s Series) Qdiff() Series {
	c := make(map[int]bignum.Frac, len(s.coeffs))
	for e, v := range s.coeffs {
		if e != 0 {
			c[e] = v.Mul(bignum.FracOf(int64(e)))
		}
	}
	return Series{coeffs: c, trunc: s.trunc}
}
