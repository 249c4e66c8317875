// Package bignum implements exact arbitrary precision integers and rationals.
package bignum

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	// LimbBase is the radix of the limbs of an Int.
	LimbBase = 1000000000
	// LimbDigits is the number of decimal digits stored in a limb.
	LimbDigits = 9
)

// Int is an immutable arbitrary precision signed integer.
// The magnitude is stored as base 10^9 limbs, least significant first, without
// leading zero limbs. Zero has no limbs and is never negative.
// The zero value is a valid zero.
type Int struct {
	neg   bool
	limbs []uint32
}

// NewInt returns the Int of value x.
func NewInt(x int64) Int {
	if x == 0 {
		return Int{}
	}
	var u uint64
	if x < 0 {
		u = uint64(-(x + 1)) + 1
	} else {
		u = uint64(x)
	}
	return Int{neg: x < 0, limbs: uint64ToLimbs(u)}
}

// ParseInt parses a base 10 integer. Surrounding whitespace and a leading
// '+' or '-' are accepted. Returns ErrInvalidFormat on empty, sign only or
// non-digit input.
func ParseInt(s string) (Int, error) {

	t := strings.TrimSpace(s)

	var neg bool
	if len(t) > 0 && (t[0] == '+' || t[0] == '-') {
		neg = t[0] == '-'
		t = t[1:]
	}

	if len(t) == 0 {
		return Int{}, errors.Wrapf(ErrInvalidFormat, "%q", s)
	}

	for i := 0; i < len(t); i++ {
		if t[i] < '0' || t[i] > '9' {
			return Int{}, errors.Wrapf(ErrInvalidFormat, "%q", s)
		}
	}

	limbs := make([]uint32, 0, len(t)/LimbDigits+1)
	for end := len(t); end > 0; end -= LimbDigits {
		start := end - LimbDigits
		if start < 0 {
			start = 0
		}
		var limb uint32
		for _, c := range t[start:end] {
			limb = limb*10 + uint32(c-'0')
		}
		limbs = append(limbs, limb)
	}

	return newInt(neg, limbs), nil
}

// MustParseInt is the same as ParseInt but panics on error.
func MustParseInt(s string) Int {
	x, err := ParseInt(s)
	if err != nil {
		panic(err)
	}
	return x
}

// newInt normalizes limbs and returns the resulting Int.
func newInt(neg bool, limbs []uint32) Int {
	limbs = trim(limbs)
	if len(limbs) == 0 {
		return Int{}
	}
	return Int{neg: neg, limbs: limbs}
}

// String returns the base 10 representation of x.
func (x Int) String() string {
	if len(x.limbs) == 0 {
		return "0"
	}
	var sb strings.Builder
	sb.Grow(len(x.limbs)*LimbDigits + 1)
	if x.neg {
		sb.WriteByte('-')
	}
	top := len(x.limbs) - 1
	sb.WriteString(strconv.FormatUint(uint64(x.limbs[top]), 10))
	for i := top - 1; i >= 0; i-- {
		s := strconv.FormatUint(uint64(x.limbs[i]), 10)
		sb.WriteString(strings.Repeat("0", LimbDigits-len(s)))
		sb.WriteString(s)
	}
	return sb.String()
}

// Sign returns -1, 0 or 1 depending on the sign of x.
func (x Int) Sign() int {
	switch {
	case len(x.limbs) == 0:
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

// IsZero returns true if x = 0.
func (x Int) IsZero() bool {
	return len(x.limbs) == 0
}

// IsOne returns true if x = 1.
func (x Int) IsOne() bool {
	return !x.neg && len(x.limbs) == 1 && x.limbs[0] == 1
}

// Abs returns |x|.
func (x Int) Abs() Int {
	return Int{limbs: x.limbs}
}

// Neg returns -x.
func (x Int) Neg() Int {
	if len(x.limbs) == 0 {
		return x
	}
	return Int{neg: !x.neg, limbs: x.limbs}
}

// Add returns x + y.
func (x Int) Add(y Int) Int {
	if x.neg == y.neg {
		return newInt(x.neg, addMag(x.limbs, y.limbs))
	}
	switch cmpMag(x.limbs, y.limbs) {
	case 0:
		return Int{}
	case 1:
		return newInt(x.neg, subMag(x.limbs, y.limbs))
	default:
		return newInt(y.neg, subMag(y.limbs, x.limbs))
	}
}

// Sub returns x - y.
func (x Int) Sub(y Int) Int {
	return x.Add(y.Neg())
}

// Mul returns x * y.
func (x Int) Mul(y Int) Int {
	if len(x.limbs) == 0 || len(y.limbs) == 0 {
		return Int{}
	}
	return newInt(x.neg != y.neg, mulMag(x.limbs, y.limbs))
}

// MulInt64 returns x * y.
func (x Int) MulInt64(y int64) Int {
	return x.Mul(NewInt(y))
}

// QuoRem returns the truncated quotient and the remainder of x / y.
// The quotient is rounded toward zero and the remainder takes the sign of x,
// so that x = q*y + r and |r| < |y|.
// Returns ErrDivisionByZero if y = 0.
func (x Int) QuoRem(y Int) (q, r Int, err error) {
	if len(y.limbs) == 0 {
		return Int{}, Int{}, errors.Wrapf(ErrDivisionByZero, "%s / 0", x)
	}
	q, r = x.quoRem(y)
	return
}

// quoRem is QuoRem for y != 0.
func (x Int) quoRem(y Int) (q, r Int) {

	if cmpMag(x.limbs, y.limbs) < 0 {
		return Int{}, x
	}

	var qm, rm []uint32
	if len(y.limbs) == 1 {
		var rs uint32
		qm, rs = divModSmall(x.limbs, y.limbs[0])
		rm = []uint32{rs}
	} else {
		qm, rm = divModMag(x.limbs, y.limbs)
	}

	return newInt(x.neg != y.neg, qm), newInt(x.neg, rm)
}

// Quo returns the truncated quotient x / y.
func (x Int) Quo(y Int) (Int, error) {
	q, _, err := x.QuoRem(y)
	return q, err
}

// Rem returns the remainder of the truncated division x / y.
func (x Int) Rem(y Int) (Int, error) {
	_, r, err := x.QuoRem(y)
	return r, err
}

// Cmp compares x and y and returns -1, 0 or 1.
func (x Int) Cmp(y Int) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	case x.neg:
		return -cmpMag(x.limbs, y.limbs)
	default:
		return cmpMag(x.limbs, y.limbs)
	}
}

// CmpAbs compares |x| and |y| and returns -1, 0 or 1.
func (x Int) CmpAbs(y Int) int {
	return cmpMag(x.limbs, y.limbs)
}

// Equal returns true if x = y.
func (x Int) Equal(y Int) bool {
	return x.Cmp(y) == 0
}

// Int64 returns the int64 value of x and true if x fits in an int64.
func (x Int) Int64() (int64, bool) {

	var u uint64
	for i := len(x.limbs) - 1; i >= 0; i-- {
		if u > (math.MaxUint64-uint64(x.limbs[i]))/LimbBase {
			return 0, false
		}
		u = u*LimbBase + uint64(x.limbs[i])
	}

	if x.neg {
		if u > 1<<63 {
			return 0, false
		}
		return int64(-u), true
	}

	if u > math.MaxInt64 {
		return 0, false
	}

	return int64(u), true
}

// GCD returns the non-negative greatest common divisor of a and b.
// GCD(0, x) = |x|.
func GCD(a, b Int) Int {
	a, b = a.Abs(), b.Abs()
	for !b.IsZero() {
		_, r := a.quoRem(b)
		a, b = b, r
	}
	return a
}

func uint64ToLimbs(u uint64) (limbs []uint32) {
	for u > 0 {
		limbs = append(limbs, uint32(u%LimbBase))
		u /= LimbBase
	}
	return
}

// trim removes the leading zero limbs.
func trim(a []uint32) []uint32 {
	n := len(a)
	for n > 0 && a[n-1] == 0 {
		n--
	}
	return a[:n]
}

func cmpMag(a, b []uint32) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

func addMag(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	r := make([]uint32, len(a)+1)
	var carry uint32
	for i := range a {
		s := a[i] + carry
		if i < len(b) {
			s += b[i]
		}
		if s >= LimbBase {
			s -= LimbBase
			carry = 1
		} else {
			carry = 0
		}
		r[i] = s
	}
	r[len(a)] = carry
	return trim(r)
}

// subMag returns a - b for |a| >= |b|.
func subMag(a, b []uint32) []uint32 {
	r := make([]uint32, len(a))
	var borrow int64
	for i := range a {
		d := int64(a[i]) - borrow
		if i < len(b) {
			d -= int64(b[i])
		}
		if d < 0 {
			d += LimbBase
			borrow = 1
		} else {
			borrow = 0
		}
		r[i] = uint32(d)
	}
	return trim(r)
}

func mulMag(a, b []uint32) []uint32 {
	r := make([]uint64, len(a)+len(b))
	for i := range a {
		var carry uint64
		ai := uint64(a[i])
		for j := range b {
			cur := r[i+j] + ai*uint64(b[j]) + carry
			r[i+j] = cur % LimbBase
			carry = cur / LimbBase
		}
		for k := i + len(b); carry > 0; k++ {
			cur := r[k] + carry
			r[k] = cur % LimbBase
			carry = cur / LimbBase
		}
	}
	out := make([]uint32, len(r))
	for i := range r {
		out[i] = uint32(r[i])
	}
	return trim(out)
}

func mulSmall(a []uint32, m uint32) []uint32 {
	if m == 0 {
		return nil
	}
	r := make([]uint32, len(a)+1)
	var carry uint64
	for i := range a {
		cur := uint64(a[i])*uint64(m) + carry
		r[i] = uint32(cur % LimbBase)
		carry = cur / LimbBase
	}
	r[len(a)] = uint32(carry)
	return trim(r)
}

// divModSmall is the short division of a by the single limb d > 0.
func divModSmall(a []uint32, d uint32) ([]uint32, uint32) {
	q := make([]uint32, len(a))
	var r uint64
	for i := len(a) - 1; i >= 0; i-- {
		cur := r*LimbBase + uint64(a[i])
		q[i] = uint32(cur / uint64(d))
		r = cur % uint64(d)
	}
	return trim(q), uint32(r)
}

// divModMag is the schoolbook long division of a by b, len(b) >= 2.
// Each quotient limb is the largest d in [0, LimbBase) such that b*d does
// not exceed the running remainder, found by binary search.
func divModMag(a, b []uint32) (q, r []uint32) {

	q = make([]uint32, len(a))

	for i := len(a) - 1; i >= 0; i-- {

		// r = r * LimbBase + a[i]
		if len(r) > 0 || a[i] != 0 {
			r = append([]uint32{a[i]}, r...)
		}

		if cmpMag(r, b) < 0 {
			continue
		}

		lo, hi := uint32(1), uint32(LimbBase-1)
		for lo < hi {
			mid := lo + (hi-lo+1)/2
			if cmpMag(mulSmall(b, mid), r) <= 0 {
				lo = mid
			} else {
				hi = mid - 1
			}
		}

		q[i] = lo
		r = subMag(r, mulSmall(b, lo))
	}

	return trim(q), r
}
