package bignum

import (
	"github.com/cockroachdb/errors"
)

var intOne = NewInt(1)

// Frac is an immutable exact rational number num/den, always reduced,
// with den > 0 and zero represented as 0/1.
// The zero value is a valid zero.
type Frac struct {
	num, den Int
}

// FracOf returns the integer n as a Frac.
func FracOf(n int64) Frac {
	return Frac{num: NewInt(n), den: intOne}
}

// FracFromInt returns the integer n as a Frac.
func FracFromInt(n Int) Frac {
	return Frac{num: n, den: intOne}
}

// NewFrac returns n/d in lowest terms.
// Returns ErrDivisionByZero if d = 0.
func NewFrac(n, d int64) (Frac, error) {
	return NewFracInt(NewInt(n), NewInt(d))
}

// NewFracInt returns n/d in lowest terms.
// Returns ErrDivisionByZero if d = 0.
func NewFracInt(n, d Int) (Frac, error) {
	if d.IsZero() {
		return Frac{}, errors.Wrapf(ErrDivisionByZero, "%s/0", n)
	}
	return reduce(n, d), nil
}

// MustFrac is the same as NewFrac but panics on error.
func MustFrac(n, d int64) Frac {
	f, err := NewFrac(n, d)
	if err != nil {
		panic(err)
	}
	return f
}

// reduce normalizes n/d for d != 0.
func reduce(n, d Int) Frac {

	if n.IsZero() {
		return Frac{den: intOne}
	}

	if d.Sign() < 0 {
		n, d = n.Neg(), d.Neg()
	}

	if g := GCD(n, d); !g.IsOne() {
		n, _ = n.quoRem(g)
		d, _ = d.quoRem(g)
	}

	return Frac{num: n, den: d}
}

// Num returns the numerator of f.
func (f Frac) Num() Int {
	return f.num
}

// Den returns the (positive) denominator of f.
func (f Frac) Den() Int {
	if f.den.IsZero() {
		return intOne
	}
	return f.den
}

// Add returns f + g.
func (f Frac) Add(g Frac) Frac {
	if f.IsInt() && g.IsInt() {
		return FracFromInt(f.num.Add(g.num))
	}
	fd, gd := f.Den(), g.Den()
	return reduce(f.num.Mul(gd).Add(g.num.Mul(fd)), fd.Mul(gd))
}

// Sub returns f - g.
func (f Frac) Sub(g Frac) Frac {
	return f.Add(g.Neg())
}

// Mul returns f * g.
func (f Frac) Mul(g Frac) Frac {
	if f.IsZero() || g.IsZero() {
		return Frac{}
	}
	if f.IsInt() && g.IsInt() {
		return FracFromInt(f.num.Mul(g.num))
	}
	return reduce(f.num.Mul(g.num), f.Den().Mul(g.Den()))
}

// Quo returns f / g.
// Returns ErrDivisionByZero if g = 0.
func (f Frac) Quo(g Frac) (Frac, error) {
	if g.IsZero() {
		return Frac{}, errors.Wrapf(ErrDivisionByZero, "%s / 0", f)
	}
	return reduce(f.num.Mul(g.Den()), f.Den().Mul(g.num)), nil
}

// MustQuo returns f / g and panics if g = 0.
func (f Frac) MustQuo(g Frac) Frac {
	h, err := f.Quo(g)
	if err != nil {
		panic(err)
	}
	return h
}

// Inv returns 1/f.
// Returns ErrDivisionByZero if f = 0.
func (f Frac) Inv() (Frac, error) {
	return FracOf(1).Quo(f)
}

// Neg returns -f.
func (f Frac) Neg() Frac {
	return Frac{num: f.num.Neg(), den: f.Den()}
}

// Abs returns |f|.
func (f Frac) Abs() Frac {
	return Frac{num: f.num.Abs(), den: f.Den()}
}

// Pow returns f^n.
// Returns ErrDivisionByZero if f = 0 and n < 0.
func (f Frac) Pow(n int) (Frac, error) {

	if n < 0 {
		inv, err := f.Inv()
		if err != nil {
			return Frac{}, err
		}
		return inv.Pow(-n)
	}

	r, b := FracOf(1), f
	for n > 0 {
		if n&1 == 1 {
			r = r.Mul(b)
		}
		b = b.Mul(b)
		n >>= 1
	}

	return r, nil
}

// Cmp compares f and g and returns -1, 0 or 1.
func (f Frac) Cmp(g Frac) int {
	return f.num.Mul(g.Den()).Cmp(g.num.Mul(f.Den()))
}

// Equal returns true if f = g.
func (f Frac) Equal(g Frac) bool {
	return f.num.Equal(g.num) && f.Den().Equal(g.Den())
}

// Sign returns -1, 0 or 1 depending on the sign of f.
func (f Frac) Sign() int {
	return f.num.Sign()
}

// IsZero returns true if f = 0.
func (f Frac) IsZero() bool {
	return f.num.IsZero()
}

// IsOne returns true if f = 1.
func (f Frac) IsOne() bool {
	return f.num.IsOne() && f.Den().IsOne()
}

// IsInt returns true if the denominator of f is 1.
func (f Frac) IsInt() bool {
	return f.Den().IsOne()
}

// Int64 returns the value of f and true if f is an integer fitting in an int64.
func (f Frac) Int64() (int64, bool) {
	if !f.IsInt() {
		return 0, false
	}
	return f.num.Int64()
}

// String returns "n" if f is an integer and "n/d" otherwise.
func (f Frac) String() string {
	if f.IsInt() {
		return f.num.String()
	}
	return f.num.String() + "/" + f.den.String()
}
