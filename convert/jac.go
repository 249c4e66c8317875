package convert

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/tuneinsight/qseries/series"
	"github.com/tuneinsight/qseries/utils/bignum"
)

// JacFactor is a Jacobi product factor raised to Exp.
// A = 0 denotes (q^B;q^B)_oo and A > 0 denotes
// JAC(A,B) = (q^A;q^B)_oo (q^{B-A};q^B)_oo (q^B;q^B)_oo.
type JacFactor struct {
	A, B int
	Exp  bignum.Frac
}

// jacMatchPercent is the share of indices n for which e_n = e_{n+b} must hold
// before the period b is tried.
const jacMatchPercent = 80

// Jacprodmake writes f as a product of Jacobi factors of a single period b.
// Periods b = 2, ..., T/2 are tried in order: a period is a candidate when the
// exponents e_n = -a_n of prodmake agree with e_{n+b} on at least 80% of the
// n in [1, T-1-b], and is accepted only if Jac2series reproduces every
// coefficient of f below T. Returns an empty list when no period is accepted.
func (c *Converter) Jacprodmake(f series.Series, T int) ([]JacFactor, error) {

	a, err := c.Prodmake(f, T)
	if err != nil {
		return nil, err
	}

	if len(a) == 0 {
		return []JacFactor{}, nil
	}

	e := make(map[int]bignum.Frac, len(a))
	for n, an := range a {
		e[n] = an.Neg()
	}

	check := T
	if f.Trunc() < check {
		check = f.Trunc()
	}

	for b := 2; b <= T/2; b++ {

		span := T - 1 - b
		if span <= 0 {
			continue
		}

		var match int
		for n := 1; n <= span; n++ {
			if e[n].Equal(e[n+b]) {
				match++
			}
		}

		if match*100 < span*jacMatchPercent {
			continue
		}

		jac := jacDecompose(e, b)

		recon, err := Jac2series(jac, T)
		if err != nil {
			// a non-integer exponent cannot be expanded, try the next period
			continue
		}

		ok := true
		for n := 0; n < check && ok; n++ {
			ok = recon.Coeff(n).Equal(f.Coeff(n))
		}

		if ok {
			return jac, nil
		}
	}

	c.log.Warn("jacprodmake: no Jacobi product found", zap.Int("T", T))

	return []JacFactor{}, nil
}

// jacDecompose reads the Jacobi exponents of period b off the prodmake exponents.
// JAC(a,b) contributes to e_n for n = ±a mod b (twice when 2a = b) and for n = 0 mod b,
// so x_a = e_a for 0 < a < b/2, x_{b/2} = e_{b/2}/2 and x_0 = e_b - sum x_a.
// For b = 5 this is x_1 = e_1, x_2 = e_2, x_0 = e_5 - e_1 - e_2.
func jacDecompose(e map[int]bignum.Frac, b int) []JacFactor {

	x := make([]bignum.Frac, b/2+1)

	var sum bignum.Frac
	for i := 1; 2*i <= b; i++ {
		if 2*i == b {
			x[i] = e[i].MustQuo(bignum.FracOf(2))
		} else {
			x[i] = e[i]
		}
		sum = sum.Add(x[i])
	}

	x[0] = e[b].Sub(sum)

	jac := []JacFactor{}
	if !x[0].IsZero() {
		jac = append(jac, JacFactor{A: 0, B: b, Exp: x[0]})
	}
	for i := 1; i < len(x); i++ {
		if !x[i].IsZero() {
			jac = append(jac, JacFactor{A: i, B: b, Exp: x[i]})
		}
	}

	return jac
}

// pochPower returns (q^a;q^b)_oo + O(q^T).
func pochPower(a, b, T int) series.Series {
	one := series.One(T)
	r := one
	for e := a; e < T; e += b {
		r = r.Mul(one.Sub(series.QPow(e, T)))
	}
	return r
}

// Series returns the expansion of the factor without its exponent.
func (j JacFactor) Series(T int) series.Series {
	if j.A == 0 {
		return pochPower(j.B, j.B, T)
	}
	return pochPower(j.A, j.B, T).Mul(pochPower(j.B-j.A, j.B, T)).Mul(pochPower(j.B, j.B, T))
}

// Jac2series expands the product of the Jacobi factors to a series truncated at T.
// Returns ErrInvalidArgument for a factor with a non-integer exponent, a
// period B <= 0, or A outside of [0, B).
func Jac2series(jac []JacFactor, T int) (series.Series, error) {

	prod := series.One(T)

	for _, j := range jac {

		if j.B <= 0 || j.A < 0 || (j.A > 0 && j.A >= j.B) {
			return series.Series{}, errors.Wrapf(ErrInvalidArgument, "jac2series: invalid factor JAC(%d,%d)", j.A, j.B)
		}

		ex, ok := j.Exp.Int64()
		if !ok {
			return series.Series{}, errors.Wrapf(ErrInvalidArgument, "jac2series: non-integer exponent %s", j.Exp)
		}

		fac, err := j.Series(T).Pow(int(ex))
		if err != nil {
			return series.Series{}, errors.Wrapf(err, "jac2series: JAC(%d,%d)", j.A, j.B)
		}

		prod = prod.Mul(fac)
	}

	return prod, nil
}
