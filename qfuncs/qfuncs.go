// Package qfuncs implements the classical q-series special functions and the
// number theoretic helpers they are built from.
package qfuncs

import (
	"github.com/cockroachdb/errors"

	"github.com/tuneinsight/qseries/series"
	"github.com/tuneinsight/qseries/utils/bignum"
)

// Aqprod returns the finite rising factorial (a;q)_n = prod_{k=0}^{n-1} (1 - a q^k).
// Returns One(T) for n <= 0.
func Aqprod(a, q series.Series, n, T int) series.Series {

	one := series.One(T)
	if n <= 0 {
		return one
	}

	qt := q.TruncTo(T)
	x := a.TruncTo(T)
	result := one
	for k := 0; k < n; k++ {
		result = result.Mul(one.Sub(x))
		x = x.Mul(qt)
	}

	return result
}

// Qbin returns the Gaussian binomial coefficient [n choose m]_q by the
// q-Pascal product prod_{i=1}^{m} (1 - q^{n-m+i}) / (1 - q^i).
// Returns the zero series when m < 0 or m > n and One(T) when m is 0 or n.
func Qbin(q series.Series, m, n, T int) (series.Series, error) {

	if m < 0 || m > n {
		return series.Zero(T), nil
	}

	one := series.One(T)
	if m == 0 || m == n {
		return one, nil
	}

	qt := q.TruncTo(T)
	result := one
	for i := 1; i <= m; i++ {
		num := one.Sub(qt.MustPow(n - m + i))
		den := one.Sub(qt.MustPow(i))
		var err error
		if result, err = result.Mul(num).Div(den); err != nil {
			return series.Series{}, errors.Wrapf(err, "qbin: factor %d", i)
		}
	}

	return result, nil
}

// QPochInf returns the infinite product (a;q)_oo = prod_{k>=0} (1 - a q^k) + O(q^T).
// a may carry negative exponents. Returns ErrInvalidArgument if q has no
// positive valuation.
func QPochInf(a, q series.Series, T int) (series.Series, error) {

	if q.IsZero() || q.MinExp() < 1 {
		return series.Series{}, errors.Wrapf(ErrInvalidArgument, "(a;q)_oo: q must have positive valuation")
	}

	one := series.One(T)
	qt := q.TruncTo(T)
	x := a.TruncTo(T)
	result := one
	for !x.IsZero() {
		result = result.Mul(one.Sub(x))
		x = x.Mul(qt)
	}

	return result, nil
}

// products multiplies the infinite products (a_i;q)_oo.
func products(q series.Series, T int, as ...series.Series) (series.Series, error) {
	result := series.One(T)
	for _, a := range as {
		p, err := QPochInf(a, q, T)
		if err != nil {
			return series.Series{}, err
		}
		result = result.Mul(p)
	}
	return result, nil
}

// Tripleprod returns the Jacobi triple product (z;q)_oo (q/z;q)_oo (q;q)_oo.
func Tripleprod(z, q series.Series, T int) (series.Series, error) {
	zinv, err := z.Inverse()
	if err != nil {
		return series.Series{}, errors.Wrap(err, "tripleprod")
	}
	return products(q, T, z, q.Mul(zinv), q)
}

// Quinprod returns the quintuple product
// (-z;q)_oo (-q/z;q)_oo (z^2 q;q^2)_oo (q/z^2;q^2)_oo (q;q)_oo.
func Quinprod(z, q series.Series, T int) (series.Series, error) {

	zinv, err := z.Inverse()
	if err != nil {
		return series.Series{}, errors.Wrap(err, "quinprod")
	}

	z2, zinv2, q2 := z.Mul(z), zinv.Mul(zinv), q.Mul(q)

	a, err := products(q, T, z.Neg(), q.Mul(zinv).Neg(), q)
	if err != nil {
		return series.Series{}, err
	}

	b, err := products(q2, T, z2.Mul(q), q.Mul(zinv2))
	if err != nil {
		return series.Series{}, err
	}

	return a.Mul(b), nil
}

// Winquist returns Winquist's product
// (a)(q/a)(b)(q/b)(ab)(q/(ab))(a/b)(bq/a)(q)(q) where (x) = (x;q)_oo.
// When a, b and q are unit monomials with q of positive degree the
// double series side of Winquist's identity is summed instead.
func Winquist(a, b, q series.Series, T int) (series.Series, error) {
	if p, r, s, ok := unitMonomials(a, b, q); ok {
		return winquistSum(p, r, s, T), nil
	}
	return winquistProduct(a, b, q, T)
}

// unitMonomials returns the degrees of a, b, q if all three are q^e with coefficient 1 and q of positive degree.
func unitMonomials(a, b, q series.Series) (p, r, s int, ok bool) {
	for _, x := range []series.Series{a, b, q} {
		if !x.IsMonomial() || !x.Coeff(x.MinExp()).IsOne() {
			return
		}
	}
	p, r, s = a.MinExp(), b.MinExp(), q.MinExp()
	return p, r, s, s > 0
}

func winquistProduct(a, b, q series.Series, T int) (series.Series, error) {

	ainv, err := a.Inverse()
	if err != nil {
		return series.Series{}, errors.Wrap(err, "winquist")
	}

	binv, err := b.Inverse()
	if err != nil {
		return series.Series{}, errors.Wrap(err, "winquist")
	}

	ab := a.Mul(b)
	return products(q, T,
		a, q.Mul(ainv),
		b, q.Mul(binv),
		ab, q.Mul(ainv).Mul(binv),
		a.Mul(binv), b.Mul(q).Mul(ainv),
		q, q)
}

// winquistSum evaluates, for a = q^p, b = q^r and base q^s,
//
//	sum_{n>=0} sum_{m in Z} (-1)^{n+m} [(a^{-3n} - a^{3n+3})(b^{-3m} - b^{3m+1})
//	  + (a^{-3m+1} - a^{3m+2})(b^{3n+2} - b^{-3n-1})] q^{s(3n(n+1)/2 + m(3m+1)/2)}
//
// keeping the exponents below T.
func winquistSum(p, r, s, T int) series.Series {

	acc := map[int]int64{}

	add := func(e int, c int64) {
		if e < T {
			acc[e] += c
		}
	}

	lin := 3 * (abs(p) + abs(r))
	N := T + lin + 3

	for n := 0; n <= N; n++ {
		for m := -N; m <= N; m++ {

			E := s * (3*n*(n+1)/2 + m*(3*m+1)/2)

			if E-lin*(n+abs(m)+2) >= T {
				continue
			}

			sign := int64(1)
			if (n+m)%2 != 0 {
				sign = -1
			}

			for _, x := range [2][2]int{{-3 * n, 1}, {3*n + 3, -1}} {
				for _, y := range [2][2]int{{-3 * m, 1}, {3*m + 1, -1}} {
					add(E+p*x[0]+r*y[0], sign*int64(x[1]*y[1]))
				}
			}

			for _, x := range [2][2]int{{-3*m + 1, 1}, {3*m + 2, -1}} {
				for _, y := range [2][2]int{{3*n + 2, 1}, {-3*n - 1, -1}} {
					add(E+p*x[0]+r*y[0], sign*int64(x[1]*y[1]))
				}
			}
		}
	}

	c := make(map[int]bignum.Frac, len(acc))
	for e, v := range acc {
		if v != 0 {
			c[e] = bignum.FracOf(v)
		}
	}

	return series.New(c, T)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Qdiff returns the q-derivative q d/dq f = sum n a_n q^n.
func Qdiff(f series.Series) series.Series {
	return f.Qdiff()
}

// Eisenstein returns the normalized Eisenstein series of weight 2k,
// E_{2k} = 1 - (4k / B_{2k}) sum_{n>=1} sigma_{2k-1}(n) q^n + O(q^T), for 1 <= k <= 10.
func Eisenstein(k, T int) (series.Series, error) {

	if k < 1 || k > 10 {
		return series.Series{}, errors.Wrapf(ErrInvalidArgument, "eisenstein: k=%d must be in [1, 10]", k)
	}

	factor := bignum.FracOf(int64(-4 * k)).MustQuo(Bernoulli(2 * k))

	c := map[int]bignum.Frac{0: bignum.FracOf(1)}
	for n := 1; n < T; n++ {
		c[n] = factor.Mul(bignum.FracFromInt(Sigma(n, 2*k-1)))
	}

	return series.New(c, T), nil
}

// Partitions returns the partition numbers p(0), ..., p(n-1), computed by
// the recurrence of Euler's pentagonal theorem.
func Partitions(n int) []bignum.Int {

	if n <= 0 {
		return []bignum.Int{}
	}

	p := make([]bignum.Int, n)
	p[0] = bignum.NewInt(1)

	for m := 1; m < n; m++ {
		var acc bignum.Int
		for j := 1; ; j++ {
			g1 := j * (3*j - 1) / 2
			if g1 > m {
				break
			}
			term := p[m-g1]
			if g2 := j * (3*j + 1) / 2; g2 <= m {
				term = term.Add(p[m-g2])
			}
			if j%2 == 1 {
				acc = acc.Add(term)
			} else {
				acc = acc.Sub(term)
			}
		}
		p[m] = acc
	}

	return p
}

// TRN returns the polynomial T(r, n) defined by T(r, 0) = 1, T(r, 1) = 0 and
// T(r, n) = -sum_{k=1}^{n/2} [r+2k choose k]_q T(r+2k, n-2k).
func TRN(r, n, T int) (series.Series, error) {

	switch {
	case n < 0:
		return series.Series{}, errors.Wrapf(ErrInvalidArgument, "T(r,n): n=%d must be non-negative", n)
	case n == 0:
		return series.One(T), nil
	case n == 1:
		return series.Zero(T), nil
	}

	q := series.Q(T)
	sum := series.Zero(T)
	for k := 1; k <= n/2; k++ {

		qb, err := Qbin(q, k, r+2*k, T)
		if err != nil {
			return series.Series{}, err
		}

		sub, err := TRN(r+2*k, n-2*k, T)
		if err != nil {
			return series.Series{}, err
		}

		sum = sum.Sub(qb.Mul(sub))
	}

	return sum, nil
}
