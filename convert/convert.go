// Package convert implements the conversions of q-series into infinite
// product forms: eta-products, Andrews' prodmake, Jacobi products and the
// associated checks and formatters.
package convert

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/tuneinsight/qseries/qfuncs"
	"github.com/tuneinsight/qseries/series"
	"github.com/tuneinsight/qseries/utils"
	"github.com/tuneinsight/qseries/utils/bignum"
)

// ErrInvalidArgument is returned when a conversion is called with parameters outside of its domain.
var ErrInvalidArgument = errors.New("convert: invalid argument")

// Converter carries the eta memo cache and the diagnostic logger shared by the conversions.
// A series that has no representation of the requested form yields an empty
// result and a warning on the logger, never an error.
type Converter struct {
	cache *qfuncs.EtaCache
	log   *zap.Logger
}

// NewConverter returns a Converter using the given cache and logger.
// A nil cache disables memoization and a nil logger discards diagnostics.
func NewConverter(cache *qfuncs.EtaCache, log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{cache: cache, log: log}
}

// Cache returns the eta cache of the Converter.
func (c *Converter) Cache() *qfuncs.EtaCache {
	return c.cache
}

// Sift returns sum_i a_{n i + k} q^i, truncated at the number of indices i
// with n i + k < T. T is clamped to the truncation of f.
// Returns ErrInvalidArgument if n <= 0 or k < 0.
func Sift(f series.Series, n, k, T int) (series.Series, error) {

	if n <= 0 || k < 0 {
		return series.Series{}, errors.Wrapf(ErrInvalidArgument, "sift: n=%d k=%d", n, k)
	}

	T = utils.Min(T, f.Trunc())

	c := map[int]bignum.Frac{}
	var i int
	for ; n*i+k < T; i++ {
		c[i] = f.Coeff(n*i + k)
	}

	return series.New(c, i), nil
}

// EtaFactor is the factor eta(K tau)^Exp, in q-expansion prod_{n>=1} (1 - q^{Kn})^Exp.
type EtaFactor struct {
	K   int
	Exp bignum.Frac
}

// EtaQuotient is q^QPower prod eta(k tau)^{e_k}, each eta(k tau) taken
// without its q^{k/24} prefactor.
type EtaQuotient struct {
	QPower  int
	Factors []EtaFactor
	// Found is false if f is not an eta quotient.
	Found bool
}

// Etamake writes f as c q^m prod eta(k tau)^{e_k}, m the minimal exponent of f,
// by peeling, from the lowest exponent upwards, each nonzero coefficient with
// a power of etaq. The leading coefficient c is discarded.
func (c *Converter) Etamake(f series.Series, T int) (EtaQuotient, error) {

	g := f.TruncTo(T)

	if g.IsZero() {
		c.log.Warn("etamake: zero series")
		return EtaQuotient{Factors: []EtaFactor{}}, nil
	}

	me := g.MinExp()
	res := EtaQuotient{QPower: me, Factors: []EtaFactor{}}

	if me != 0 {
		hc := make(map[int]bignum.Frac, g.Len())
		for _, e := range g.Exponents() {
			hc[e-me] = g.Coeff(e)
		}
		g = series.New(hc, utils.Max(g.Trunc()-me, 1))
	}

	T = g.Trunc()
	g = g.Scale(bignum.FracOf(1).MustQuo(g.Coeff(0)))

	q := series.Q(T)

	for iter := 0; iter < 2*T; iter++ {

		// smallest k > 0 with a nonzero coefficient
		k := -1
		for _, e := range g.Exponents() {
			if e > 0 {
				k = e
				break
			}
		}

		if k < 0 {
			res.Found = true
			return res, nil
		}

		v := g.Coeff(k)
		if !v.IsInt() {
			c.log.Warn("etamake: not an eta product", zap.String("reason", "non-integer coefficient"), zap.Int("k", k))
			return EtaQuotient{Factors: []EtaFactor{}}, nil
		}

		e, ok := v.Int64()
		if !ok || e > 1<<20 || e < -(1<<20) {
			c.log.Warn("etamake: not an eta product", zap.String("reason", "coefficient too large"), zap.Int("k", k))
			return EtaQuotient{Factors: []EtaFactor{}}, nil
		}

		eta, err := c.cache.Etaq(q, k, T)
		if err != nil {
			return EtaQuotient{}, err
		}

		etaPow, err := eta.Pow(int(e))
		if err != nil {
			return EtaQuotient{}, err
		}

		g = g.Mul(etaPow)
		res.Factors = append(res.Factors, EtaFactor{K: k, Exp: bignum.FracOf(-e)})
	}

	c.log.Warn("etamake: not an eta product", zap.String("reason", "max iterations reached"), zap.Int("T", T))

	return EtaQuotient{Factors: []EtaFactor{}}, nil
}

// Prodmake runs Andrews' algorithm: it returns the exponents a_n, 1 <= n < T,
// such that f = b_0 prod_{n>=1} (1 - q^n)^{-a_n} + O(q^T), with T clamped to
// the truncation of f. Non-integer exponents are kept and reported with a warning.
func (c *Converter) Prodmake(f series.Series, T int) (map[int]bignum.Frac, error) {

	a := map[int]bignum.Frac{}

	g := f.TruncTo(T)
	T = g.Trunc()

	if T <= 1 {
		return a, nil
	}

	b0 := g.Coeff(0)
	if b0.IsZero() || g.MinExp() != 0 {
		c.log.Warn("prodmake: no constant term", zap.Int("minExp", g.MinExp()))
		return a, nil
	}

	b := g.Scale(bignum.FracOf(1).MustQuo(b0)).CoeffList(0, T-1)

	// c_n = n b_n - sum_{j=1}^{n-1} b_{n-j} c_j
	cs := make([]bignum.Frac, T)
	for n := 1; n < T; n++ {
		var sum bignum.Frac
		for j := 1; j < n; j++ {
			if !b[n-j].IsZero() {
				sum = sum.Add(b[n-j].Mul(cs[j]))
			}
		}
		cs[n] = bignum.FracOf(int64(n)).Mul(b[n]).Sub(sum)
	}

	// a_n = (c_n - sum_{d|n, d<n} d a_d) / n
	var warned bool
	for n := 1; n < T; n++ {
		var sum bignum.Frac
		for _, d := range qfuncs.Divisors(n) {
			if d < n {
				sum = sum.Add(bignum.FracOf(int64(d)).Mul(a[d]))
			}
		}
		a[n] = cs[n].Sub(sum).MustQuo(bignum.FracOf(int64(n)))
		if !warned && !a[n].IsInt() {
			c.log.Warn("prodmake: non-integer exponent", zap.Int("n", n), zap.Stringer("a", a[n]))
			warned = true
		}
	}

	return a, nil
}

// Mprodmake writes f as prod_{n in S} (1 + q^n) and returns S in ascending order.
// Every prodmake exponent must be -1, 0 or 1; a_n = 1 puts n in S and
// a_{2n} = -1 puts n in S.
func (c *Converter) Mprodmake(f series.Series, T int) ([]int, error) {

	g := f.TruncTo(T)
	if g.Coeff(0).IsZero() || g.MinExp() != 0 {
		c.log.Warn("mprodmake: no constant term", zap.Int("minExp", g.MinExp()))
		return []int{}, nil
	}

	a, err := c.Prodmake(g, T)
	if err != nil {
		return nil, err
	}

	set := map[int]bool{}
	for _, n := range utils.GetSortedKeys(a) {

		v, ok := a[n].Int64()
		if !ok || v < -1 || v > 1 {
			c.log.Warn("mprodmake: not an m-product", zap.Int("n", n), zap.Stringer("a", a[n]))
			return []int{}, nil
		}

		switch {
		case v == 1:
			set[n] = true
		case v == -1 && n%2 == 0:
			set[n/2] = true
		}
	}

	return utils.GetSortedKeys(set), nil
}

// CheckprodResult is the result of Checkprod.
type CheckprodResult struct {
	// MinExp is the minimal exponent of the input.
	MinExp int
	// Nice is true if every prodmake exponent is an integer of absolute value below M.
	Nice bool
	M    int
}

// DefaultCheckprodBound is the bound M used when none is given, for which
// nice products have exponents in {-1, 0, 1}.
const DefaultCheckprodBound = 2

// Checkprod checks whether f is a "nice" product: all its prodmake exponents
// are integers with absolute value below M.
func (c *Converter) Checkprod(f series.Series, M, T int) (CheckprodResult, error) {

	g := f.TruncTo(T)
	res := CheckprodResult{MinExp: g.MinExp(), M: M}

	if g.Coeff(0).IsZero() || res.MinExp != 0 {
		return res, nil
	}

	a, err := c.Prodmake(g, T)
	if err != nil {
		return res, err
	}

	if len(a) == 0 {
		return res, nil
	}

	bound := bignum.FracOf(int64(M))
	for _, an := range a {
		if !an.IsInt() || an.Abs().Cmp(bound) >= 0 {
			return res, nil
		}
	}

	res.Nice = true

	return res, nil
}

// CheckmultResult is the result of Checkmult.
type CheckmultResult struct {
	Multiplicative bool
	// Failures lists the coprime pairs (m, n) with a_{mn} != a_m a_n.
	Failures [][2]int
}

// Checkmult checks whether the coefficients of f are multiplicative,
// a_{mn} = a_m a_n for coprime m, n >= 2 with mn < T. Unless verbose is set
// it stops at the first failure.
func Checkmult(f series.Series, T int, verbose bool) CheckmultResult {

	res := CheckmultResult{Multiplicative: true, Failures: [][2]int{}}

	for m := 2; m < T; m++ {
		for n := 2; m*n < T; n++ {

			if utils.GCD(m, n) != 1 {
				continue
			}

			if !f.Coeff(m * n).Equal(f.Coeff(m).Mul(f.Coeff(n))) {
				res.Multiplicative = false
				res.Failures = append(res.Failures, [2]int{m, n})
				if !verbose {
					return res
				}
			}
		}
	}

	return res
}

// QFactorResult is f written as q^QPower prod (1-q^n)^{Num[n]} / prod (1-q^n)^{Den[n]}.
type QFactorResult struct {
	QPower int
	Num    map[int]bignum.Frac
	Den    map[int]bignum.Frac
}

// Qfactor factors out q^m, m the minimal exponent of f, and splits the prodmake
// exponents of the remainder into numerator and denominator factors.
func (c *Converter) Qfactor(f series.Series, T int) (QFactorResult, error) {

	res := QFactorResult{Num: map[int]bignum.Frac{}, Den: map[int]bignum.Frac{}}

	g := f.TruncTo(T)
	if g.IsZero() {
		c.log.Warn("qfactor: zero series")
		return res, nil
	}

	me := g.MinExp()
	res.QPower = me

	hc := make(map[int]bignum.Frac, g.Len())
	for _, e := range g.Exponents() {
		hc[e-me] = g.Coeff(e)
	}
	h := series.New(hc, utils.Max(g.Trunc()-me, 1))

	a, err := c.Prodmake(h, h.Trunc())
	if err != nil {
		return res, err
	}

	for n, an := range a {
		switch an.Sign() {
		case -1:
			res.Num[n] = an.Neg()
		case 1:
			res.Den[n] = an
		}
	}

	return res, nil
}
