package qfuncs

import (
	"github.com/cockroachdb/errors"

	"github.com/tuneinsight/qseries/series"
	"github.com/tuneinsight/qseries/utils/bignum"
)

// thetaSum returns sum_{n>=n0} c(n) q^{e(n)} + O(q^T) for an increasing
// exponent map e. Coefficients are placed directly on the canonical
// indeterminate and accumulated from powers of q otherwise.
func thetaSum(q series.Series, T, n0 int, e func(n int) int, c func(n int) int64) series.Series {

	if q.IsCanonicalQ() {
		coeffs := map[int]bignum.Frac{}
		for n := n0; e(n) < T; n++ {
			coeffs[e(n)] = coeffs[e(n)].Add(bignum.FracOf(c(n)))
		}
		return series.New(coeffs, T)
	}

	qt := q.TruncTo(T)
	result := series.Zero(T)
	for n := n0; e(n) < T; n++ {
		result = result.Add(qt.MustPow(e(n)).Scale(bignum.FracOf(c(n))))
	}

	return result
}

// Theta2 returns sum_{n>=0} 2 q^{n(n+1)} + O(q^T), the theta_2 series with the q^{1/4} prefactor removed.
func Theta2(q series.Series, T int) series.Series {
	return thetaSum(q, T, 0,
		func(n int) int { return n * (n + 1) },
		func(n int) int64 { return 2 })
}

// Theta3 returns 1 + 2 sum_{n>=1} q^{n^2} + O(q^T).
func Theta3(q series.Series, T int) series.Series {
	return thetaSum(q, T, 0,
		func(n int) int { return n * n },
		func(n int) int64 {
			if n == 0 {
				return 1
			}
			return 2
		})
}

// Theta4 returns 1 + 2 sum_{n>=1} (-1)^n q^{n^2} + O(q^T).
func Theta4(q series.Series, T int) series.Series {
	return thetaSum(q, T, 0,
		func(n int) int { return n * n },
		func(n int) int64 {
			switch {
			case n == 0:
				return 1
			case n%2 == 1:
				return -2
			default:
				return 2
			}
		})
}

// Theta returns the generalized theta series sum_{i=-T}^{T} z^i q^{i^2} + O(q^T).
// Negative powers of z are taken as powers of its inverse.
func Theta(z, q series.Series, T int) (series.Series, error) {

	zt, qt := z.TruncTo(T), q.TruncTo(T)

	var zinv series.Series
	var err error
	if zinv, err = zt.Inverse(); err != nil {
		return series.Series{}, errors.Wrap(err, "theta")
	}

	result := series.Zero(T)
	for i := -T; i <= T; i++ {

		var zi series.Series
		if i >= 0 {
			zi = zt.MustPow(i)
		} else {
			zi = zinv.MustPow(-i)
		}

		result = result.Add(zi.Mul(qt.MustPow(i * i)))
	}

	return result, nil
}
