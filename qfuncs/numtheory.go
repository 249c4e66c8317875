package qfuncs

import (
	"github.com/tuneinsight/qseries/utils"
	"github.com/tuneinsight/qseries/utils/bignum"
	"github.com/tuneinsight/qseries/utils/factorization"
)

// Divisors returns the positive divisors of n in ascending order, nil for n <= 0.
func Divisors(n int) []int {
	if n <= 0 {
		return nil
	}
	var lo, hi []int
	i := 1
	for ; i*i < n; i++ {
		if n%i == 0 {
			lo = append(lo, i)
			hi = append(hi, n/i)
		}
	}
	if i*i == n {
		lo = append(lo, i)
	}
	for j := len(hi) - 1; j >= 0; j-- {
		lo = append(lo, hi[j])
	}
	return lo
}

// Mobius returns the Möbius function mu(n), 0 for n <= 0.
func Mobius(n int) int {
	if n <= 0 {
		return 0
	}
	mu := 1
	for _, pp := range factorization.Factorize(uint64(n)) {
		if pp.E > 1 {
			return 0
		}
		mu = -mu
	}
	return mu
}

// Sigma returns the divisor power sum sigma_k(n) = sum_{d|n} d^k, 0 for n <= 0.
func Sigma(n, k int) bignum.Int {
	var sum bignum.Int
	for _, d := range Divisors(n) {
		term := bignum.NewInt(1)
		bd := bignum.NewInt(int64(d))
		for i := 0; i < k; i++ {
			term = term.Mul(bd)
		}
		sum = sum.Add(term)
	}
	return sum
}

// EulerPhi returns Euler's totient phi(n), 0 for n <= 0.
func EulerPhi(n int) int64 {
	if n <= 0 {
		return 0
	}
	result := int64(n)
	for _, pp := range factorization.Factorize(uint64(n)) {
		p := int64(pp.P)
		result = result / p * (p - 1)
	}
	return result
}

// Legendre returns the Legendre symbol (a/p) computed by Euler's criterion.
// Returns 0 if p <= 0, if p is even and greater than 2, or if p divides a.
func Legendre(a, p int64) int {
	if p <= 0 || (p > 2 && p%2 == 0) {
		return 0
	}
	a %= p
	if a < 0 {
		a += p
	}
	if a == 0 {
		return 0
	}
	if factorization.PowMod(uint64(a), uint64(p-1)/2, uint64(p)) == 1 {
		return 1
	}
	return -1
}

// Jacobi returns the Jacobi symbol (a/n) for odd n > 0, and 0 otherwise.
func Jacobi(a, n int64) int {

	if n <= 0 || n%2 == 0 {
		return 0
	}

	a %= n
	if a < 0 {
		a += n
	}

	result := 1
	for a != 0 {
		for a%2 == 0 {
			a /= 2
			if r := n % 8; r == 3 || r == 5 {
				result = -result
			}
		}
		a, n = n, a
		if a%4 == 3 && n%4 == 3 {
			result = -result
		}
		a %= n
	}

	if n == 1 {
		return result
	}

	return 0
}

// Kronecker returns the Kronecker symbol (a/n), extending Jacobi to all integers n.
func Kronecker(a, n int64) int {

	if n == 0 {
		if utils.Abs(a) == 1 {
			return 1
		}
		return 0
	}

	result := 1
	if n < 0 {
		n = -n
		if a < 0 {
			result = -1
		}
	}

	for n%2 == 0 {
		n /= 2
		switch utils.Abs(a % 8) {
		case 1, 7:
		case 3, 5:
			result = -result
		default:
			return 0
		}
	}

	if n == 1 {
		return result
	}

	return result * Jacobi(a, n)
}

var bernoulliTable = map[int][2]int64{
	0:  {1, 1},
	1:  {-1, 2},
	2:  {1, 6},
	4:  {-1, 30},
	6:  {1, 42},
	8:  {-1, 30},
	10: {5, 66},
	12: {-691, 2730},
	14: {7, 6},
	16: {-3617, 510},
	18: {43867, 798},
	20: {-174611, 330},
}

// Bernoulli returns the Bernoulli number B_n with the convention B_1 = -1/2.
// Returns zero for n < 0.
func Bernoulli(n int) bignum.Frac {

	if n < 0 || (n > 1 && n%2 == 1) {
		return bignum.Frac{}
	}

	if v, ok := bernoulliTable[n]; ok {
		return bignum.MustFrac(v[0], v[1])
	}

	// B_n = -1/(n+1) sum_{k<n} C(n+1, k) B_k
	b := make([]bignum.Frac, n+1)
	for m := 0; m <= n; m++ {
		if v, ok := bernoulliTable[m]; ok {
			b[m] = bignum.MustFrac(v[0], v[1])
			continue
		}
		if m%2 == 1 {
			continue
		}
		var acc bignum.Frac
		binom := bignum.NewInt(1)
		for k := 0; k < m; k++ {
			acc = acc.Add(b[k].Mul(bignum.FracFromInt(binom)))
			// C(m+1, k+1) = C(m+1, k) * (m+1-k) / (k+1)
			binom, _ = binom.MulInt64(int64(m + 1 - k)).Quo(bignum.NewInt(int64(k + 1)))
		}
		b[m] = acc.MustQuo(bignum.FracOf(int64(m + 1))).Neg()
	}

	return b[n]
}
