// Package factorization implements primality testing and integer factorization
// of machine-size integers.
package factorization

import (
	"math/bits"
	"sort"
)

// PrimePower is a factor p^e of an integer.
type PrimePower struct {
	P uint64
	E int
}

// MulMod returns a*b mod m.
func MulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a%m, b%m)
	_, rem := bits.Div64(hi, lo, m)
	return rem
}

// PowMod returns b^e mod m.
func PowMod(b, e, m uint64) uint64 {
	r := uint64(1) % m
	b %= m
	for e > 0 {
		if e&1 == 1 {
			r = MulMod(r, b, m)
		}
		b = MulMod(b, b, m)
		e >>= 1
	}
	return r
}

// millerRabinBases is a set of bases for which Miller-Rabin is deterministic below 2^64.
var millerRabinBases = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// IsPrime returns true if x is prime.
func IsPrime(x uint64) bool {

	if x < 2 {
		return false
	}

	for _, p := range millerRabinBases {
		if x%p == 0 {
			return x == p
		}
	}

	d, s := x-1, 0
	for d&1 == 0 {
		d >>= 1
		s++
	}

	for _, a := range millerRabinBases {
		y := PowMod(a, d, x)
		if y == 1 || y == x-1 {
			continue
		}
		composite := true
		for r := 1; r < s; r++ {
			y = MulMod(y, y, x)
			if y == x-1 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}

	return true
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// GetFactorPollardRho returns a non-trivial factor of the composite m,
// found with Pollard's rho algorithm and Floyd cycle detection.
// Returns m if m is prime or 1.
func GetFactorPollardRho(m uint64) uint64 {

	if m < 4 || IsPrime(m) {
		return m
	}

	if m&1 == 0 {
		return 2
	}

	for c := uint64(1); ; c++ {

		f := func(x uint64) uint64 {
			return (MulMod(x, x, m) + c) % m
		}

		x, y, d := uint64(2), uint64(2), uint64(1)

		for d == 1 {
			x = f(x)
			y = f(f(y))
			if x > y {
				d = gcd(x-y, m)
			} else {
				d = gcd(y-x, m)
			}
		}

		if d != m {
			return d
		}
	}
}

// GetFactors returns the distinct prime factors of m in ascending order.
func GetFactors(m uint64) (factors []uint64) {
	for _, pp := range Factorize(m) {
		factors = append(factors, pp.P)
	}
	return
}

// Factorize returns the prime factorization of m in ascending order of primes.
// Returns an empty slice for m <= 1.
func Factorize(m uint64) []PrimePower {

	if m <= 1 {
		return []PrimePower{}
	}

	exps := map[uint64]int{}

	// small primes by trial division
	for p := uint64(2); p < 1000 && p*p <= m; p++ {
		for m%p == 0 {
			exps[p]++
			m /= p
		}
	}

	var split func(n uint64)
	split = func(n uint64) {
		if n == 1 {
			return
		}
		if IsPrime(n) {
			exps[n]++
			return
		}
		d := GetFactorPollardRho(n)
		split(d)
		split(n / d)
	}
	split(m)

	out := make([]PrimePower, 0, len(exps))
	for p, e := range exps {
		out = append(out, PrimePower{P: p, E: e})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].P < out[j].P })

	return out
}
