package factorization_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/qseries/utils/factorization"
)

const (
	prime uint64 = 0x1fffffffffe00001
)

func TestIsPrime(t *testing.T) {
	// 2^64 - 59 is prime
	require.True(t, factorization.IsPrime(0xffffffffffffffc5))
	require.True(t, factorization.IsPrime(prime))
	// 2^64 - 1 is not prime
	require.False(t, factorization.IsPrime(0xffffffffffffffff))
	// strong pseudoprime to the bases 2, 3, 5, 7
	require.False(t, factorization.IsPrime(3215031751))

	var small []uint64
	for i := uint64(0); i < 30; i++ {
		if factorization.IsPrime(i) {
			small = append(small, i)
		}
	}
	require.Equal(t, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, small)
}

func TestGetFactors(t *testing.T) {

	t.Run("GetFactors", func(t *testing.T) {
		m := prime - 1
		require.True(t, checkFactorization(m, factorization.GetFactors(m)))
	})

	t.Run("PollardRho", func(t *testing.T) {
		m := prime - 1
		require.Zero(t, m%factorization.GetFactorPollardRho(m))

		// product of two primes above the trial division bound
		m = 1000003 * 1000033
		d := factorization.GetFactorPollardRho(m)
		require.Contains(t, []uint64{1000003, 1000033}, d)
	})

	t.Run("Factorize", func(t *testing.T) {
		require.Equal(t, []factorization.PrimePower{{P: 2, E: 3}, {P: 3, E: 2}, {P: 5, E: 1}}, factorization.Factorize(360))
		require.Equal(t, []factorization.PrimePower{{P: 1000003, E: 2}}, factorization.Factorize(1000003*1000003))
		require.Empty(t, factorization.Factorize(1))
	})
}

func TestPowMod(t *testing.T) {
	require.Equal(t, uint64(1), factorization.PowMod(3, prime-1, prime))
	require.Equal(t, uint64(24), factorization.PowMod(2, 10, 1000))
	require.Equal(t, uint64(0), factorization.PowMod(5, 0, 1))
}

func checkFactorization(p uint64, factors []uint64) bool {
	for _, factor := range factors {
		for p%factor == 0 {
			p /= factor
		}
	}
	return p == 1
}
