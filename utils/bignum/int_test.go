package bignum

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/qseries/utils/sampling"
)

var parseVec = []struct {
	in  string
	out string
	err bool
}{
	{"0", "0", false},
	{"-0", "0", false},
	{"+42", "42", false},
	{"  -000123  ", "-123", false},
	{"1000000000", "1000000000", false},
	{"999999999999999999", "999999999999999999", false},
	{"-123456789012345678901234567890", "-123456789012345678901234567890", false},
	{"", "", true},
	{"   ", "", true},
	{"-", "", true},
	{"+", "", true},
	{"12a", "", true},
	{"1 2", "", true},
	{"0x10", "", true},
}

func TestParseInt(t *testing.T) {
	for _, tc := range parseVec {
		t.Run(fmt.Sprintf("%q", tc.in), func(t *testing.T) {
			x, err := ParseInt(tc.in)
			if tc.err {
				require.True(t, errors.Is(err, ErrInvalidFormat))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.out, x.String())
		})
	}
}

func TestIntZero(t *testing.T) {
	var z Int
	require.True(t, z.IsZero())
	require.Equal(t, 0, z.Sign())
	require.Equal(t, "0", z.String())
	require.True(t, z.Equal(NewInt(0)))
	require.True(t, NewInt(5).Sub(NewInt(5)).Equal(z))
	require.Equal(t, 0, NewInt(-5).Add(NewInt(5)).Sign())
	require.Equal(t, "0", NewInt(-7).Mul(z).String())
}

var quoRemVec = []struct {
	a, b, q, r int64
}{
	{7, 3, 2, 1},
	{-7, 3, -2, -1},
	{7, -3, -2, 1},
	{-7, -3, 2, -1},
	{0, 5, 0, 0},
	{3, 7, 0, 3},
	{-3, 7, 0, -3},
	{1000000000, 1, 1000000000, 0},
	{math.MaxInt64, 1000000007, math.MaxInt64 / 1000000007, math.MaxInt64 % 1000000007},
	{math.MinInt64, 3, math.MinInt64 / 3, math.MinInt64 % 3},
}

func TestQuoRem(t *testing.T) {

	for _, tc := range quoRemVec {
		q, r, err := NewInt(tc.a).QuoRem(NewInt(tc.b))
		require.NoError(t, err)
		require.Equalf(t, NewInt(tc.q).String(), q.String(), "%d / %d", tc.a, tc.b)
		require.Equalf(t, NewInt(tc.r).String(), r.String(), "%d %% %d", tc.a, tc.b)
	}

	t.Run("DivisionByZero", func(t *testing.T) {
		_, _, err := NewInt(1).QuoRem(Int{})
		require.True(t, errors.Is(err, ErrDivisionByZero))
		_, err = NewInt(1).Quo(NewInt(0))
		require.True(t, errors.Is(err, ErrDivisionByZero))
		_, err = NewInt(1).Rem(NewInt(0))
		require.True(t, errors.Is(err, ErrDivisionByZero))
	})

	t.Run("MultiLimbDivisor", func(t *testing.T) {
		a := MustParseInt("123456789012345678901234567890123456789")
		b := MustParseInt("-98765432109876543210")
		q, r, err := a.QuoRem(b)
		require.NoError(t, err)
		require.Equal(t, "-1249999988609375000", q.String())
		require.True(t, q.Mul(b).Add(r).Equal(a))
		require.Equal(t, 1, r.Sign())
		require.Equal(t, -1, r.CmpAbs(b))
	})
}

func TestInt64(t *testing.T) {
	for _, x := range []int64{0, 1, -1, 999999999, 1000000000, -1000000000, math.MaxInt64, math.MinInt64} {
		v, ok := NewInt(x).Int64()
		require.True(t, ok)
		require.Equal(t, x, v)
		require.Equal(t, fmt.Sprint(x), NewInt(x).String())
	}
	_, ok := MustParseInt("9223372036854775808").Int64()
	require.False(t, ok)
	v, ok := MustParseInt("-9223372036854775808").Int64()
	require.True(t, ok)
	require.Equal(t, int64(math.MinInt64), v)
	_, ok = MustParseInt("-9223372036854775809").Int64()
	require.False(t, ok)
}

func TestGCD(t *testing.T) {
	require.Equal(t, "6", GCD(NewInt(-12), NewInt(18)).String())
	require.Equal(t, "5", GCD(NewInt(0), NewInt(-5)).String())
	require.Equal(t, "0", GCD(Int{}, Int{}).String())
	a := MustParseInt("1000000000000000000000")
	b := MustParseInt("250000000000000000000000000")
	require.Equal(t, "1000000000000000000000", GCD(a, b).String())
}

func TestCmp(t *testing.T) {
	xs := []Int{MustParseInt("-10000000000000"), NewInt(-5), NewInt(0), NewInt(3), MustParseInt("1000000000"), MustParseInt("10000000000000")}
	for i := range xs {
		for j := range xs {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			require.Equal(t, want, xs[i].Cmp(xs[j]))
		}
	}
	require.Equal(t, 1, NewInt(-7).CmpAbs(NewInt(5)))
}

// TestIntRandom checks the arithmetic against math/big on deterministic
// pseudo-random operands of various limb counts.
func TestIntRandom(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte("bignum"))
	require.NoError(t, err)

	for i := 0; i < 300; i++ {

		sa := sampling.RandDigits(prng, int(sampling.RandInt64(prng, 1, 60)), true)
		sb := sampling.RandDigits(prng, int(sampling.RandInt64(prng, 1, 30)), true)

		a, b := MustParseInt(sa), MustParseInt(sb)
		ba, _ := new(big.Int).SetString(sa, 10)
		bb, _ := new(big.Int).SetString(sb, 10)

		require.Equal(t, new(big.Int).Add(ba, bb).String(), a.Add(b).String())
		require.Equal(t, new(big.Int).Sub(ba, bb).String(), a.Sub(b).String())
		require.Equal(t, new(big.Int).Mul(ba, bb).String(), a.Mul(b).String())
		require.Equal(t, ba.Cmp(bb), a.Cmp(b))

		q, r, err := a.QuoRem(b)
		require.NoError(t, err)
		bq, br := new(big.Int).QuoRem(ba, bb, new(big.Int))
		require.Equalf(t, bq.String(), q.String(), "%s / %s", sa, sb)
		require.Equalf(t, br.String(), r.String(), "%s %% %s", sa, sb)

		require.Equal(t, new(big.Int).GCD(nil, nil, new(big.Int).Abs(ba), new(big.Int).Abs(bb)).String(), GCD(a, b).String())
	}
}

func BenchmarkMul(b *testing.B) {
	prng, _ := sampling.NewKeyedPRNG(nil)
	x := MustParseInt(sampling.RandDigits(prng, 500, false))
	y := MustParseInt(sampling.RandDigits(prng, 500, false))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Mul(y)
	}
}

func BenchmarkQuoRem(b *testing.B) {
	prng, _ := sampling.NewKeyedPRNG(nil)
	x := MustParseInt(sampling.RandDigits(prng, 500, false))
	y := MustParseInt(sampling.RandDigits(prng, 200, false))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = x.QuoRem(y)
	}
}
