package relations

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/qseries/qfuncs"
	"github.com/tuneinsight/qseries/series"
	"github.com/tuneinsight/qseries/utils/bignum"
)

func fracs(v ...int64) []bignum.Frac {
	out := make([]bignum.Frac, len(v))
	for i := range v {
		out[i] = bignum.FracOf(v[i])
	}
	return out
}

func requireFracsEqual(t *testing.T, want, have []bignum.Frac) {
	require.Len(t, have, len(want))
	for i := range want {
		require.True(t, want[i].Equal(have[i]), "index %d: want %s, have %s", i, want[i], have[i])
	}
}

func TestExponents(t *testing.T) {

	t.Run("Hom", func(t *testing.T) {
		require.True(t, cmp.Equal([][]int{{0, 2}, {1, 1}, {2, 0}}, HomExponents(2, 2)))
		require.True(t, cmp.Equal([][]int{{3}}, HomExponents(1, 3)))
		require.Len(t, HomExponents(3, 4), 15)
		require.Empty(t, HomExponents(0, 2))
	})

	t.Run("Nonhom", func(t *testing.T) {
		want := [][]int{{0, 0}, {0, 1}, {1, 0}, {0, 2}, {1, 1}, {2, 0}}
		require.True(t, cmp.Equal(want, NonhomExponents(2, 2)))
	})

	t.Run("Bounded", func(t *testing.T) {
		want := [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}}
		require.True(t, cmp.Equal(want, BoundedExponents([]int{2, 1})))
	})
}

func TestFindhom(t *testing.T) {

	T := 50
	q := series.Q(T)
	L := []series.Series{
		qfuncs.Theta3(q, T),
		qfuncs.Theta4(q, T),
		qfuncs.Theta3(series.QPow(2, T), T),
	}

	// theta3(q)^2 + theta4(q)^2 = 2 theta3(q^2)^2
	res := Findhom(L, 2, 0)
	require.Len(t, res.Monomials, 6)
	require.Len(t, res.Basis, 1)
	requireFracsEqual(t, fracs(-2, 0, 1, 0, 0, 1), res.Basis[0])
	require.Equal(t, "-2X₃² + X₂² + X₁²", FormatRelation(res.Basis[0], res.Monomials, nil))

	// no linear relation
	require.Empty(t, Findhom(L, 1, 0).Basis)

	// an empty window yields no relation
	require.Empty(t, Findhom(L, 2, -T).Basis)
}

func TestFindnonhom(t *testing.T) {

	T := 30
	x := qfuncs.Theta3(series.Q(T), T)
	L := []series.Series{x, x.Mul(x)}

	res := Findnonhom(L, 2, 0)
	require.True(t, cmp.Equal(NonhomExponents(2, 2), res.Monomials))
	require.Len(t, res.Basis, 1)
	requireFracsEqual(t, fracs(0, -1, 0, 0, 0, 1), res.Basis[0])
	require.Equal(t, "-X₂ + X₁²", FormatRelation(res.Basis[0], res.Monomials, nil))
}

func TestFindpoly(t *testing.T) {

	T := 30
	x := qfuncs.Theta3(series.Q(T), T)
	y := x.Mul(x)

	res := Findpoly(x, y, 2, 1, 0)
	require.True(t, cmp.Equal([][]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}, res.Monomials))
	require.Len(t, res.Basis, 1)
	requireFracsEqual(t, fracs(0, 0, -1, 1, 0, 0), res.Basis[0])
	require.Equal(t, "-X² + Y", FormatRelation(res.Basis[0], res.Monomials, []string{"X", "Y"}))

	t.Run("Check", func(t *testing.T) {
		res := Findpoly(x, y, 2, 1, 2*T)
		require.Len(t, res.Basis, 1)
		requireFracsEqual(t, fracs(0, 0, -1, 1, 0, 0), res.Basis[0])
	})

	t.Run("NoRelation", func(t *testing.T) {
		require.Empty(t, Findpoly(x, series.Q(T), 1, 1, 0).Basis)
	})
}

func TestFindhomcombo(t *testing.T) {

	T := 40
	q := series.Q(T)
	t3, t4 := qfuncs.Theta3(q, T), qfuncs.Theta4(q, T)
	t3q2 := qfuncs.Theta3(series.QPow(2, T), T)
	f := t3q2.Mul(t3q2).Scale(bignum.FracOf(2))

	res := Findhomcombo(f, []series.Series{t3, t4}, 2, 0)
	require.True(t, cmp.Equal([][]int{{0, 2}, {1, 1}, {2, 0}}, res.Monomials))
	require.NotNil(t, res.Coeffs)
	requireFracsEqual(t, fracs(1, 0, 1), res.Coeffs)

	t.Run("NoSolution", func(t *testing.T) {
		res := Findhomcombo(q, []series.Series{t3}, 1, 0)
		require.Nil(t, res.Coeffs)
		require.True(t, cmp.Equal([][]int{{1}}, res.Monomials))
	})
}

func TestFindnonhomcombo(t *testing.T) {

	T := 30
	x := qfuncs.Theta3(series.Q(T), T)
	f := series.Constant(bignum.FracOf(3), T).Add(x.Scale(bignum.FracOf(2))).Add(x.Mul(x))

	res := Findnonhomcombo(f, []series.Series{x}, []int{2}, 0)
	require.True(t, cmp.Equal([][]int{{0}, {1}, {2}}, res.Monomials))
	requireFracsEqual(t, fracs(3, 2, 1), res.Coeffs)
	require.Equal(t, "3 + 2X₁ + X₁²", FormatRelation(res.Coeffs, res.Monomials, nil))

	res = Findnonhomcombo(f, []series.Series{x}, []int{1}, 0)
	require.Nil(t, res.Coeffs)

	require.Nil(t, Findnonhomcombo(f, []series.Series{x}, []int{1, 2}, 0).Coeffs)
}

func TestFindmaxind(t *testing.T) {

	T := 30
	q := series.Q(T)
	t3, t4 := qfuncs.Theta3(q, T), qfuncs.Theta4(q, T)

	res := Findmaxind([]series.Series{t3, t4, t3.Add(t4), q}, 0)
	require.Equal(t, []int{1, 2, 4}, res.Indices)
	require.Len(t, res.Subset, 3)
	require.True(t, res.Subset[2].Equal(q))

	res = Findmaxind(nil, 0)
	require.Empty(t, res.Indices)
}

func TestFormatRelation(t *testing.T) {

	half, err := bignum.NewFrac(1, 2)
	require.NoError(t, err)

	coeffs := []bignum.Frac{bignum.FracOf(1), bignum.FracOf(-3), {}, half}
	exps := [][]int{{2, 0}, {1, 1}, {0, 2}, {0, 0}}
	require.Equal(t, "X₁² - 3X₁X₂ + 1/2", FormatRelation(coeffs, exps, nil))

	require.Equal(t, "-X₁ + 2X₂", FormatRelation(fracs(-1, 2), [][]int{{1, 0}, {0, 1}}, nil))
	require.Equal(t, "0", FormatRelation(fracs(0, 0), [][]int{{1, 0}, {0, 1}}, nil))
	require.Equal(t, "0", FormatRelation(nil, nil, nil))
	require.Equal(t, []string{"X₁", "X₂", "X₃", "X₄", "X₅", "X6"}, DefaultNames(6))
}

func BenchmarkFindhom(b *testing.B) {
	T := 100
	q := series.Q(T)
	L := []series.Series{qfuncs.Theta3(q, T), qfuncs.Theta4(q, T), qfuncs.Theta3(series.QPow(2, T), T)}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Findhom(L, 2, 0)
	}
}
