package engine

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/qseries/config"
	"github.com/tuneinsight/qseries/convert"
	"github.com/tuneinsight/qseries/series"
	"github.com/tuneinsight/qseries/utils/bignum"
)

func newTestEngine(t *testing.T) *Engine {
	e := New(config.Default(), nil)
	require.Equal(t, 50, e.Trunc())
	return e
}

func call(t *testing.T, e *Engine, name string, vals ...Value) Result {
	res, err := e.Call(name, vals...)
	require.NoError(t, err, name)
	return res
}

func callSeries(t *testing.T, e *Engine, name string, vals ...Value) series.Series {
	res, ok := call(t, e, name, vals...).(SeriesResult)
	require.True(t, ok, "%s did not return a series", name)
	return res.Series
}

func TestDispatch(t *testing.T) {

	e := newTestEngine(t)

	t.Run("UnknownBuiltin", func(t *testing.T) {
		_, err := e.Call("etaqq", Ints(1, 10)...)
		require.True(t, errors.Is(err, ErrUnknownBuiltin))
	})

	t.Run("Arity", func(t *testing.T) {
		_, err := e.Call("etaq", Ints(1)...)
		require.True(t, errors.Is(err, ErrArity))
		_, err = e.Call("findhomcombo", Ints(1, 2, 3)...)
		require.True(t, errors.Is(err, ErrArity))
	})

	t.Run("ArgType", func(t *testing.T) {
		_, err := e.Call("etaq", SeriesList{}, IntValue(10))
		require.True(t, errors.Is(err, ErrArgType))
		_, err = e.Call("sigma", SeriesValue{e.Q()})
		require.True(t, errors.Is(err, ErrArgType))
		_, err = e.Call("sigma", nil)
		require.True(t, errors.Is(err, ErrArgType))
		_, err = e.Call("jac2prod", IntValue(1))
		require.True(t, errors.Is(err, ErrArgType))
	})

	t.Run("ConstantSeriesAsInteger", func(t *testing.T) {
		res := call(t, e, "sigma", SeriesValue{series.Constant(bignum.FracOf(6), 10)})
		require.Equal(t, "12", e.Render(res))
	})

	t.Run("CoreErrors", func(t *testing.T) {
		_, err := e.Call("eisenstein", Ints(11, 10)...)
		require.Error(t, err)
		_, err = e.Call("etaq", Ints(0, 10)...)
		require.Error(t, err)
	})
}

func TestHelp(t *testing.T) {

	names := Names()
	require.Contains(t, names, "etaq")
	require.Contains(t, names, "set_trunc")
	require.Equal(t, len(builtins), len(names))
	for i := 1; i < len(names); i++ {
		require.Less(t, names[i-1], names[i])
	}

	usage, doc, ok := Help("etaq")
	require.True(t, ok)
	require.Equal(t, "etaq(k,T) or etaq(q,k,T)", usage)
	require.NotEmpty(t, doc)

	_, _, ok = Help("etaqq")
	require.False(t, ok)
}

func TestSeriesBuiltins(t *testing.T) {

	e := newTestEngine(t)

	for _, tc := range []struct {
		name string
		vals []Value
		want string
	}{
		{"etaq", Ints(1, 10), "1 - q - q² + q⁵ + q⁷ + O(q^10)"},
		{"etaq", []Value{SeriesValue{e.Q()}, IntValue(2), IntValue(10)}, "1 - q² - q⁴ + O(q^10)"},
		{"theta3", Ints(10), "1 + 2q + 2q⁴ + 2q⁹ + O(q^10)"},
		{"theta4", []Value{SeriesValue{e.Q()}, IntValue(10)}, "1 - 2q + 2q⁴ - 2q⁹ + O(q^10)"},
		{"qbin", Ints(2, 4, 10), "1 + q + 2q² + q³ + q⁴ + O(q^10)"},
		{"aqprod", []Value{SeriesValue{e.Q()}, SeriesValue{e.Q()}, IntValue(2), IntValue(5)}, "1 - q - q² + q³ + O(q^5)"},
		{"T", Ints(0, 4), "q + q³ + O(q^50)"},
		{"subs_q", []Value{SeriesValue{series.FromInts([]int64{1, 1}, 5)}, IntValue(3)}, "1 + q³ + O(q^15)"},
		{"subs_q", []Value{SeriesValue{series.FromInts([]int64{1, 2, 3}, 5)}, IntValue(0)}, "6 + O(q^5)"},
		{"subs_q", []Value{SeriesValue{series.FromInts([]int64{1, 2, 3}, 5)}, IntValue(-1)}, "3q⁻² + 2q⁻¹ + 1 + O(q^5)"},
		{"qdiff", []Value{SeriesValue{series.FromInts([]int64{1, 1, 1}, 5)}}, "q + 2q² + O(q^5)"},
	} {
		res := call(t, e, tc.name, tc.vals...)
		require.Equal(t, tc.want, e.Render(res), tc.name)
	}

	t.Run("Cache", func(t *testing.T) {
		a := callSeries(t, e, "etaq", Ints(1, 20)...)
		b := callSeries(t, e, "etaq", SeriesValue{e.Q()}, IntValue(1), IntValue(20))
		require.True(t, a.Equal(b))
		require.Greater(t, e.cache.Len(), 0)
	})

	t.Run("NoCache", func(t *testing.T) {
		cfg := config.Default()
		cfg.EtaCache = false
		e := New(cfg, nil)
		require.Nil(t, e.cache)
		require.Equal(t, "1 - q - q² + q⁵ + q⁷ + O(q^10)", e.Render(call(t, e, "etaq", Ints(1, 10)...)))
	})
}

func TestSetTrunc(t *testing.T) {

	e := newTestEngine(t)
	callSeries(t, e, "etaq", Ints(1, 10)...)

	res := call(t, e, "set_trunc", IntValue(20))
	require.Equal(t, NoneResult{}, res)
	require.Equal(t, "", e.Render(res))
	require.Equal(t, 20, e.Trunc())
	require.Equal(t, 20, e.Q().Trunc())
	require.Equal(t, 0, e.cache.Len())

	require.Equal(t, "q + q³ + O(q^20)", e.Render(call(t, e, "T", Ints(0, 4)...)))

	_, err := e.Call("set_trunc", IntValue(0))
	require.True(t, errors.Is(err, ErrArgType))
	require.Equal(t, 20, e.Trunc())
}

func TestConvertBuiltins(t *testing.T) {

	e := newTestEngine(t)
	T := 30
	eta := callSeries(t, e, "etaq", Ints(1, int64(T))...)

	t.Run("Prodmake", func(t *testing.T) {
		f, err := series.One(5).Div(series.FromInts([]int64{1, -1}, 5))
		require.NoError(t, err)
		res := call(t, e, "prodmake", SeriesValue{f}, IntValue(5))
		require.Equal(t, "1 / ((1-q))", e.Render(res))
	})

	t.Run("Etamake", func(t *testing.T) {
		res := call(t, e, "etamake", SeriesValue{eta.Mul(eta)}, IntValue(int64(T)))
		require.Equal(t, "η(τ)²", e.Render(res))

		res = call(t, e, "etamake", SeriesValue{series.One(T).Add(e.Q().Scale(bignum.MustFrac(1, 2)))}, IntValue(int64(T)))
		require.Equal(t, "(not an eta product)", e.Render(res))

		res = call(t, e, "etamake", SeriesValue{e.Q().Mul(eta.MustPow(24))}, IntValue(int64(T)))
		require.Equal(t, "q·η(τ)²⁴", e.Render(res))
	})

	t.Run("Jacobi", func(t *testing.T) {
		res, ok := call(t, e, "jacprodmake", SeriesValue{eta}, IntValue(int64(T))).(JacResult)
		require.True(t, ok)
		require.Equal(t, "(q,q³)_∞ (q²,q³)_∞ (q³,q³)_∞", e.Render(res))

		text := call(t, e, "jac2prod", JacValue(res.Factors))
		require.Equal(t, TextResult("(q,q³)_∞ (q²,q³)_∞ (q³,q³)_∞"), text)

		s := callSeries(t, e, "jac2series", JacValue(res.Factors), IntValue(int64(T)))
		require.True(t, s.Equal(eta))
	})

	t.Run("Checks", func(t *testing.T) {
		require.Equal(t, "[0, 1]", e.Render(call(t, e, "checkprod", SeriesValue{eta}, IntValue(int64(T)))))

		sigma := map[int]bignum.Frac{}
		for n := 1; n < T; n++ {
			res := call(t, e, "sigma", IntValue(int64(n))).(IntResult)
			sigma[n] = bignum.FracFromInt(res.Int)
		}
		res := call(t, e, "checkmult", SeriesValue{series.New(sigma, T)}, IntValue(int64(T)))
		require.Equal(t, "MULTIPLICATIVE", e.Render(res))
	})

	t.Run("Qfactor", func(t *testing.T) {
		f := callSeries(t, e, "aqprod", SeriesValue{e.Q()}, SeriesValue{e.Q()}, IntValue(3), IntValue(20))
		_, ok := call(t, e, "qfactor", SeriesValue{f}).(QFactorResult)
		require.True(t, ok)
	})

	t.Run("Coeffs", func(t *testing.T) {
		res := call(t, e, "coeffs", SeriesValue{eta}, IntValue(0), IntValue(5))
		require.Equal(t, "[1, -1, -1, 0, 0, 1]", e.Render(res))
	})
}

func TestRelationBuiltins(t *testing.T) {

	e := newTestEngine(t)
	T := int64(50)

	t3 := callSeries(t, e, "theta3", IntValue(T))
	t4 := callSeries(t, e, "theta4", IntValue(T))
	t3q2 := callSeries(t, e, "theta3", SeriesValue{series.QPow(2, int(T))}, IntValue(T))
	L := SeriesList{t3, t4, t3q2}

	res := call(t, e, "findhom", L, IntValue(2), IntValue(0))
	require.Equal(t, "-2X₃² + X₂² + X₁²", e.Render(res))

	res = call(t, e, "findhom", L, IntValue(1), IntValue(0))
	require.Equal(t, "(no relation)", e.Render(res))

	res = call(t, e, "findpoly", SeriesValue{t3}, SeriesValue{t3.Mul(t3)}, IntValue(2), IntValue(1))
	require.Equal(t, "-X² + Y", e.Render(res))

	f := t3q2.Mul(t3q2).Scale(bignum.FracOf(2))
	res = call(t, e, "findhomcombo", SeriesValue{f}, SeriesList{t3, t4}, IntValue(2), IntValue(0))
	require.Equal(t, "X₂² + X₁²", e.Render(res))

	res = call(t, e, "findhomcombo", SeriesValue{e.Q()}, SeriesList{t3}, IntValue(1), IntValue(0), IntValue(1))
	require.Equal(t, "(no solution)", e.Render(res))

	_, err := e.Call("findnonhomcombo", SeriesValue{f}, SeriesList{t3, t4}, IntList{2}, IntValue(0))
	require.True(t, errors.Is(err, ErrArgType))

	res = call(t, e, "findmaxind", SeriesList{t3, t4, t3.Add(t4), e.Q()}, IntValue(0))
	require.Equal(t, "[1 2 4]", e.Render(res))
	require.True(t, cmp.Equal([]int{1, 2, 4}, res.(MaxindResult).Indices))
}

func TestNumberTheoryBuiltins(t *testing.T) {

	e := newTestEngine(t)

	for _, tc := range []struct {
		name string
		vals []Value
		want string
	}{
		{"sigma", Ints(12), "28"},
		{"sigma", Ints(10, 2), "130"},
		{"partitions", Ints(10), "42"},
		{"partitions", Ints(100), "190569292"},
		{"bernoulli", Ints(12), "-691/2730"},
		{"legendre", Ints(2, 7), "1"},
		{"jacobi", Ints(2, 15), "1"},
		{"kronecker", Ints(-1, -3), "1"},
		{"mobius", Ints(30), "-1"},
		{"euler_phi", Ints(36), "12"},
	} {
		require.Equal(t, tc.want, e.Render(call(t, e, tc.name, tc.vals...)), tc.name)
	}
}

func TestRender(t *testing.T) {
	require.Equal(t, "[1/2, 3]", Render(ListResult{bignum.MustFrac(1, 2), bignum.FracOf(3)}, 10))
	require.Equal(t, "1 + q + O(q^5)", Render(SeriesResult{series.FromInts([]int64{1, 1, 1}, 5)}, 2))
	require.Equal(t, "NOT MULTIPLICATIVE\na(6) != a(2) a(3)",
		Render(CheckmultResult{convert.CheckmultResult{Failures: [][2]int{{2, 3}}}}, 10))
}
