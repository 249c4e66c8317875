// Package relations finds polynomial relations among q-series by exact linear
// algebra on their truncated coefficient windows.
package relations

import (
	"strconv"
	"strings"

	"github.com/tuneinsight/qseries/linalg"
	"github.com/tuneinsight/qseries/series"
	"github.com/tuneinsight/qseries/utils"
	"github.com/tuneinsight/qseries/utils/bignum"
)

// KernelResult is a basis of the relations found among a list of series.
// Each basis vector holds one coefficient per monomial, in the order of Monomials.
type KernelResult struct {
	Basis     [][]bignum.Frac
	Monomials [][]int
}

// ComboResult is the expression of a series as a polynomial in a list of series.
// Coeffs is nil when no such expression exists.
type ComboResult struct {
	Coeffs    []bignum.Frac
	Monomials [][]int
}

// MaxindResult is a maximal linearly independent subset of a list of series.
// Indices are 1-based.
type MaxindResult struct {
	Subset  []series.Series
	Indices []int
}

// HomExponents returns the exponent vectors of length k with non-negative
// entries summing to n, in lexicographic order.
func HomExponents(k, n int) [][]int {
	out := [][]int{}
	if k <= 0 || n < 0 {
		return out
	}
	var rec func(prefix []int, k, n int)
	rec = func(prefix []int, k, n int) {
		if k == 1 {
			out = append(out, append(append([]int{}, prefix...), n))
			return
		}
		for a := 0; a <= n; a++ {
			rec(append(prefix, a), k-1, n-a)
		}
	}
	rec(make([]int, 0, k), k, n)
	return out
}

// NonhomExponents returns the exponent vectors of HomExponents for the degrees 0, ..., n, concatenated.
func NonhomExponents(k, n int) [][]int {
	out := [][]int{}
	for d := 0; d <= n; d++ {
		out = append(out, HomExponents(k, d)...)
	}
	return out
}

// BoundedExponents returns the exponent vectors with 0 <= e_i <= bounds[i], in row-major order.
func BoundedExponents(bounds []int) [][]int {
	out := [][]int{}
	var rec func(prefix []int, idx int)
	rec = func(prefix []int, idx int) {
		if idx == len(bounds) {
			out = append(out, append([]int{}, prefix...))
			return
		}
		for d := 0; d <= bounds[idx]; d++ {
			rec(append(prefix, d), idx+1)
		}
	}
	rec(make([]int, 0, len(bounds)), 0)
	return out
}

// minTrunc returns the smallest truncation of the given series.
func minTrunc(T int, L []series.Series) int {
	for _, s := range L {
		T = utils.Min(T, s.Trunc())
	}
	return T
}

// monomials returns the products prod_i L_i^{e_i}, truncated at T, for each exponent vector.
func monomials(L []series.Series, exps [][]int, T int) []series.Series {

	lt := make([]series.Series, len(L))
	for i := range L {
		lt[i] = L[i].TruncTo(T)
	}

	// powers[i][e] = lt[i]^e
	powers := make([]map[int]series.Series, len(L))
	for i := range powers {
		powers[i] = map[int]series.Series{0: series.One(T)}
	}
	pow := func(i, e int) series.Series {
		if p, ok := powers[i][e]; ok {
			return p
		}
		p := lt[i].MustPow(e)
		powers[i][e] = p
		return p
	}

	out := make([]series.Series, len(exps))
	for j, e := range exps {
		prod := series.One(T)
		for i := range L {
			if e[i] != 0 {
				prod = prod.Mul(pow(i, e[i]))
			}
		}
		out[j] = prod
	}

	return out
}

// coefficientMatrix returns the matrix whose column j holds the coefficients of
// q^0, ..., q^{numCols-1} of the j-th series.
func coefficientMatrix(cols []series.Series, numCols int) linalg.Matrix {
	rows := make(linalg.Matrix, len(cols))
	for j, s := range cols {
		rows[j] = s.CoeffList(0, numCols-1)
	}
	return rows.Transpose()
}

// findKernel returns the relations among the monomials of L given by exps.
func findKernel(L []series.Series, exps [][]int, T, numCols int) KernelResult {
	M := coefficientMatrix(monomials(L, exps, T), numCols)
	return KernelResult{Basis: linalg.Kernel(M), Monomials: exps}
}

// Findhom returns the homogeneous relations of degree n among the series of L,
// on the window of min trunc + topshift coefficients.
func Findhom(L []series.Series, n, topshift int) KernelResult {

	if len(L) == 0 || n < 0 {
		return KernelResult{Basis: [][]bignum.Frac{}, Monomials: [][]int{}}
	}

	T := minTrunc(L[0].Trunc(), L)
	numCols := T + topshift
	exps := HomExponents(len(L), n)

	if numCols <= 0 {
		return KernelResult{Basis: [][]bignum.Frac{}, Monomials: exps}
	}

	return findKernel(L, exps, T, numCols)
}

// Findnonhom returns the relations of degree at most n among the series of L.
func Findnonhom(L []series.Series, n, topshift int) KernelResult {

	if len(L) == 0 || n < 0 {
		return KernelResult{Basis: [][]bignum.Frac{}, Monomials: [][]int{}}
	}

	T := minTrunc(L[0].Trunc(), L)
	numCols := T + topshift
	exps := NonhomExponents(len(L), n)

	if numCols <= 0 {
		return KernelResult{Basis: [][]bignum.Frac{}, Monomials: exps}
	}

	return findKernel(L, exps, T, numCols)
}

// Findpoly returns the polynomial relations P(X, Y) = 0 between x and y with
// deg_X P <= deg1 and deg_Y P <= deg2. Monomials are X^i Y^j with i varying
// first. A positive check extends the window to at least check coefficients.
func Findpoly(x, y series.Series, deg1, deg2, check int) KernelResult {

	T := utils.Min(x.Trunc(), y.Trunc())

	topshift := 0
	if check > 0 {
		topshift = utils.Max(0, check-T)
	}

	numCols := T + topshift
	if numCols <= 0 || deg1 < 0 || deg2 < 0 {
		return KernelResult{Basis: [][]bignum.Frac{}, Monomials: [][]int{}}
	}

	exps := [][]int{}
	for j := 0; j <= deg2; j++ {
		for i := 0; i <= deg1; i++ {
			exps = append(exps, []int{i, j})
		}
	}

	return findKernel([]series.Series{x, y}, exps, T, numCols)
}

// solveCombo expresses f in the monomials of L given by exps.
func solveCombo(f series.Series, L []series.Series, exps [][]int, topshift int) ComboResult {

	res := ComboResult{Monomials: exps}

	T := minTrunc(f.Trunc(), L)
	numCols := T + topshift
	if numCols <= 0 {
		return res
	}

	M := coefficientMatrix(monomials(L, exps, T), numCols)
	b := f.TruncTo(T).CoeffList(0, numCols-1)

	// an inconsistent system means f is not in the span
	if x, err := linalg.Solve(M, b); err == nil {
		res.Coeffs = x
	}

	return res
}

// Findhomcombo expresses f as a homogeneous polynomial of degree n in the series of L.
func Findhomcombo(f series.Series, L []series.Series, n, topshift int) ComboResult {
	if len(L) == 0 || n < 0 {
		return ComboResult{Monomials: [][]int{}}
	}
	return solveCombo(f, L, HomExponents(len(L), n), topshift)
}

// Findnonhomcombo expresses f as a polynomial in the series of L, with the
// degree in L_i bounded by bounds[i].
func Findnonhomcombo(f series.Series, L []series.Series, bounds []int, topshift int) ComboResult {
	if len(L) == 0 || len(bounds) != len(L) {
		return ComboResult{Monomials: [][]int{}}
	}
	return solveCombo(f, L, BoundedExponents(bounds), topshift)
}

// Findmaxind returns a maximal linearly independent subset of L, chosen
// greedily in the order of L.
func Findmaxind(L []series.Series, topshift int) MaxindResult {

	res := MaxindResult{Subset: []series.Series{}, Indices: []int{}}

	if len(L) == 0 {
		return res
	}

	numCols := minTrunc(L[0].Trunc(), L) + topshift
	if numCols <= 0 {
		return res
	}

	for _, i := range linalg.GaussToRREF(coefficientMatrix(L, numCols), -1) {
		res.Subset = append(res.Subset, L[i])
		res.Indices = append(res.Indices, i+1)
	}

	return res
}

var subscripts = [...]string{"₁", "₂", "₃", "₄", "₅"}

// DefaultNames returns the variable names X₁, X₂, ... for k variables.
func DefaultNames(k int) []string {
	names := make([]string, k)
	for i := range names {
		if i < len(subscripts) {
			names[i] = "X" + subscripts[i]
		} else {
			names[i] = "X" + strconv.Itoa(i+1)
		}
	}
	return names
}

// FormatRelation renders sum_i coeffs[i] * monomial_i, e.g. "X₁² - 3X₁X₂".
// Zero coefficients and zero exponents are skipped. If names is empty,
// DefaultNames is used.
func FormatRelation(coeffs []bignum.Frac, exps [][]int, names []string) string {

	if len(coeffs) == 0 {
		return "0"
	}

	if len(exps) != len(coeffs) {
		parts := make([]string, len(coeffs))
		for i := range coeffs {
			parts[i] = coeffs[i].String()
		}
		return strings.Join(parts, " ")
	}

	if len(names) == 0 {
		var k int
		for _, e := range exps {
			k = utils.Max(k, len(e))
		}
		names = DefaultNames(k)
	}

	var sb strings.Builder
	for i, c := range coeffs {

		if c.IsZero() {
			continue
		}

		var mono strings.Builder
		for j, e := range exps[i] {
			if e == 0 || j >= len(names) {
				continue
			}
			mono.WriteString(names[j])
			if e != 1 {
				mono.WriteString(series.Superscript(e))
			}
		}

		switch {
		case sb.Len() == 0 && c.Sign() < 0:
			sb.WriteString("-")
		case sb.Len() > 0 && c.Sign() < 0:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}

		if ac := c.Abs(); !ac.IsOne() || mono.Len() == 0 {
			sb.WriteString(ac.String())
		}

		sb.WriteString(mono.String())
	}

	if sb.Len() == 0 {
		return "0"
	}

	return sb.String()
}
