package engine

import (
	"fmt"
	"strings"

	"github.com/tuneinsight/qseries/convert"
	"github.com/tuneinsight/qseries/relations"
	"github.com/tuneinsight/qseries/series"
	"github.com/tuneinsight/qseries/utils/bignum"
)

// Result is the outcome of a builtin call. The set of implementations is closed.
type Result interface {
	isResult()
}

// SeriesResult is a series.
type SeriesResult struct {
	series.Series
}

// ProductResult holds the prodmake exponents a_n of f = prod (1-q^n)^{-a_n}.
type ProductResult struct {
	Exponents map[int]bignum.Frac
}

// EtaResult holds q^QPower times the eta factors. Found is false if none was found.
type EtaResult struct {
	convert.EtaQuotient
}

// MprodResult holds the set S of f = prod_{n in S} (1+q^n).
type MprodResult struct {
	Set []int
}

// JacResult holds the factors of a Jacobi product. Empty if none was found.
type JacResult struct {
	Factors []convert.JacFactor
}

// KernelResult holds the relations found by findhom, findnonhom and findpoly.
type KernelResult struct {
	relations.KernelResult
	// Names are the variable names used for rendering, X₁, X₂, ... if empty.
	Names []string
}

// ComboResult holds the expression found by findhomcombo and findnonhomcombo.
type ComboResult struct {
	relations.ComboResult
}

// QFactorResult holds a factored finite q-product.
type QFactorResult struct {
	convert.QFactorResult
}

// CheckprodResult holds the outcome of checkprod.
type CheckprodResult struct {
	convert.CheckprodResult
}

// CheckmultResult holds the outcome of checkmult.
type CheckmultResult struct {
	convert.CheckmultResult
}

// MaxindResult holds the outcome of findmaxind.
type MaxindResult struct {
	relations.MaxindResult
}

// IntResult is an integer.
type IntResult struct {
	bignum.Int
}

// FracResult is a rational number.
type FracResult struct {
	bignum.Frac
}

// ListResult is a list of rational numbers.
type ListResult []bignum.Frac

// TextResult is pre-rendered text.
type TextResult string

// NoneResult is returned by calls with no value, such as set_trunc.
type NoneResult struct{}

func (SeriesResult) isResult()    {}
func (ProductResult) isResult()   {}
func (EtaResult) isResult()       {}
func (MprodResult) isResult()     {}
func (JacResult) isResult()       {}
func (KernelResult) isResult()    {}
func (ComboResult) isResult()     {}
func (QFactorResult) isResult()   {}
func (CheckprodResult) isResult() {}
func (CheckmultResult) isResult() {}
func (MaxindResult) isResult()    {}
func (IntResult) isResult()       {}
func (FracResult) isResult()      {}
func (ListResult) isResult()      {}
func (TextResult) isResult()      {}
func (NoneResult) isResult()      {}

// Render returns the textual form of r. Series are shown up to maxTerms terms.
func Render(r Result, maxTerms int) string {
	switch r := r.(type) {
	case SeriesResult:
		return r.Format(maxTerms)
	case ProductResult:
		return convert.FormatProdmake(r.Exponents, true)
	case EtaResult:
		if !r.Found {
			return "(not an eta product)"
		}
		return convert.FormatEtaQuotient(r.EtaQuotient)
	case MprodResult:
		return convert.FormatMprodmake(r.Set)
	case JacResult:
		if len(r.Factors) == 0 {
			return "(not a Jacobi product)"
		}
		return convert.Jac2prod(r.Factors)
	case KernelResult:
		if len(r.Basis) == 0 {
			return "(no relation)"
		}
		lines := make([]string, len(r.Basis))
		for i, v := range r.Basis {
			lines[i] = relations.FormatRelation(v, r.Monomials, r.Names)
		}
		return strings.Join(lines, "\n")
	case ComboResult:
		if r.Coeffs == nil {
			return "(no solution)"
		}
		return relations.FormatRelation(r.Coeffs, r.Monomials, nil)
	case QFactorResult:
		return convert.FormatQfactor(r.QFactorResult)
	case CheckprodResult:
		if r.Nice {
			return fmt.Sprintf("[%d, 1]", r.MinExp)
		}
		return fmt.Sprintf("[%d, 0] (exponents not all below %d)", r.MinExp, r.M)
	case CheckmultResult:
		if r.Multiplicative {
			return "MULTIPLICATIVE"
		}
		lines := []string{"NOT MULTIPLICATIVE"}
		for _, f := range r.Failures {
			lines = append(lines, fmt.Sprintf("a(%d) != a(%d) a(%d)", f[0]*f[1], f[0], f[1]))
		}
		return strings.Join(lines, "\n")
	case MaxindResult:
		return fmt.Sprint(r.Indices)
	case IntResult:
		return r.String()
	case FracResult:
		return r.String()
	case ListResult:
		parts := make([]string, len(r))
		for i := range r {
			parts[i] = r[i].String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TextResult:
		return string(r)
	case NoneResult:
		return ""
	default:
		return fmt.Sprintf("%v", r)
	}
}
