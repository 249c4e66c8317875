package convert

import (
	"strconv"
	"strings"

	"github.com/tuneinsight/qseries/series"
	"github.com/tuneinsight/qseries/utils"
	"github.com/tuneinsight/qseries/utils/bignum"
)

// power renders the exponent |e| of a factor, omitted when it is 1.
func power(e bignum.Frac) string {
	e = e.Abs()
	switch {
	case e.IsOne():
		return ""
	case e.IsInt():
		if v, ok := e.Int64(); ok {
			return series.Superscript(int(v))
		}
		return "^" + e.String()
	default:
		return "^(" + e.String() + ")"
	}
}

// quotient renders "num / (den)" from the factor lists.
func quotient(num, den []string, sep string) string {
	n, d := strings.Join(num, sep), strings.Join(den, sep)
	switch {
	case n == "" && d == "":
		return "1"
	case d == "":
		return n
	case n == "":
		return "1 / (" + d + ")"
	default:
		return n + " / (" + d + ")"
	}
}

func qMonomial(e int) string {
	if e == 1 {
		return "q"
	}
	return "q" + series.Superscript(e)
}

// FormatProdmake renders the prodmake exponents as a quotient of (1-q^n) factors.
// With mapleStyle the factors are written (-q^n+1).
func FormatProdmake(a map[int]bignum.Frac, mapleStyle bool) string {
	var num, den []string
	for _, n := range utils.GetSortedKeys(a) {
		an := a[n]
		if an.IsZero() {
			continue
		}
		var part string
		if mapleStyle && n != 1 {
			part = "(-" + qMonomial(n) + "+1)"
		} else {
			part = "(1-" + qMonomial(n) + ")"
		}
		part += power(an)
		if an.Sign() > 0 {
			den = append(den, part)
		} else {
			num = append(num, part)
		}
	}
	return quotient(num, den, " ")
}

// FormatEtamake renders the eta factors, e.g. "η(2τ)⁵ / (η(τ)² η(4τ)²)".
func FormatEtamake(eta []EtaFactor) string {
	var num, den []string
	for _, f := range eta {
		if f.Exp.IsZero() {
			continue
		}
		part := "η(τ)"
		if f.K != 1 {
			part = "η(" + strconv.Itoa(f.K) + "τ)"
		}
		part += power(f.Exp)
		if f.Exp.Sign() > 0 {
			num = append(num, part)
		} else {
			den = append(den, part)
		}
	}
	return quotient(num, den, " ")
}

// FormatEtaQuotient renders q^m times the eta factors, e.g. "q·η(τ)²⁴".
func FormatEtaQuotient(eq EtaQuotient) string {
	body := FormatEtamake(eq.Factors)
	switch {
	case eq.QPower == 0:
		return body
	case body == "1":
		return qMonomial(eq.QPower)
	default:
		return qMonomial(eq.QPower) + "·" + body
	}
}

// FormatQfactor renders q^m times the quotient of (1-q^n) factors.
func FormatQfactor(qf QFactorResult) string {

	var num, den []string
	for _, n := range utils.GetSortedKeys(qf.Num) {
		if !qf.Num[n].IsZero() {
			num = append(num, "(1-"+qMonomial(n)+")"+power(qf.Num[n]))
		}
	}
	for _, n := range utils.GetSortedKeys(qf.Den) {
		if !qf.Den[n].IsZero() {
			den = append(den, "(1-"+qMonomial(n)+")"+power(qf.Den[n]))
		}
	}

	body := quotient(num, den, "")

	switch {
	case qf.QPower == 0:
		return body
	case body == "1":
		return qMonomial(qf.QPower)
	default:
		return qMonomial(qf.QPower) + "·" + body
	}
}

// FormatMprodmake renders the set S as prod_{n in S} (1+q^n).
func FormatMprodmake(s []int) string {
	if len(s) == 0 {
		return "1"
	}
	parts := make([]string, len(s))
	for i, n := range s {
		parts[i] = "(1+" + qMonomial(n) + ")"
	}
	return strings.Join(parts, "")
}

// Jac2prod renders the Jacobi factors as a quotient of q-Pochhammer symbols,
// e.g. "(q⁵,q⁵)_∞ / ((q,q⁵)_∞ (q⁴,q⁵)_∞ (q⁵,q⁵)_∞)".
func Jac2prod(jac []JacFactor) string {
	var num, den []string
	for _, j := range jac {
		if j.Exp.IsZero() {
			continue
		}
		qb := qMonomial(j.B)
		var part string
		if j.A == 0 {
			part = "(" + qb + "," + qb + ")_∞"
		} else {
			part = "(" + qMonomial(j.A) + "," + qb + ")_∞ (" + qMonomial(j.B-j.A) + "," + qb + ")_∞ (" + qb + "," + qb + ")_∞"
		}
		if p := power(j.Exp); p != "" {
			part = "[" + part + "]" + p
		}
		if j.Exp.Sign() > 0 {
			num = append(num, part)
		} else {
			den = append(den, part)
		}
	}
	return quotient(num, den, " ")
}
