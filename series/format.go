package series

import (
	"strconv"
	"strings"
)

// DefaultDisplayTerms is the number of terms rendered by String.
const DefaultDisplayTerms = 30

var superscriptDigits = [...]string{"⁰", "¹", "²", "³", "⁴", "⁵", "⁶", "⁷", "⁸", "⁹"}

// Superscript returns n written with unicode superscript digits.
func Superscript(n int) string {
	if n == 0 {
		return superscriptDigits[0]
	}
	var sb strings.Builder
	if n < 0 {
		sb.WriteString("⁻")
		n = -n
	}
	for _, c := range strconv.Itoa(n) {
		sb.WriteString(superscriptDigits[c-'0'])
	}
	return sb.String()
}

// String renders the first DefaultDisplayTerms terms of s.
func (s Series) String() string {
	return s.Format(DefaultDisplayTerms)
}

// Format renders up to maxTerms terms of s in ascending exponent order,
// followed by the remainder marker, e.g. "1 - q - q² + q⁵ + O(q^10)".
// Unit coefficients of non-constant terms are elided and the sign of every
// term after the first is carried by the separator.
func (s Series) Format(maxTerms int) string {

	marker := " + O(q^" + strconv.Itoa(s.trunc) + ")"

	if len(s.coeffs) == 0 {
		return "0" + marker
	}

	var sb strings.Builder
	for i, e := range s.Exponents() {

		if i >= maxTerms {
			break
		}

		v := s.coeffs[e]
		neg := v.Sign() < 0
		av := v.Abs()

		switch {
		case i == 0 && neg:
			sb.WriteString("-")
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}

		if e == 0 || !av.IsOne() {
			sb.WriteString(av.String())
		}

		if e != 0 {
			sb.WriteString("q")
			if e != 1 {
				sb.WriteString(Superscript(e))
			}
		}
	}

	sb.WriteString(marker)

	return sb.String()
}
