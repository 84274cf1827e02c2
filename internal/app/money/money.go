// Package money converts between Brazilian-formatted price strings and
// fixed-point decimals: "." as thousands separator, "," as decimal separator.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse interprets raw in Brazilian convention ("1.234,56" -> 1234.56).
// Thousands separators are stripped before the decimal separator is
// normalized, so values above 999 round-trip. Parsing never fails: empty
// input or non-numeric residue degrades to zero.
func Parse(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}

	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// Format renders v with exactly 2 fractional digits, "." every 3 integer
// digits and "," as decimal separator: 1234.5 -> "1.234,50".
func Format(v decimal.Decimal) string {
	fixed := v.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(intPart[i])
	}

	out := b.String() + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// SuspectZero reports whether a zero parse result came from input that was
// probably meant to carry a value, i.e. non-empty input other than the
// canonical zero forms. Callers log this as a diagnostic; the zero value is
// still used.
func SuspectZero(raw string, parsed decimal.Decimal) bool {
	if !parsed.IsZero() {
		return false
	}
	s := strings.TrimSpace(raw)
	return s != "" && s != "0,00" && s != "0" && s != "0,0"
}
