package report

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// roundFloat rounds v to the given number of decimal places, half to even on
// the exact binary value, so 2.25 becomes 2.2 and 2.675 becomes 2.67.
func roundFloat(v float64, decimals int) float64 {
	if decimals < 0 {
		decimals = 0
	}
	// 40 digits spell out every tie a double can hold at display precision
	d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', 40, 64))
	if err != nil {
		return v
	}
	return d.RoundBank(int32(decimals)).InexactFloat64()
}

// formatThousands formats a float with a comma as thousands separator and a
// dot as decimal separator, always printing the requested number of decimals.
// Example: 1234.5 (2 decimals) => "1,234.50"; 1000.0 (0 decimals) => "1,000".
func formatThousands(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return groupThousands(decimal.NewFromFloat(v).StringFixedBank(int32(decimals)))
}

// formatMoney renders an amount as dollars with thousands separators.
func formatMoney(d decimal.Decimal, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return "$" + groupThousands(d.StringFixedBank(int32(decimals)))
}

// groupThousands inserts commas into the integer part of a plain decimal string.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + frac
}

// formatNumber prints a quantity without a trailing ".0" when it is whole.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
