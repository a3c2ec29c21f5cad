package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders d with the currency symbol, thousands separators and
// exactly two decimals, e.g. "-£1,234.50".
func FormatAmount(d decimal.Decimal, symbol string) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
