package ledger

import (
	"strings"
	"unicode"

	"github.com/newthinker/pricelog/internal/core"
	"github.com/shopspring/decimal"
)

// FormatEntry renders "<YYYY-MM-DD HH:MM:SS UTC>: $<price>\n" with exactly
// two fractional digits.
func FormatEntry(r core.PriceReading) string {
	return r.ObservedAt.UTC().Format(TimeLayout) + ": $" + FormatPrice(r.Price) + "\n"
}

// FormatPrice renders a price with exactly two fractional digits. The price is
// taken at its shortest decimal form (the number as quoted upstream) and
// rounded half away from zero: 1.005 -> "1.01", -2.675 -> "-2.68".
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).StringFixed(2)
}

// FileName derives the log file name for a source:
// "Bitcoin" -> "bitcoin_prices.txt", "S&P 500" -> "s_p_500_prices.txt"
func FileName(source string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(source) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	name := strings.TrimSuffix(b.String(), "_")
	if name == "" {
		name = "unnamed"
	}
	return name + "_prices.txt"
}
