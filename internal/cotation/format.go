package cotation

import (
	"strconv"
	"strings"
)

// EmDash is the placeholder rendered where an amount is absent or redundant
const EmDash = "—"

// DefaultCurrency is assumed where a currency must be known but none was
// supplied
const DefaultCurrency = "EUR"

// currencySymbols maps the currency codes the agency operates in to their
// display symbols
var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"THB": "฿",
	"VND": "₫",
	"GBP": "£",
	"JPY": "¥",
	"KHR": "៛",
	"LAK": "₭",
	"MMK": "K",
	"IDR": "Rp",
	"MYR": "RM",
	"PHP": "₱",
}

// CurrencySymbol returns the display symbol of a currency code. Codes
// outside the known set come back unchanged, never empty.
func CurrencySymbol(code string) string {
	if symbol, ok := currencySymbols[code]; ok {
		return symbol
	}
	return code
}

// FormatAmount renders a number in French convention: space as thousands
// separator, comma as decimal separator. Precision is caller-supplied
// because the summary tables round to whole units while per-item tables
// keep cents.
func FormatAmount(n float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}

	s := strconv.FormatFloat(n, 'f', decimals, 64)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart, fracPart = s[:idx], s[idx+1:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(digit)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

// FormatMoney renders an amount followed by its currency symbol, e.g.
// "45 000 ฿" or "1 234,56 €"
func FormatMoney(n float64, currency string, decimals int) string {
	return FormatAmount(n, decimals) + " " + CurrencySymbol(currency)
}

// FormatCurrencyTotals joins per-currency totals with " + ", in the order
// given (AggregateCurrencies already sorts them). An empty list renders as
// the em-dash placeholder, never an empty string.
func FormatCurrencyTotals(totals []CurrencyTotal, decimals int) string {
	if len(totals) == 0 {
		return EmDash
	}
	parts := make([]string, len(totals))
	for i, t := range totals {
		parts[i] = FormatMoney(t.Total, t.Currency, decimals)
	}
	return strings.Join(parts, " + ")
}
