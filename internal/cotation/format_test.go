package cotation_test

import (
	"testing"

	"github.com/horizons-voyages/cotation-api/internal/cotation"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		n        float64
		decimals int
		expected string
	}{
		{name: "zero whole", n: 0, decimals: 0, expected: "0"},
		{name: "zero with cents", n: 0, decimals: 2, expected: "0,00"},
		{name: "small amount", n: 120, decimals: 0, expected: "120"},
		{name: "thousands separated by space", n: 45000, decimals: 0, expected: "45 000"},
		{name: "millions", n: 2500000, decimals: 0, expected: "2 500 000"},
		{name: "comma as decimal separator", n: 1234.56, decimals: 2, expected: "1 234,56"},
		{name: "rounds to requested precision", n: 1234.567, decimals: 2, expected: "1 234,57"},
		{name: "one decimal for percentages", n: 25.04, decimals: 1, expected: "25,0"},
		{name: "negative amount", n: -45000.5, decimals: 2, expected: "-45 000,50"},
		{name: "exactly one thousand", n: 1000, decimals: 0, expected: "1 000"},
		{name: "three digits need no separator", n: 999, decimals: 0, expected: "999"},
		{name: "negative precision clamps to whole", n: 12.9, decimals: -1, expected: "13"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cotation.FormatAmount(tc.n, tc.decimals))
		})
	}
}

func TestCurrencySymbol(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{code: "EUR", expected: "€"},
		{code: "USD", expected: "$"},
		{code: "THB", expected: "฿"},
		{code: "VND", expected: "₫"},
		{code: "GBP", expected: "£"},
		{code: "JPY", expected: "¥"},
		{code: "KHR", expected: "៛"},
		{code: "LAK", expected: "₭"},
		{code: "MMK", expected: "K"},
		{code: "IDR", expected: "Rp"},
		{code: "MYR", expected: "RM"},
		{code: "PHP", expected: "₱"},
		// Unknown codes come back unchanged, never empty
		{code: "NOK", expected: "NOK"},
		{code: "XXX", expected: "XXX"},
		{code: "", expected: ""},
	}

	for _, tc := range tests {
		t.Run("symbol "+tc.code, func(t *testing.T) {
			assert.Equal(t, tc.expected, cotation.CurrencySymbol(tc.code))
		})
	}
}

// Same input always yields the same output
func TestCurrencySymbolDeterministic(t *testing.T) {
	for _, code := range []string{"EUR", "NOK", "ZZZ"} {
		first := cotation.CurrencySymbol(code)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, cotation.CurrencySymbol(code))
		}
	}
}

func TestFormatCurrencyTotals(t *testing.T) {
	tests := []struct {
		name     string
		totals   []cotation.CurrencyTotal
		decimals int
		expected string
	}{
		{
			name:     "empty list renders the em-dash placeholder",
			totals:   nil,
			decimals: 0,
			expected: "—",
		},
		{
			name:     "single currency",
			totals:   []cotation.CurrencyTotal{{Currency: "THB", Total: 50000}},
			decimals: 0,
			expected: "50 000 ฿",
		},
		{
			name: "multiple currencies joined in given order",
			totals: []cotation.CurrencyTotal{
				{Currency: "THB", Total: 50000},
				{Currency: "EUR", Total: 120},
			},
			decimals: 0,
			expected: "50 000 ฿ + 120 €",
		},
		{
			name:     "detail precision keeps cents",
			totals:   []cotation.CurrencyTotal{{Currency: "EUR", Total: 1234.5}},
			decimals: 2,
			expected: "1 234,50 €",
		},
		{
			name:     "unknown currency keeps its code",
			totals:   []cotation.CurrencyTotal{{Currency: "NOK", Total: 900}},
			decimals: 0,
			expected: "900 NOK",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cotation.FormatCurrencyTotals(tc.totals, tc.decimals))
		})
	}
}
