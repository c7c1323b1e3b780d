package cotation

import (
	"sort"

	"github.com/horizons-voyages/cotation-api/internal/domain"
)

// CurrencyTotal is the summed local-currency cost of a set of items sharing
// one currency
type CurrencyTotal struct {
	Currency string  `json:"currency"`
	Total    float64 `json:"total"`
}

// AggregateCurrencies groups items by their local currency and sums the
// local subtotals. Every distinct currency present in the input appears
// exactly once in the output, sorted by total descending; ties keep the
// first-seen currency first (stable sort over first-seen order). No
// conversion happens here: conversion into the selling currency is done
// upstream by the pricing engine.
//
// An item without a currency counts under the EUR default. An empty input
// yields an empty result; callers render a placeholder for it.
func AggregateCurrencies(items []domain.CotationItemDetail) []CurrencyTotal {
	totals := make(map[string]float64)
	order := make([]string, 0, 4)

	for _, item := range items {
		cur := item.ItemCurrency
		if cur == "" {
			cur = DefaultCurrency
		}
		if _, seen := totals[cur]; !seen {
			order = append(order, cur)
		}
		totals[cur] += item.SubtotalCostLocal
	}

	out := make([]CurrencyTotal, 0, len(order))
	for _, cur := range order {
		out = append(out, CurrencyTotal{Currency: cur, Total: totals[cur]})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})

	return out
}
