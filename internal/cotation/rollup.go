package cotation

import (
	"github.com/horizons-voyages/cotation-api/internal/domain"
)

// ItemWithDay annotates an item with where it came from: a numbered
// itinerary day, or the transversal formulas (trip-wide services not tied
// to a day)
type ItemWithDay struct {
	domain.CotationItemDetail
	DayNumber   int  `json:"day_number"`
	Transversal bool `json:"transversal"`
}

// DayBreakdown is one day's flattened item list. TotalCost is the engine's
// day total in the selling currency, taken as-is; it may not reconcile
// exactly with the sum of displayed local subtotals because of conversion
// rounding.
type DayBreakdown struct {
	DayID     int64
	DayNumber int
	TotalCost float64
	Items     []domain.CotationItemDetail
}

// NatureGroup collects the items of one cost nature across the whole pax
// configuration. Transversal items and per-day items are kept as separate
// collections: the summary presentation renders transversal services first,
// then days in ascending order.
type NatureGroup struct {
	Nature      CostNature
	Transversal []ItemWithDay
	ByDay       []ItemWithDay
}

// Items returns the group's items in presentation order, transversal first
// then days ascending.
func (g NatureGroup) Items() []ItemWithDay {
	out := make([]ItemWithDay, 0, len(g.Transversal)+len(g.ByDay))
	out = append(out, g.Transversal...)
	out = append(out, g.ByDay...)
	return out
}

// IsEmpty reports whether no item of this nature exists anywhere in the
// configuration
func (g NatureGroup) IsEmpty() bool {
	return len(g.Transversal) == 0 && len(g.ByDay) == 0
}

// CollectDayItems flattens all formula items of one day, preserving formula
// then item order. A day with zero formulas yields an empty list; that is a
// valid day, not an error.
func CollectDayItems(day *domain.CotationDayDetail) []domain.CotationItemDetail {
	var items []domain.CotationItemDetail
	for _, formula := range day.Formulas {
		items = append(items, formula.Items...)
	}
	return items
}

// collectTransversalItems flattens the items of the configuration's
// transversal formulas
func collectTransversalItems(pax *domain.CotationPaxResult) []domain.CotationItemDetail {
	var items []domain.CotationItemDetail
	for _, formula := range pax.TransversalFormulas {
		items = append(items, formula.Items...)
	}
	return items
}

// DayBreakdowns produces the "by day" breakdown of one pax configuration,
// in the day order supplied by the engine.
func DayBreakdowns(pax *domain.CotationPaxResult) []DayBreakdown {
	out := make([]DayBreakdown, 0, len(pax.Days))
	for i := range pax.Days {
		day := &pax.Days[i]
		out = append(out, DayBreakdown{
			DayID:     day.DayID,
			DayNumber: day.DayNumber,
			TotalCost: day.TotalCost,
			Items:     CollectDayItems(day),
		})
	}
	return out
}

// NatureGroups produces the "by type" breakdown of one pax configuration:
// one group per cost nature, in presentation order, covering every item of
// every day plus the transversal formulas. Items with an absent or
// unrecognized nature code land in the Divers group, so no item is ever
// dropped. Groups for natures with no items are included empty; views skip
// them.
func NatureGroups(pax *domain.CotationPaxResult) []NatureGroup {
	byNature := make(map[CostNature]*NatureGroup, len(natureOrder))
	groups := make([]NatureGroup, len(natureOrder))
	for i, nature := range natureOrder {
		groups[i] = NatureGroup{Nature: nature}
		byNature[nature] = &groups[i]
	}

	for _, item := range collectTransversalItems(pax) {
		g := byNature[NatureOf(item.CostNatureCode)]
		g.Transversal = append(g.Transversal, ItemWithDay{CotationItemDetail: item, Transversal: true})
	}

	for i := range pax.Days {
		day := &pax.Days[i]
		for _, item := range CollectDayItems(day) {
			g := byNature[NatureOf(item.CostNatureCode)]
			g.ByDay = append(g.ByDay, ItemWithDay{CotationItemDetail: item, DayNumber: day.DayNumber})
		}
	}

	return groups
}

// AllItems flattens every item of the configuration: all days in order,
// then the transversal formulas. This is the item universe the alert rules
// scan.
func AllItems(pax *domain.CotationPaxResult) []domain.CotationItemDetail {
	var items []domain.CotationItemDetail
	for i := range pax.Days {
		items = append(items, CollectDayItems(&pax.Days[i])...)
	}
	items = append(items, collectTransversalItems(pax)...)
	return items
}
