package domain

// Wire types for pricing results pushed by the pricing engine.
// Field names and nesting are part of the engine's JSON contract and must
// not be renamed.

// CotationResults is the top-level result of one pricing run for a trip.
type CotationResults struct {
	// PaxConfigs holds one entry per priced configuration, e.g. "Budget, 4 pax".
	// An empty list is a valid (if useless) result: views render a
	// placeholder for it. Storing such a result is refused at ingest.
	PaxConfigs []CotationPaxResult `json:"pax_configs" validate:"omitempty,dive"`
	// MissingExchangeRates lists currency codes the engine had no rate for.
	// Costs in those currencies are counted as zero by the engine.
	MissingExchangeRates []string `json:"missing_exchange_rates"`
	// Warnings are free-text messages emitted during the pricing run.
	Warnings []string `json:"warnings"`
	// Currency is the selling currency all converted totals are expressed in.
	// Older engine builds omit it; EUR is assumed then.
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

// CotationPaxResult is one priced configuration. All monetary fields are in
// the selling currency.
type CotationPaxResult struct {
	Label               string                  `json:"label"`
	ArgsLabel           string                  `json:"args_label"`
	MarginDefault       float64                 `json:"margin_default"`
	MarginPct           float64                 `json:"margin_pct"`
	TotalCost           float64                 `json:"total_cost"`
	TotalPrice          float64                 `json:"total_price"`
	TotalProfit         float64                 `json:"total_profit"`
	CostPerPerson       float64                 `json:"cost_per_person"`
	PricePerPerson      float64                 `json:"price_per_person"`
	Days                []CotationDayDetail     `json:"days"`
	TransversalFormulas []CotationFormulaDetail `json:"transversal_formulas"`
}

// CotationDayDetail is one itinerary day's cost breakdown. TotalCost is
// computed by the engine and is authoritative; it is never recomputed from
// the item subtotals.
type CotationDayDetail struct {
	DayID     int64                   `json:"day_id"`
	DayNumber int                     `json:"day_number"`
	TotalCost float64                 `json:"total_cost"`
	Formulas  []CotationFormulaDetail `json:"formulas"`
}

// CotationFormulaDetail groups the priced items of one service formula.
type CotationFormulaDetail struct {
	Items     []CotationItemDetail `json:"items"`
	TotalCost float64              `json:"total_cost"`
}

// CotationItemDetail is a single priced line. UnitCostLocal and
// SubtotalCostLocal are in ItemCurrency; SubtotalCost is the engine's
// conversion into the selling currency.
type CotationItemDetail struct {
	ItemID            int64   `json:"item_id"`
	ItemName          string  `json:"item_name"`
	Quantity          int     `json:"quantity"`
	UnitCostLocal     float64 `json:"unit_cost_local"`
	SubtotalCostLocal float64 `json:"subtotal_cost_local"`
	ItemCurrency      string  `json:"item_currency"`
	SubtotalCost      float64 `json:"subtotal_cost"`
	// CostNatureCode is one of HTL, GDE, TRS, ACT, RES, MIS. Absent or
	// unrecognized codes are classified as MIS.
	CostNatureCode string `json:"cost_nature_code"`
}
