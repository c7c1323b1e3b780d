package cotation_test

import (
	"testing"

	"github.com/horizons-voyages/cotation-api/internal/cotation"
	"github.com/horizons-voyages/cotation-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() *domain.CotationResults {
	return &domain.CotationResults{
		Currency: "EUR",
		PaxConfigs: []domain.CotationPaxResult{
			{
				Label:          "2-3 pax",
				ArgsLabel:      "2 à 3 personnes",
				TotalCost:      1250,
				TotalPrice:     1687.5,
				TotalProfit:    437.5,
				CostPerPerson:  625,
				PricePerPerson: 843.75,
				MarginPct:      25.9,
				Days: []domain.CotationDayDetail{
					{
						DayID:     10,
						DayNumber: 1,
						TotalCost: 1180,
						Formulas: []domain.CotationFormulaDetail{
							{Items: []domain.CotationItemDetail{
								{
									ItemName: "Hôtel Chiang Mai", Quantity: 2,
									UnitCostLocal: 22500, SubtotalCostLocal: 45000,
									ItemCurrency: "THB", SubtotalCost: 1160,
									CostNatureCode: "HTL",
								},
								{
									ItemName: "Taxe de séjour", Quantity: 2,
									UnitCostLocal: 10, SubtotalCostLocal: 20,
									ItemCurrency: "EUR", SubtotalCost: 20,
									CostNatureCode: "HTL",
								},
							}},
						},
					},
				},
				TransversalFormulas: []domain.CotationFormulaDetail{
					{
						TotalCost: 70,
						Items: []domain.CotationItemDetail{
							{
								ItemName: "Guide francophone", Quantity: 1,
								UnitCostLocal: 70, SubtotalCostLocal: 70,
								ItemCurrency: "EUR", SubtotalCost: 70,
								CostNatureCode: "GDE",
							},
						},
					},
				},
			},
		},
	}
}

func TestBuildSummaryView(t *testing.T) {
	view := cotation.BuildSummaryView(sampleResults())

	assert.Equal(t, "EUR", view.Currency)
	assert.False(t, view.Empty)
	assert.Empty(t, view.Placeholder)
	assert.Empty(t, view.Alerts)

	require.Len(t, view.Configs, 1)
	cfg := view.Configs[0]
	assert.Equal(t, "2-3 pax", cfg.Label)
	assert.Equal(t, "2 à 3 personnes", cfg.ArgsLabel)
	// Headline figures use whole-unit precision
	assert.Equal(t, "1 250 €", cfg.TotalCost)
	assert.Equal(t, "1 688 €", cfg.TotalPrice)
	assert.Equal(t, "438 €", cfg.TotalProfit)
	assert.Equal(t, "625 €", cfg.CostPerPerson)
	assert.Equal(t, "844 €", cfg.PricePerPerson)
	assert.Equal(t, "25,9 %", cfg.MarginPct)

	require.Len(t, cfg.Groups, 2)

	// Transversal block first, summed from its formula totals
	trans := cfg.Groups[0]
	assert.Equal(t, "Services transversaux", trans.Label)
	assert.True(t, trans.Transversal)
	assert.Equal(t, "70 €", trans.Total)
	assert.Equal(t, "70 €", trans.LocalTotals)
	assert.Equal(t, 1, trans.ItemCount)

	day := cfg.Groups[1]
	assert.Equal(t, "Jour 1", day.Label)
	assert.Equal(t, 1, day.DayNumber)
	// The engine's day total, not a recomputed sum
	assert.Equal(t, "1 180 €", day.Total)
	assert.Equal(t, "45 000 ฿ + 20 €", day.LocalTotals)
	assert.Equal(t, 2, day.ItemCount)
}

func TestBuildSummaryViewIncludesAlerts(t *testing.T) {
	res := sampleResults()
	res.MissingExchangeRates = []string{"LAK"}

	view := cotation.BuildSummaryView(res)

	require.Len(t, view.Alerts, 1)
	assert.Equal(t, cotation.SeverityError, view.Alerts[0].Severity)
}

func TestBuildSummaryViewEmptyResults(t *testing.T) {
	view := cotation.BuildSummaryView(&domain.CotationResults{Currency: "EUR"})

	assert.True(t, view.Empty)
	assert.Equal(t, "Aucun résultat de cotation", view.Placeholder)
	assert.Empty(t, view.Configs)
}

func TestBuildSummaryViewOmitsEmptyTransversalBlock(t *testing.T) {
	res := sampleResults()
	res.PaxConfigs[0].TransversalFormulas = nil

	view := cotation.BuildSummaryView(res)

	require.Len(t, view.Configs, 1)
	require.Len(t, view.Configs[0].Groups, 1)
	assert.Equal(t, "Jour 1", view.Configs[0].Groups[0].Label)
}

func TestBuildDayView(t *testing.T) {
	view := cotation.BuildDayView(sampleResults())

	assert.Equal(t, "EUR", view.Currency)
	require.Len(t, view.Configs, 1)
	require.Len(t, view.Configs[0].Days, 1)

	day := view.Configs[0].Days[0]
	assert.Equal(t, "Jour 1", day.Label)
	assert.Equal(t, "1 180 €", day.Total)
	require.Len(t, day.Items, 2)

	// Item rows keep cents and the local currency
	hotel := day.Items[0]
	assert.Equal(t, "Hôtel Chiang Mai", hotel.Name)
	assert.Equal(t, "Hébergement", hotel.NatureLabel)
	assert.Equal(t, 2, hotel.Quantity)
	assert.Equal(t, "22 500,00 ฿", hotel.UnitCost)
	assert.Equal(t, "45 000,00 ฿", hotel.Subtotal)
	assert.Equal(t, "THB", hotel.Currency)
	assert.Equal(t, "1 160,00 €", hotel.Converted)

	// Items already priced in the selling currency show no converted value
	tax := day.Items[1]
	assert.Equal(t, "EUR", tax.Currency)
	assert.Equal(t, "—", tax.Converted)
}

func TestBuildDayViewEmptyResults(t *testing.T) {
	view := cotation.BuildDayView(&domain.CotationResults{})

	assert.True(t, view.Empty)
	assert.Equal(t, "Aucun résultat de cotation", view.Placeholder)
	// Missing selling currency falls back to EUR
	assert.Equal(t, "EUR", view.Currency)
}

func TestBuildTypeView(t *testing.T) {
	view := cotation.BuildTypeView(sampleResults())

	require.Len(t, view.Configs, 1)
	types := view.Configs[0].Types
	// Natures with no items are skipped
	require.Len(t, types, 2)

	htl := types[0]
	assert.Equal(t, cotation.NatureAccommodation, htl.Nature)
	assert.Equal(t, "Hébergement", htl.Label)
	assert.NotEmpty(t, htl.DotColor)
	assert.Equal(t, "45 000 ฿ + 20 €", htl.LocalTotals)
	require.Len(t, htl.Items, 2)
	assert.Equal(t, "Jour 1", htl.Items[0].Source)

	gde := types[1]
	assert.Equal(t, cotation.NatureGuide, gde.Nature)
	require.Len(t, gde.Items, 1)
	assert.Equal(t, "Transversal", gde.Items[0].Source)
}

func TestBuildTypeViewUnknownNatureLandsInDivers(t *testing.T) {
	res := sampleResults()
	res.PaxConfigs[0].Days[0].Formulas[0].Items = append(
		res.PaxConfigs[0].Days[0].Formulas[0].Items,
		domain.CotationItemDetail{
			ItemName: "Frais divers", Quantity: 1,
			UnitCostLocal: 15, SubtotalCostLocal: 15,
			ItemCurrency: "EUR", CostNatureCode: "???",
		},
	)

	view := cotation.BuildTypeView(res)

	require.Len(t, view.Configs, 1)
	types := view.Configs[0].Types
	last := types[len(types)-1]
	assert.Equal(t, cotation.NatureMisc, last.Nature)
	require.Len(t, last.Items, 1)
	assert.Equal(t, "Frais divers", last.Items[0].Name)
}
