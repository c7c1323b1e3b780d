package cotation_test

import (
	"fmt"
	"testing"

	"github.com/horizons-voyages/cotation-api/internal/cotation"
	"github.com/horizons-voyages/cotation-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paxWithItems(items ...domain.CotationItemDetail) domain.CotationPaxResult {
	return domain.CotationPaxResult{
		Label: "Budget",
		Days: []domain.CotationDayDetail{
			{
				DayID:     1,
				DayNumber: 1,
				Formulas:  []domain.CotationFormulaDetail{{Items: items}},
			},
		},
	}
}

func TestDetectAlertsCleanResultYieldsNoAlerts(t *testing.T) {
	res := &domain.CotationResults{
		Currency: "EUR",
		PaxConfigs: []domain.CotationPaxResult{
			paxWithItems(domain.CotationItemDetail{
				ItemName: "Hôtel Chiang Mai", Quantity: 2, UnitCostLocal: 1500,
				SubtotalCostLocal: 3000, ItemCurrency: "THB", SubtotalCost: 80,
			}),
		},
	}

	alerts := cotation.DetectAlerts(res)

	// No alert panel at all for a clean result
	assert.Empty(t, alerts)
}

func TestDetectAlertsPriorityOrdering(t *testing.T) {
	res := &domain.CotationResults{
		Currency:             "EUR",
		MissingExchangeRates: []string{"LAK"},
		Warnings: []string{
			"Palier mal configuré",
			"Item X exclu (option Y)",
		},
		PaxConfigs: []domain.CotationPaxResult{
			paxWithItems(domain.CotationItemDetail{
				ItemName: "Transfert aéroport", Quantity: 2, UnitCostLocal: 0,
			}),
		},
	}

	alerts := cotation.DetectAlerts(res)
	require.Len(t, alerts, 4)

	assert.Equal(t, cotation.SeverityError, alerts[0].Severity)
	assert.Equal(t, cotation.CategoryExchangeRate, alerts[0].Category)
	assert.Contains(t, alerts[0].Message, "LAK")
	assert.Contains(t, alerts[0].Message, "zéro")

	assert.Equal(t, cotation.SeverityWarning, alerts[1].Severity)
	assert.Equal(t, cotation.CategoryMissingPrice, alerts[1].Category)
	assert.Contains(t, alerts[1].Message, "Transfert aéroport")

	assert.Equal(t, cotation.SeverityWarning, alerts[2].Severity)
	assert.Equal(t, cotation.CategoryCalculation, alerts[2].Category)
	assert.Equal(t, "Palier mal configuré", alerts[2].Message)

	assert.Equal(t, cotation.SeverityInfo, alerts[3].Severity)
	assert.Equal(t, cotation.CategoryConditions, alerts[3].Category)
	assert.Contains(t, alerts[3].Message, "1 service(s)")

	// Only the first three are visible without expanding
	visible := cotation.VisibleAlerts(alerts)
	require.Len(t, visible, 3)
	for _, a := range visible {
		assert.NotEqual(t, cotation.SeverityInfo, a.Severity)
	}
}

func TestDetectAlertsZeroQuantity(t *testing.T) {
	res := &domain.CotationResults{
		Currency: "EUR",
		PaxConfigs: []domain.CotationPaxResult{
			paxWithItems(
				domain.CotationItemDetail{ItemName: "Guide francophone", Quantity: 0, UnitCostLocal: 50},
				domain.CotationItemDetail{ItemName: "Dîner khmer", Quantity: 4, UnitCostLocal: 12},
			),
		},
	}

	alerts := cotation.DetectAlerts(res)
	require.Len(t, alerts, 1)
	assert.Equal(t, cotation.CategoryZeroQuantity, alerts[0].Category)
	assert.Equal(t, cotation.SeverityWarning, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "Guide francophone")
	assert.NotContains(t, alerts[0].Message, "Dîner khmer")
}

func TestDetectAlertsZeroCostZeroQuantityItemFlaggedOnceOnly(t *testing.T) {
	// quantity == 0 with zero cost is a zero-quantity case, not a missing
	// price: the missing-price rule requires quantity > 0
	res := &domain.CotationResults{
		Currency: "EUR",
		PaxConfigs: []domain.CotationPaxResult{
			paxWithItems(domain.CotationItemDetail{ItemName: "Option annulée", Quantity: 0, UnitCostLocal: 0}),
		},
	}

	alerts := cotation.DetectAlerts(res)
	require.Len(t, alerts, 1)
	assert.Equal(t, cotation.CategoryZeroQuantity, alerts[0].Category)
}

func TestDetectAlertsTruncatesItemNames(t *testing.T) {
	items := make([]domain.CotationItemDetail, 8)
	for i := range items {
		items[i] = domain.CotationItemDetail{
			ItemName: fmt.Sprintf("Service %d", i+1),
			Quantity: 1,
		}
	}

	res := &domain.CotationResults{
		Currency:   "EUR",
		PaxConfigs: []domain.CotationPaxResult{paxWithItems(items...)},
	}

	alerts := cotation.DetectAlerts(res)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Message, "Service 5")
	assert.NotContains(t, alerts[0].Message, "Service 6")
	assert.Contains(t, alerts[0].Message, "+3 autres")
}

func TestDetectAlertsScansFirstPaxConfigOnly(t *testing.T) {
	// The pricing structure is identical across pax configs; scanning all
	// of them would flag every item once per config
	broken := paxWithItems(domain.CotationItemDetail{ItemName: "Croisière baie", Quantity: 2, UnitCostLocal: 0})
	res := &domain.CotationResults{
		Currency:   "EUR",
		PaxConfigs: []domain.CotationPaxResult{broken, broken, broken},
	}

	alerts := cotation.DetectAlerts(res)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Message, "Croisière baie")
	assert.NotContains(t, alerts[0].Message, "autres")
}

func TestDetectAlertsConditionExclusionsCollapseToOneInfo(t *testing.T) {
	res := &domain.CotationResults{
		Currency: "EUR",
		Warnings: []string{
			"Massage traditionnel exclu (option spa)",
			"Supplément single exclu (condition groupe)",
			"Vol intérieur exclu (option avion)",
		},
		PaxConfigs: []domain.CotationPaxResult{paxWithItems()},
	}

	alerts := cotation.DetectAlerts(res)
	require.Len(t, alerts, 1)
	assert.Equal(t, cotation.SeverityInfo, alerts[0].Severity)
	assert.Equal(t, cotation.CategoryConditions, alerts[0].Category)
	assert.Contains(t, alerts[0].Message, "3 service(s)")

	assert.Empty(t, cotation.VisibleAlerts(alerts))
}

func TestDetectAlertsTransversalItemsAreScanned(t *testing.T) {
	res := &domain.CotationResults{
		Currency: "EUR",
		PaxConfigs: []domain.CotationPaxResult{
			{
				Label: "Deluxe",
				TransversalFormulas: []domain.CotationFormulaDetail{
					{Items: []domain.CotationItemDetail{
						{ItemName: "Assurance voyage", Quantity: 4, UnitCostLocal: 0},
					}},
				},
			},
		},
	}

	alerts := cotation.DetectAlerts(res)
	require.Len(t, alerts, 1)
	assert.Equal(t, cotation.CategoryMissingPrice, alerts[0].Category)
	assert.Contains(t, alerts[0].Message, "Assurance voyage")
}

func TestCountBySeverity(t *testing.T) {
	alerts := []cotation.Alert{
		{Severity: cotation.SeverityError},
		{Severity: cotation.SeverityWarning},
		{Severity: cotation.SeverityWarning},
		{Severity: cotation.SeverityInfo},
	}

	errs, warns, infos := cotation.CountBySeverity(alerts)
	assert.Equal(t, 1, errs)
	assert.Equal(t, 2, warns)
	assert.Equal(t, 1, infos)
}
