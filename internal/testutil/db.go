package testutil

import (
	"fmt"
	"testing"

	"github.com/horizons-voyages/cotation-api/internal/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory SQLite database with the schema migrated.
// Each test gets its own database, named after the test so parallel tests
// do not share state.
func SetupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	err = db.AutoMigrate(&domain.CotationSnapshot{})
	require.NoError(t, err, "Failed to migrate test schema")

	return db
}

// NewPricingResults builds a small but complete pricing result: one pax
// configuration with one day, a transversal formula and items in two
// currencies.
func NewPricingResults() *domain.CotationResults {
	return &domain.CotationResults{
		Currency: "EUR",
		PaxConfigs: []domain.CotationPaxResult{
			{
				Label:          "Budget",
				ArgsLabel:      "4 pax",
				MarginDefault:  20,
				MarginPct:      25.9,
				TotalCost:      1250,
				TotalPrice:     1687.5,
				TotalProfit:    437.5,
				CostPerPerson:  312.5,
				PricePerPerson: 421.88,
				Days: []domain.CotationDayDetail{
					{
						DayID:     101,
						DayNumber: 1,
						TotalCost: 950,
						Formulas: []domain.CotationFormulaDetail{
							{
								TotalCost: 950,
								Items: []domain.CotationItemDetail{
									{
										ItemID:            1,
										ItemName:          "Hôtel Riverside",
										Quantity:          2,
										UnitCostLocal:     9000,
										SubtotalCostLocal: 18000,
										ItemCurrency:      "THB",
										SubtotalCost:      450,
										CostNatureCode:    "HTL",
									},
									{
										ItemID:            2,
										ItemName:          "Guide francophone",
										Quantity:          1,
										UnitCostLocal:     500,
										SubtotalCostLocal: 500,
										ItemCurrency:      "EUR",
										SubtotalCost:      500,
										CostNatureCode:    "GDE",
									},
								},
							},
						},
					},
				},
				TransversalFormulas: []domain.CotationFormulaDetail{
					{
						TotalCost: 300,
						Items: []domain.CotationItemDetail{
							{
								ItemID:            3,
								ItemName:          "Assurance groupe",
								Quantity:          4,
								UnitCostLocal:     75,
								SubtotalCostLocal: 300,
								ItemCurrency:      "EUR",
								SubtotalCost:      300,
								CostNatureCode:    "MIS",
							},
						},
					},
				},
			},
		},
	}
}
