package cotation

import (
	"fmt"

	"github.com/horizons-voyages/cotation-api/internal/domain"
)

// Display precision: summary tables show whole units, per-item tables keep
// cents
const (
	summaryDecimals = 0
	detailDecimals  = 2
)

// NoResultsPlaceholder is rendered when a pricing run produced no pax
// configuration at all
const NoResultsPlaceholder = "Aucun résultat de cotation"

// SummaryView is the per-configuration roll-up: headline figures plus one
// line per group (transversal services first, then each day)
type SummaryView struct {
	Currency    string          `json:"currency"`
	Configs     []ConfigSummary `json:"configs"`
	Alerts      []Alert         `json:"alerts"`
	Empty       bool            `json:"empty"`
	Placeholder string          `json:"placeholder,omitempty"`
}

// ConfigSummary is the summary of one pax configuration
type ConfigSummary struct {
	Label          string `json:"label"`
	ArgsLabel      string `json:"argsLabel"`
	TotalCost      string `json:"totalCost"`
	TotalPrice     string `json:"totalPrice"`
	TotalProfit    string `json:"totalProfit"`
	CostPerPerson  string `json:"costPerPerson"`
	PricePerPerson string `json:"pricePerPerson"`
	MarginPct      string `json:"marginPct"`
	// Groups lists the transversal block first, then days ascending
	Groups []GroupSummary `json:"groups"`
}

// GroupSummary is one summary line: the transversal services or one day
type GroupSummary struct {
	Label       string `json:"label"`
	Transversal bool   `json:"transversal"`
	DayNumber   int    `json:"dayNumber,omitempty"`
	// Total is the engine's group total in the selling currency; the
	// transversal block sums its formula totals
	Total string `json:"total"`
	// LocalTotals aggregates the group's items per local currency
	LocalTotals string `json:"localTotals"`
	ItemCount   int    `json:"itemCount"`
}

// DayView is the "by day" breakdown: every item of every day, per
// configuration
type DayView struct {
	Currency    string       `json:"currency"`
	Configs     []ConfigDays `json:"configs"`
	Empty       bool         `json:"empty"`
	Placeholder string       `json:"placeholder,omitempty"`
}

// ConfigDays holds the day tables of one pax configuration
type ConfigDays struct {
	Label     string     `json:"label"`
	ArgsLabel string     `json:"argsLabel"`
	Days      []DayTable `json:"days"`
}

// DayTable is one day's item table
type DayTable struct {
	DayNumber int    `json:"dayNumber"`
	Label     string `json:"label"`
	// Total is the engine-supplied day total in the selling currency
	Total       string    `json:"total"`
	LocalTotals string    `json:"localTotals"`
	Items       []ItemRow `json:"items"`
}

// TypeView is the "by type" breakdown: items grouped by cost nature across
// all days and transversal formulas
type TypeView struct {
	Currency    string        `json:"currency"`
	Configs     []ConfigTypes `json:"configs"`
	Empty       bool          `json:"empty"`
	Placeholder string        `json:"placeholder,omitempty"`
}

// ConfigTypes holds the nature tables of one pax configuration
type ConfigTypes struct {
	Label     string      `json:"label"`
	ArgsLabel string      `json:"argsLabel"`
	Types     []TypeTable `json:"types"`
}

// TypeTable is the item table of one cost nature; empty natures are omitted
type TypeTable struct {
	Nature      CostNature `json:"nature"`
	Label       string     `json:"label"`
	DotColor    string     `json:"dotColor"`
	LocalTotals string     `json:"localTotals"`
	Items       []ItemRow  `json:"items"`
}

// ItemRow is one display-ready priced line
type ItemRow struct {
	Name        string     `json:"name"`
	Nature      CostNature `json:"nature"`
	NatureLabel string     `json:"natureLabel"`
	BadgeColor  string     `json:"badgeColor"`
	Quantity    int        `json:"quantity"`
	UnitCost    string     `json:"unitCost"`
	Subtotal    string     `json:"subtotal"`
	Currency    string     `json:"currency"`
	// Converted is the subtotal in the selling currency, or an em-dash when
	// the item is already priced in the selling currency
	Converted string `json:"converted"`
	// Source marks where the item comes from in the by-type view:
	// "Transversal" or "Jour N"
	Source string `json:"source,omitempty"`
}

// BuildSummaryView renders the summary view of a pricing result
func BuildSummaryView(res *domain.CotationResults) SummaryView {
	view := SummaryView{
		Currency: sellingCurrency(res),
		Alerts:   DetectAlerts(res),
	}
	if len(res.PaxConfigs) == 0 {
		view.Empty = true
		view.Placeholder = NoResultsPlaceholder
		return view
	}

	for i := range res.PaxConfigs {
		pax := &res.PaxConfigs[i]
		cfg := ConfigSummary{
			Label:          pax.Label,
			ArgsLabel:      pax.ArgsLabel,
			TotalCost:      FormatMoney(pax.TotalCost, view.Currency, summaryDecimals),
			TotalPrice:     FormatMoney(pax.TotalPrice, view.Currency, summaryDecimals),
			TotalProfit:    FormatMoney(pax.TotalProfit, view.Currency, summaryDecimals),
			CostPerPerson:  FormatMoney(pax.CostPerPerson, view.Currency, summaryDecimals),
			PricePerPerson: FormatMoney(pax.PricePerPerson, view.Currency, summaryDecimals),
			MarginPct:      FormatAmount(pax.MarginPct, 1) + " %",
		}

		if transversal := collectTransversalItems(pax); len(transversal) > 0 {
			total := 0.0
			for _, formula := range pax.TransversalFormulas {
				total += formula.TotalCost
			}
			cfg.Groups = append(cfg.Groups, GroupSummary{
				Label:       "Services transversaux",
				Transversal: true,
				Total:       FormatMoney(total, view.Currency, summaryDecimals),
				LocalTotals: FormatCurrencyTotals(AggregateCurrencies(transversal), summaryDecimals),
				ItemCount:   len(transversal),
			})
		}

		for _, day := range DayBreakdowns(pax) {
			cfg.Groups = append(cfg.Groups, GroupSummary{
				Label:       fmt.Sprintf("Jour %d", day.DayNumber),
				DayNumber:   day.DayNumber,
				Total:       FormatMoney(day.TotalCost, view.Currency, summaryDecimals),
				LocalTotals: FormatCurrencyTotals(AggregateCurrencies(day.Items), summaryDecimals),
				ItemCount:   len(day.Items),
			})
		}

		view.Configs = append(view.Configs, cfg)
	}

	return view
}

// BuildDayView renders the "by day" view of a pricing result
func BuildDayView(res *domain.CotationResults) DayView {
	view := DayView{Currency: sellingCurrency(res)}
	if len(res.PaxConfigs) == 0 {
		view.Empty = true
		view.Placeholder = NoResultsPlaceholder
		return view
	}

	for i := range res.PaxConfigs {
		pax := &res.PaxConfigs[i]
		cfg := ConfigDays{Label: pax.Label, ArgsLabel: pax.ArgsLabel}

		for _, day := range DayBreakdowns(pax) {
			table := DayTable{
				DayNumber:   day.DayNumber,
				Label:       fmt.Sprintf("Jour %d", day.DayNumber),
				Total:       FormatMoney(day.TotalCost, view.Currency, summaryDecimals),
				LocalTotals: FormatCurrencyTotals(AggregateCurrencies(day.Items), summaryDecimals),
			}
			for _, item := range day.Items {
				table.Items = append(table.Items, buildItemRow(item, view.Currency, ""))
			}
			cfg.Days = append(cfg.Days, table)
		}

		view.Configs = append(view.Configs, cfg)
	}

	return view
}

// BuildTypeView renders the "by type" view of a pricing result
func BuildTypeView(res *domain.CotationResults) TypeView {
	view := TypeView{Currency: sellingCurrency(res)}
	if len(res.PaxConfigs) == 0 {
		view.Empty = true
		view.Placeholder = NoResultsPlaceholder
		return view
	}

	for i := range res.PaxConfigs {
		pax := &res.PaxConfigs[i]
		cfg := ConfigTypes{Label: pax.Label, ArgsLabel: pax.ArgsLabel}

		for _, group := range NatureGroups(pax) {
			if group.IsEmpty() {
				continue
			}
			info := group.Nature.Info()
			items := group.Items()

			plain := make([]domain.CotationItemDetail, len(items))
			for j, item := range items {
				plain[j] = item.CotationItemDetail
			}

			table := TypeTable{
				Nature:      group.Nature,
				Label:       info.Label,
				DotColor:    info.DotColor,
				LocalTotals: FormatCurrencyTotals(AggregateCurrencies(plain), summaryDecimals),
			}
			for _, item := range items {
				source := "Transversal"
				if !item.Transversal {
					source = fmt.Sprintf("Jour %d", item.DayNumber)
				}
				table.Items = append(table.Items, buildItemRow(item.CotationItemDetail, view.Currency, source))
			}
			cfg.Types = append(cfg.Types, table)
		}

		view.Configs = append(view.Configs, cfg)
	}

	return view
}

func buildItemRow(item domain.CotationItemDetail, sellingCur, source string) ItemRow {
	nature := NatureOf(item.CostNatureCode)
	info := nature.Info()

	itemCur := item.ItemCurrency
	if itemCur == "" {
		itemCur = DefaultCurrency
	}

	// The converted column is redundant when the item is already priced in
	// the selling currency
	converted := EmDash
	if itemCur != sellingCur {
		converted = FormatMoney(item.SubtotalCost, sellingCur, detailDecimals)
	}

	return ItemRow{
		Name:        item.ItemName,
		Nature:      nature,
		NatureLabel: info.Label,
		BadgeColor:  info.BadgeColor,
		Quantity:    item.Quantity,
		UnitCost:    FormatMoney(item.UnitCostLocal, itemCur, detailDecimals),
		Subtotal:    FormatMoney(item.SubtotalCostLocal, itemCur, detailDecimals),
		Currency:    itemCur,
		Converted:   converted,
		Source:      source,
	}
}

func sellingCurrency(res *domain.CotationResults) string {
	if res.Currency == "" {
		return DefaultCurrency
	}
	return res.Currency
}
