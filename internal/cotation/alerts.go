package cotation

import (
	"fmt"
	"strings"

	"github.com/horizons-voyages/cotation-api/internal/domain"
)

// AlertSeverity ranks an alert: errors always surface, warnings always
// surface, info alerts are collapsed by default in the presentation
type AlertSeverity string

const (
	SeverityError   AlertSeverity = "error"
	SeverityWarning AlertSeverity = "warning"
	SeverityInfo    AlertSeverity = "info"
)

// Alert categories
const (
	CategoryExchangeRate = "Taux de change"
	CategoryMissingPrice = "Tarif manquant"
	CategoryZeroQuantity = "Quantité nulle"
	CategoryCalculation  = "Calcul"
	CategoryConditions   = "Conditions"
)

// Alert is one anomaly derived from a pricing result
type Alert struct {
	Severity AlertSeverity `json:"severity"`
	Category string        `json:"category"`
	Message  string        `json:"message"`
}

// maxNamedItems caps how many item names an alert message lists before
// switching to a "+N autres" suffix
const maxNamedItems = 5

// Engine warnings carrying these markers are expected condition/option
// exclusions, not calculation problems
var exclusionMarkers = []string{"exclu (option", "exclu (condition"}

// DetectAlerts scans a pricing result and returns its alerts ordered
// errors first, then warnings, then infos.
//
// Item-level rules scan the first pax configuration only: the service and
// pricing structure is identical across configurations, so the same items
// would be flagged once per configuration otherwise.
func DetectAlerts(res *domain.CotationResults) []Alert {
	var errs, warnings, infos []Alert

	if len(res.MissingExchangeRates) > 0 {
		errs = append(errs, Alert{
			Severity: SeverityError,
			Category: CategoryExchangeRate,
			Message: fmt.Sprintf("Taux de change manquant pour : %s. Les coûts dans ces devises sont comptés à zéro.",
				strings.Join(res.MissingExchangeRates, ", ")),
		})
	}

	if len(res.PaxConfigs) > 0 {
		items := AllItems(&res.PaxConfigs[0])

		var missingPrice, zeroQty []string
		for _, item := range items {
			if item.UnitCostLocal == 0 && item.Quantity > 0 {
				missingPrice = append(missingPrice, item.ItemName)
			}
			if item.Quantity == 0 {
				zeroQty = append(zeroQty, item.ItemName)
			}
		}

		if len(missingPrice) > 0 {
			warnings = append(warnings, Alert{
				Severity: SeverityWarning,
				Category: CategoryMissingPrice,
				Message:  "Tarif à zéro pour : " + truncateNames(missingPrice),
			})
		}
		if len(zeroQty) > 0 {
			warnings = append(warnings, Alert{
				Severity: SeverityWarning,
				Category: CategoryZeroQuantity,
				Message:  "Quantité nulle pour : " + truncateNames(zeroQty),
			})
		}
	}

	exclusions := 0
	for _, warning := range res.Warnings {
		if isExclusionWarning(warning) {
			exclusions++
			continue
		}
		warnings = append(warnings, Alert{
			Severity: SeverityWarning,
			Category: CategoryCalculation,
			Message:  warning,
		})
	}
	if exclusions > 0 {
		infos = append(infos, Alert{
			Severity: SeverityInfo,
			Category: CategoryConditions,
			Message:  fmt.Sprintf("%d service(s) exclu(s) par les conditions ou options du voyage.", exclusions),
		})
	}

	out := make([]Alert, 0, len(errs)+len(warnings)+len(infos))
	out = append(out, errs...)
	out = append(out, warnings...)
	out = append(out, infos...)
	return out
}

// VisibleAlerts filters to the alerts shown without expansion: errors and
// warnings. Info alerts sit behind a "show N more" affordance.
func VisibleAlerts(alerts []Alert) []Alert {
	var out []Alert
	for _, a := range alerts {
		if a.Severity != SeverityInfo {
			out = append(out, a)
		}
	}
	return out
}

// CountBySeverity tallies alerts per severity
func CountBySeverity(alerts []Alert) (errors, warnings, infos int) {
	for _, a := range alerts {
		switch a.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		}
	}
	return errors, warnings, infos
}

func isExclusionWarning(warning string) bool {
	for _, marker := range exclusionMarkers {
		if strings.Contains(warning, marker) {
			return true
		}
	}
	return false
}

func truncateNames(names []string) string {
	if len(names) <= maxNamedItems {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s +%d autres", strings.Join(names[:maxNamedItems], ", "), len(names)-maxNamedItems)
}
