// Package cotation renders pricing results computed by the pricing engine
// into display-ready breakdowns and alerts. Everything in this package is a
// pure function of a CotationResults snapshot: no I/O, no mutation, and
// re-running on the same input always yields the same output.
package cotation

// CostNature classifies a priced line by the kind of cost it covers
type CostNature string

const (
	NatureAccommodation CostNature = "HTL"
	NatureGuide         CostNature = "GDE"
	NatureTransport     CostNature = "TRS"
	NatureActivity      CostNature = "ACT"
	NatureRestaurant    CostNature = "RES"
	NatureMisc          CostNature = "MIS"
)

// NatureInfo holds the display attributes of a cost nature
type NatureInfo struct {
	Label      string `json:"label"`
	BadgeColor string `json:"badgeColor"`
	DotColor   string `json:"dotColor"`
}

var natureInfos = map[CostNature]NatureInfo{
	NatureAccommodation: {Label: "Hébergement", BadgeColor: "amber", DotColor: "amber"},
	NatureGuide:         {Label: "Guide", BadgeColor: "violet", DotColor: "violet"},
	NatureTransport:     {Label: "Transport", BadgeColor: "sky", DotColor: "sky"},
	NatureActivity:      {Label: "Activité", BadgeColor: "emerald", DotColor: "emerald"},
	NatureRestaurant:    {Label: "Restauration", BadgeColor: "rose", DotColor: "rose"},
	NatureMisc:          {Label: "Divers", BadgeColor: "slate", DotColor: "slate"},
}

// natureOrder fixes the presentation order of the by-type breakdown
var natureOrder = []CostNature{
	NatureAccommodation,
	NatureGuide,
	NatureTransport,
	NatureActivity,
	NatureRestaurant,
	NatureMisc,
}

// NatureOf maps an arbitrary cost nature code to one of the six known
// natures. Empty or unrecognized codes classify as NatureMisc so that a
// mistyped code is never dropped from the per-type breakdown.
func NatureOf(code string) CostNature {
	switch CostNature(code) {
	case NatureAccommodation, NatureGuide, NatureTransport, NatureActivity, NatureRestaurant, NatureMisc:
		return CostNature(code)
	default:
		return NatureMisc
	}
}

// Info returns the display attributes of the nature
func (n CostNature) Info() NatureInfo {
	if info, ok := natureInfos[n]; ok {
		return info
	}
	return natureInfos[NatureMisc]
}

// Natures returns the six cost natures in presentation order
func Natures() []CostNature {
	out := make([]CostNature, len(natureOrder))
	copy(out, natureOrder)
	return out
}
