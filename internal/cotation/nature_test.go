package cotation_test

import (
	"testing"

	"github.com/horizons-voyages/cotation-api/internal/cotation"
	"github.com/stretchr/testify/assert"
)

func TestNatureOf(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected cotation.CostNature
	}{
		{name: "accommodation", code: "HTL", expected: cotation.NatureAccommodation},
		{name: "guide", code: "GDE", expected: cotation.NatureGuide},
		{name: "transport", code: "TRS", expected: cotation.NatureTransport},
		{name: "activity", code: "ACT", expected: cotation.NatureActivity},
		{name: "restaurant", code: "RES", expected: cotation.NatureRestaurant},
		{name: "misc", code: "MIS", expected: cotation.NatureMisc},
		{name: "empty code falls back to misc", code: "", expected: cotation.NatureMisc},
		{name: "unknown code falls back to misc", code: "XYZ", expected: cotation.NatureMisc},
		{name: "lowercase is not a known code", code: "htl", expected: cotation.NatureMisc},
		{name: "typo falls back to misc", code: "HTLL", expected: cotation.NatureMisc},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, cotation.NatureOf(tc.code))
		})
	}
}

// Classification is total: any input resolves to one of the six known
// natures with display attributes
func TestNatureOfTotality(t *testing.T) {
	known := map[cotation.CostNature]bool{}
	for _, nature := range cotation.Natures() {
		known[nature] = true
	}
	assert.Len(t, known, 6)

	for _, code := range []string{"", "HTL", "GDE", "???", "null", "Divers", "mis", "HTL ", " HTL"} {
		nature := cotation.NatureOf(code)
		assert.True(t, known[nature], "NatureOf(%q) = %q is not a known nature", code, nature)

		info := nature.Info()
		assert.NotEmpty(t, info.Label)
		assert.NotEmpty(t, info.BadgeColor)
		assert.NotEmpty(t, info.DotColor)
	}
}

func TestNatureLabels(t *testing.T) {
	expected := map[cotation.CostNature]string{
		cotation.NatureAccommodation: "Hébergement",
		cotation.NatureGuide:         "Guide",
		cotation.NatureTransport:     "Transport",
		cotation.NatureActivity:      "Activité",
		cotation.NatureRestaurant:    "Restauration",
		cotation.NatureMisc:          "Divers",
	}

	for nature, label := range expected {
		assert.Equal(t, label, nature.Info().Label)
	}
}
