package mapper_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/horizons-voyages/cotation-api/internal/domain"
	"github.com/horizons-voyages/cotation-api/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoredSnapshot() *domain.CotationSnapshot {
	received := time.Date(2025, 8, 14, 9, 30, 0, 0, time.UTC)
	return &domain.CotationSnapshot{
		BaseModel: domain.BaseModel{
			ID:        uuid.New(),
			CreatedAt: received,
			UpdatedAt: received,
		},
		TripRef:        "TRIP-2025-042",
		Label:          "Thaïlande nord - Budget",
		Currency:       "EUR",
		PaxConfigCount: 2,
		ErrorCount:     1,
		WarningCount:   2,
		InfoCount:      1,
		MissingRates:   []string{"THB"},
		Source:         domain.SnapshotSourcePush,
		ReceivedAt:     received,
	}
}

func TestToSnapshotDTO(t *testing.T) {
	snapshot := newStoredSnapshot()

	dto := mapper.ToSnapshotDTO(snapshot)

	assert.Equal(t, snapshot.ID, dto.ID)
	assert.Equal(t, "TRIP-2025-042", dto.TripRef)
	assert.Equal(t, "Thaïlande nord - Budget", dto.Label)
	assert.Equal(t, "EUR", dto.Currency)
	assert.Equal(t, 2, dto.PaxConfigCount)
	assert.Equal(t, 1, dto.ErrorCount)
	assert.Equal(t, 2, dto.WarningCount)
	assert.Equal(t, 1, dto.InfoCount)
	assert.Equal(t, []string{"THB"}, dto.MissingRates)
	assert.Equal(t, "push", dto.Source)
	assert.Equal(t, "2025-08-14T09:30:00Z", dto.ReceivedAt)
	assert.Equal(t, "2025-08-14T09:30:00Z", dto.CreatedAt)
}

func TestToSnapshotDetailDTO(t *testing.T) {
	snapshot := newStoredSnapshot()
	results := &domain.CotationResults{
		Currency: "EUR",
		PaxConfigs: []domain.CotationPaxResult{
			{Label: "Budget"},
		},
	}

	dto := mapper.ToSnapshotDetailDTO(snapshot, results)

	assert.Equal(t, snapshot.ID, dto.ID)
	require.Len(t, dto.Results.PaxConfigs, 1)
	assert.Equal(t, "Budget", dto.Results.PaxConfigs[0].Label)
}

func TestToSnapshotListDTO(t *testing.T) {
	first := newStoredSnapshot()
	second := newStoredSnapshot()
	second.TripRef = "TRIP-2025-043"

	dto := mapper.ToSnapshotListDTO([]domain.CotationSnapshot{*first, *second}, 12, 2, 2)

	assert.Equal(t, int64(12), dto.Total)
	assert.Equal(t, 2, dto.Page)
	assert.Equal(t, 2, dto.PageSize)
	require.Len(t, dto.Items, 2)
	assert.Equal(t, "TRIP-2025-042", dto.Items[0].TripRef)
	assert.Equal(t, "TRIP-2025-043", dto.Items[1].TripRef)
}
