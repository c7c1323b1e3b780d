package mapper

import (
	"github.com/horizons-voyages/cotation-api/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05Z"

// ToSnapshotDTO converts a stored snapshot to its list representation
func ToSnapshotDTO(snapshot *domain.CotationSnapshot) domain.SnapshotDTO {
	return domain.SnapshotDTO{
		ID:             snapshot.ID,
		TripRef:        snapshot.TripRef,
		Label:          snapshot.Label,
		Currency:       snapshot.Currency,
		PaxConfigCount: snapshot.PaxConfigCount,
		ErrorCount:     snapshot.ErrorCount,
		WarningCount:   snapshot.WarningCount,
		InfoCount:      snapshot.InfoCount,
		MissingRates:   snapshot.MissingRates,
		Source:         string(snapshot.Source),
		ReceivedAt:     snapshot.ReceivedAt.Format(timeFormat),
		CreatedAt:      snapshot.CreatedAt.Format(timeFormat),
	}
}

// ToSnapshotDetailDTO converts a snapshot plus its decoded payload to the
// detail representation
func ToSnapshotDetailDTO(snapshot *domain.CotationSnapshot, results *domain.CotationResults) domain.SnapshotDetailDTO {
	return domain.SnapshotDetailDTO{
		SnapshotDTO: ToSnapshotDTO(snapshot),
		Results:     *results,
	}
}

// ToSnapshotListDTO converts a page of snapshots to the list representation
func ToSnapshotListDTO(snapshots []domain.CotationSnapshot, total int64, page, pageSize int) domain.SnapshotListDTO {
	items := make([]domain.SnapshotDTO, len(snapshots))
	for i := range snapshots {
		items[i] = ToSnapshotDTO(&snapshots[i])
	}
	return domain.SnapshotListDTO{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
