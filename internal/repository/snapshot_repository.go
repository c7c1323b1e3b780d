package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/horizons-voyages/cotation-api/internal/domain"
	"gorm.io/gorm"
)

// SnapshotFilter narrows snapshot listings
type SnapshotFilter struct {
	TripRef string
	Source  domain.SnapshotSource
	// WithAlerts keeps only snapshots with at least one error or warning
	WithAlerts bool
}

type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Create(ctx context.Context, snapshot *domain.CotationSnapshot) error {
	return r.db.WithContext(ctx).Create(snapshot).Error
}

func (r *SnapshotRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CotationSnapshot, error) {
	var snapshot domain.CotationSnapshot
	err := r.db.WithContext(ctx).First(&snapshot, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetLatestByTripRef returns the most recently received snapshot for a trip
func (r *SnapshotRepository) GetLatestByTripRef(ctx context.Context, tripRef string) (*domain.CotationSnapshot, error) {
	var snapshot domain.CotationSnapshot
	err := r.db.WithContext(ctx).
		Where("trip_ref = ?", tripRef).
		Order("received_at DESC").
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *SnapshotRepository) List(ctx context.Context, filter SnapshotFilter, page, pageSize int) ([]domain.CotationSnapshot, int64, error) {
	var snapshots []domain.CotationSnapshot
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.CotationSnapshot{})

	if filter.TripRef != "" {
		query = query.Where("trip_ref = ?", filter.TripRef)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if filter.WithAlerts {
		query = query.Where("(error_count > 0 OR warning_count > 0)")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("received_at DESC").Find(&snapshots).Error

	return snapshots, total, err
}

func (r *SnapshotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CotationSnapshot{}, "id = ?", id).Error
}

// ListOlderThan returns snapshots received before the cutoff, oldest first,
// up to limit rows. The retention job processes them in batches.
func (r *SnapshotRepository) ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]domain.CotationSnapshot, error) {
	var snapshots []domain.CotationSnapshot
	err := r.db.WithContext(ctx).
		Where("received_at < ?", cutoff).
		Order("received_at ASC").
		Limit(limit).
		Find(&snapshots).Error
	return snapshots, err
}

// MarkArchived records the archive location before the snapshot is purged
func (r *SnapshotRepository) MarkArchived(ctx context.Context, id uuid.UUID, archivePath string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&domain.CotationSnapshot{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"archived_at":  now,
			"archive_path": archivePath,
		}).Error
}

// ExistsByWarehouseRunRef reports whether a warehouse run was already imported
func (r *SnapshotRepository) ExistsByWarehouseRunRef(ctx context.Context, runRef string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CotationSnapshot{}).
		Where("warehouse_run_ref = ?", runRef).
		Count(&count).Error
	return count > 0, err
}

// LatestWarehouseImportTime returns the computed-at watermark for the sync
// job: the received time of the newest warehouse-imported snapshot. Returns
// the zero time when nothing was imported yet.
func (r *SnapshotRepository) LatestWarehouseImportTime(ctx context.Context) (time.Time, error) {
	var snapshot domain.CotationSnapshot
	err := r.db.WithContext(ctx).
		Where("source = ?", domain.SnapshotSourceWarehouse).
		Order("received_at DESC").
		First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return snapshot.ReceivedAt, nil
}

// CountByTripRef returns how many snapshots exist for a trip
func (r *SnapshotRepository) CountByTripRef(ctx context.Context, tripRef string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.CotationSnapshot{}).
		Where("trip_ref = ?", tripRef).
		Count(&count).Error
	return count, err
}
