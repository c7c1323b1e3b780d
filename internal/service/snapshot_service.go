package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/horizons-voyages/cotation-api/internal/cotation"
	"github.com/horizons-voyages/cotation-api/internal/domain"
	"github.com/horizons-voyages/cotation-api/internal/repository"
	"github.com/horizons-voyages/cotation-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SnapshotService manages stored cotation snapshots: ingest from the pricing
// engine, listing, deletion and retention purges.
type SnapshotService struct {
	repo     *repository.SnapshotRepository
	archive  storage.Archive
	validate *validator.Validate
	logger   *zap.Logger
}

func NewSnapshotService(repo *repository.SnapshotRepository, archive storage.Archive, logger *zap.Logger) *SnapshotService {
	return &SnapshotService{
		repo:     repo,
		archive:  archive,
		validate: validator.New(),
		logger:   logger,
	}
}

// Ingest validates and stores one pricing result pushed by the engine.
// Alert counts and a few listing columns are denormalized from the payload;
// the payload itself stays the source of truth.
func (s *SnapshotService) Ingest(ctx context.Context, req *domain.IngestSnapshotRequest, source domain.SnapshotSource, warehouseRunRef *string) (*domain.CotationSnapshot, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	if len(req.Results.PaxConfigs) == 0 {
		return nil, fmt.Errorf("%w: results.pax_configs must not be empty", ErrInvalidInput)
	}

	results := req.Results
	if results.Currency == "" {
		results.Currency = cotation.DefaultCurrency
	}

	payload, err := json.Marshal(&results)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal results: %w", err)
	}

	alerts := cotation.DetectAlerts(&results)
	errCount, warnCount, infoCount := cotation.CountBySeverity(alerts)

	snapshot := &domain.CotationSnapshot{
		TripRef:         req.TripRef,
		Label:           req.Label,
		Currency:        results.Currency,
		Payload:         payload,
		PaxConfigCount:  len(results.PaxConfigs),
		ErrorCount:      errCount,
		WarningCount:    warnCount,
		InfoCount:       infoCount,
		MissingRates:    results.MissingExchangeRates,
		Source:          source,
		WarehouseRunRef: warehouseRunRef,
		ReceivedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}

	s.logger.Info("cotation snapshot stored",
		zap.String("snapshot_id", snapshot.ID.String()),
		zap.String("trip_ref", snapshot.TripRef),
		zap.String("source", string(source)),
		zap.Int("pax_configs", snapshot.PaxConfigCount),
		zap.Int("errors", errCount),
		zap.Int("warnings", warnCount),
	)

	return snapshot, nil
}

func (s *SnapshotService) GetByID(ctx context.Context, id uuid.UUID) (*domain.CotationSnapshot, error) {
	snapshot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return snapshot, nil
}

// GetResults loads a snapshot and decodes its pricing payload
func (s *SnapshotService) GetResults(ctx context.Context, id uuid.UUID) (*domain.CotationSnapshot, *domain.CotationResults, error) {
	snapshot, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	results, err := decodeResults(snapshot.Payload)
	if err != nil {
		s.logger.Error("stored snapshot payload does not decode",
			zap.String("snapshot_id", id.String()),
			zap.Error(err),
		)
		return nil, nil, err
	}

	return snapshot, results, nil
}

// GetLatestByTripRef returns the newest snapshot of a trip
func (s *SnapshotService) GetLatestByTripRef(ctx context.Context, tripRef string) (*domain.CotationSnapshot, error) {
	snapshot, err := s.repo.GetLatestByTripRef(ctx, tripRef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return snapshot, nil
}

func (s *SnapshotService) List(ctx context.Context, filter repository.SnapshotFilter, page, pageSize int) ([]domain.CotationSnapshot, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.repo.List(ctx, filter, page, pageSize)
}

func (s *SnapshotService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("cotation snapshot deleted", zap.String("snapshot_id", id.String()))
	return nil
}

// ExistsByWarehouseRunRef reports whether a warehouse run was already imported
func (s *SnapshotService) ExistsByWarehouseRunRef(ctx context.Context, runRef string) (bool, error) {
	return s.repo.ExistsByWarehouseRunRef(ctx, runRef)
}

// LatestWarehouseImportTime returns the sync job's watermark
func (s *SnapshotService) LatestWarehouseImportTime(ctx context.Context) (time.Time, error) {
	return s.repo.LatestWarehouseImportTime(ctx)
}

// PurgeOlderThan archives (when requested) and deletes snapshots received
// before the cutoff, in batches. Returns how many snapshots were purged.
func (s *SnapshotService) PurgeOlderThan(ctx context.Context, maxAge time.Duration, archiveFirst bool, batchSize int) (int, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	purged := 0

	for {
		batch, err := s.repo.ListOlderThan(ctx, cutoff, batchSize)
		if err != nil {
			return purged, fmt.Errorf("failed to list expired snapshots: %w", err)
		}
		if len(batch) == 0 {
			return purged, nil
		}

		progress := 0
		for i := range batch {
			snapshot := &batch[i]

			if archiveFirst && s.archive != nil && snapshot.ArchivedAt == nil {
				path := archivePath(snapshot)
				if _, err := s.archive.Store(ctx, path, "application/json", bytes.NewReader(snapshot.Payload)); err != nil {
					// Keep the snapshot; the next run retries the archive
					s.logger.Error("failed to archive snapshot, skipping purge",
						zap.String("snapshot_id", snapshot.ID.String()),
						zap.Error(err),
					)
					continue
				}
				if err := s.repo.MarkArchived(ctx, snapshot.ID, path); err != nil {
					return purged, fmt.Errorf("failed to mark snapshot archived: %w", err)
				}
			}

			if err := s.repo.Delete(ctx, snapshot.ID); err != nil {
				return purged, fmt.Errorf("failed to delete snapshot: %w", err)
			}
			purged++
			progress++
		}

		// No progress means every row in the batch failed to archive;
		// stop instead of listing the same rows again
		if len(batch) < batchSize || progress == 0 {
			return purged, nil
		}
	}
}

func archivePath(snapshot *domain.CotationSnapshot) string {
	return fmt.Sprintf("%s/%s/%s.json",
		snapshot.ReceivedAt.UTC().Format("2006/01"),
		snapshot.TripRef,
		snapshot.ID.String(),
	)
}

func decodeResults(payload []byte) (*domain.CotationResults, error) {
	var results domain.CotationResults
	if err := json.Unmarshal(payload, &results); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, err.Error())
	}
	return &results, nil
}
