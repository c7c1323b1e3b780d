package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/horizons-voyages/cotation-api/internal/domain"
	"github.com/horizons-voyages/cotation-api/internal/pricingwarehouse"
	"go.uber.org/zap"
)

// WarehouseSyncService imports cotation runs from the pricing warehouse that
// never reached this API as a push, e.g. runs computed while the API was
// down. Runs are deduplicated on their warehouse reference.
type WarehouseSyncService struct {
	warehouse *pricingwarehouse.Client
	snapshots *SnapshotService
	batchSize int
	logger    *zap.Logger
}

func NewWarehouseSyncService(warehouse *pricingwarehouse.Client, snapshots *SnapshotService, batchSize int, logger *zap.Logger) *WarehouseSyncService {
	if batchSize < 1 {
		batchSize = 50
	}
	return &WarehouseSyncService{
		warehouse: warehouse,
		snapshots: snapshots,
		batchSize: batchSize,
		logger:    logger,
	}
}

// SyncRuns imports one batch of warehouse runs newer than the watermark.
// Returns counts for imported, already-known and undecodable runs.
func (s *WarehouseSyncService) SyncRuns(ctx context.Context) (imported, skipped, failed int, err error) {
	if !s.warehouse.IsEnabled() {
		return 0, 0, 0, ErrWarehouseDisabled
	}

	since, err := s.snapshots.LatestWarehouseImportTime(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	if since.IsZero() {
		// First sync: only pick up recent runs, the backlog is unbounded
		since = time.Now().UTC().Add(-30 * 24 * time.Hour)
	}

	runs, err := s.warehouse.ListRunsSince(ctx, since, s.batchSize)
	if err != nil {
		return 0, 0, 0, err
	}

	for i := range runs {
		run := &runs[i]

		exists, err := s.snapshots.ExistsByWarehouseRunRef(ctx, run.RunRef)
		if err != nil {
			return imported, skipped, failed, err
		}
		if exists {
			skipped++
			continue
		}

		var results domain.CotationResults
		if err := json.Unmarshal(run.Results, &results); err != nil {
			s.logger.Warn("warehouse run payload does not decode, skipping",
				zap.String("run_ref", run.RunRef),
				zap.String("trip_ref", run.TripRef),
				zap.Error(err),
			)
			failed++
			continue
		}

		label := run.Label
		if label == "" {
			label = run.TripRef
		}

		req := &domain.IngestSnapshotRequest{
			TripRef: run.TripRef,
			Label:   label,
			Results: results,
		}
		runRef := run.RunRef
		if _, err := s.snapshots.Ingest(ctx, req, domain.SnapshotSourceWarehouse, &runRef); err != nil {
			s.logger.Warn("failed to import warehouse run",
				zap.String("run_ref", run.RunRef),
				zap.String("trip_ref", run.TripRef),
				zap.Error(err),
			)
			failed++
			continue
		}
		imported++
	}

	return imported, skipped, failed, nil
}
