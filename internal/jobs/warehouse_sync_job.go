package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/horizons-voyages/cotation-api/internal/service"
	"go.uber.org/zap"
)

// WarehouseSyncJobName is the name of the pricing warehouse sync job
const WarehouseSyncJobName = "warehouse_sync"

// RunSyncService defines the interface for importing cotation runs from the
// pricing warehouse. The job calls the service without importing its
// concrete wiring.
type RunSyncService interface {
	// SyncRuns imports one batch of warehouse runs newer than the watermark.
	// Returns counts for imported, already-known and undecodable runs.
	SyncRuns(ctx context.Context) (imported, skipped, failed int, err error)
}

// WarehouseSyncJob periodically imports cotation runs the API never received
// as a push.
type WarehouseSyncJob struct {
	syncService RunSyncService
	logger      *zap.Logger
	timeout     time.Duration
}

// NewWarehouseSyncJob creates a new warehouse sync job.
// The timeout controls how long one sync pass is allowed to run.
func NewWarehouseSyncJob(syncService RunSyncService, logger *zap.Logger, timeout time.Duration) *WarehouseSyncJob {
	return &WarehouseSyncJob{
		syncService: syncService,
		logger:      logger,
		timeout:     timeout,
	}
}

// Run executes one sync pass.
// This is called by the scheduler according to the cron expression.
func (j *WarehouseSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting pricing warehouse sync job")

	imported, skipped, failed, err := j.syncService.SyncRuns(ctx)
	if err != nil {
		if errors.Is(err, service.ErrWarehouseDisabled) {
			j.logger.Debug("pricing warehouse disabled, skipping sync")
			return
		}
		j.logger.Error("pricing warehouse sync failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("pricing warehouse sync job completed",
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)))
}

// RegisterWarehouseSyncJob registers the warehouse sync job with the scheduler.
// If runStartupSync is true, one sync pass runs immediately in a background
// goroutine so it doesn't block API startup.
func RegisterWarehouseSyncJob(scheduler *Scheduler, syncService RunSyncService, logger *zap.Logger, cronExpr string, timeout time.Duration, runStartupSync bool) error {
	job := NewWarehouseSyncJob(syncService, logger, timeout)

	if runStartupSync {
		go job.Run()
	}

	return scheduler.AddJob(WarehouseSyncJobName, cronExpr, job.Run)
}
