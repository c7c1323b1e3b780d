package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PurgeJobName is the name of the snapshot retention purge job
const PurgeJobName = "snapshot_purge"

// purgeBatchSize is how many snapshots one purge pass processes per query
const purgeBatchSize = 100

// SnapshotPurger defines the interface for purging expired snapshots.
type SnapshotPurger interface {
	// PurgeOlderThan archives (when requested) and deletes snapshots received
	// before the cutoff. Returns how many snapshots were purged.
	PurgeOlderThan(ctx context.Context, maxAge time.Duration, archiveFirst bool, batchSize int) (int, error)
}

// PurgeJob deletes cotation snapshots past the retention window, optionally
// archiving their payload first.
type PurgeJob struct {
	purger       SnapshotPurger
	maxAge       time.Duration
	archiveFirst bool
	logger       *zap.Logger
	timeout      time.Duration
}

// NewPurgeJob creates a new retention purge job.
func NewPurgeJob(purger SnapshotPurger, maxAge time.Duration, archiveFirst bool, logger *zap.Logger, timeout time.Duration) *PurgeJob {
	return &PurgeJob{
		purger:       purger,
		maxAge:       maxAge,
		archiveFirst: archiveFirst,
		logger:       logger,
		timeout:      timeout,
	}
}

// Run executes one purge pass.
func (j *PurgeJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting snapshot retention purge",
		zap.Duration("max_age", j.maxAge),
		zap.Bool("archive_first", j.archiveFirst))

	purged, err := j.purger.PurgeOlderThan(ctx, j.maxAge, j.archiveFirst, purgeBatchSize)
	if err != nil {
		j.logger.Error("snapshot purge failed",
			zap.Error(err),
			zap.Int("purged_before_failure", purged),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("snapshot retention purge completed",
		zap.Int("purged", purged),
		zap.Duration("duration", time.Since(start)))
}

// RegisterPurgeJob registers the retention purge job with the scheduler.
func RegisterPurgeJob(scheduler *Scheduler, purger SnapshotPurger, maxAge time.Duration, archiveFirst bool, logger *zap.Logger, cronExpr string, timeout time.Duration) error {
	job := NewPurgeJob(purger, maxAge, archiveFirst, logger, timeout)
	return scheduler.AddJob(PurgeJobName, cronExpr, job.Run)
}
