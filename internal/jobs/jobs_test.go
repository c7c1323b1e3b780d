package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/horizons-voyages/cotation-api/internal/jobs"
	"github.com/horizons-voyages/cotation-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePurger struct {
	calls     int
	maxAge    time.Duration
	batchSize int
	err       error
}

func (p *fakePurger) PurgeOlderThan(ctx context.Context, maxAge time.Duration, archiveFirst bool, batchSize int) (int, error) {
	p.calls++
	p.maxAge = maxAge
	p.batchSize = batchSize
	if p.err != nil {
		return 0, p.err
	}
	return 3, nil
}

type fakeSyncService struct {
	calls int
	err   error
}

func (s *fakeSyncService) SyncRuns(ctx context.Context) (int, int, int, error) {
	s.calls++
	if s.err != nil {
		return 0, 0, 0, s.err
	}
	return 2, 1, 0, nil
}

func TestPurgeJob_Run(t *testing.T) {
	t.Run("delegates to the purger", func(t *testing.T) {
		purger := &fakePurger{}
		job := jobs.NewPurgeJob(purger, 90*24*time.Hour, true, zap.NewNop(), time.Minute)

		job.Run()

		assert.Equal(t, 1, purger.calls)
		assert.Equal(t, 90*24*time.Hour, purger.maxAge)
		assert.Positive(t, purger.batchSize)
	})

	t.Run("purge failure does not panic", func(t *testing.T) {
		purger := &fakePurger{err: errors.New("db gone")}
		job := jobs.NewPurgeJob(purger, time.Hour, false, zap.NewNop(), time.Minute)

		assert.NotPanics(t, job.Run)
		assert.Equal(t, 1, purger.calls)
	})
}

func TestWarehouseSyncJob_Run(t *testing.T) {
	t.Run("delegates to the sync service", func(t *testing.T) {
		sync := &fakeSyncService{}
		job := jobs.NewWarehouseSyncJob(sync, zap.NewNop(), time.Minute)

		job.Run()

		assert.Equal(t, 1, sync.calls)
	})

	t.Run("disabled warehouse is not an error", func(t *testing.T) {
		sync := &fakeSyncService{err: service.ErrWarehouseDisabled}
		job := jobs.NewWarehouseSyncJob(sync, zap.NewNop(), time.Minute)

		assert.NotPanics(t, job.Run)
	})
}

func TestScheduler_AddJob(t *testing.T) {
	scheduler := jobs.NewScheduler(zap.NewNop())

	err := scheduler.AddJob("test_job", "0 30 3 * * *", func() {})
	require.NoError(t, err)

	err = scheduler.AddJob("bad_job", "not a cron expr", func() {})
	assert.Error(t, err)
}
