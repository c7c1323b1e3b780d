package service_test

import (
	"context"
	"testing"

	"github.com/horizons-voyages/cotation-api/internal/repository"
	"github.com/horizons-voyages/cotation-api/internal/service"
	"github.com/horizons-voyages/cotation-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWarehouseSyncService_SyncRuns_Disabled(t *testing.T) {
	db := testutil.SetupTestDB(t)
	snapshots := service.NewSnapshotService(repository.NewSnapshotRepository(db), newMemoryArchive(), zap.NewNop())
	svc := service.NewWarehouseSyncService(nil, snapshots, 0, zap.NewNop())

	_, _, _, err := svc.SyncRuns(context.Background())
	assert.ErrorIs(t, err, service.ErrWarehouseDisabled)
}
