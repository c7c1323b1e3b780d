package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/horizons-voyages/cotation-api/internal/domain"
	"github.com/horizons-voyages/cotation-api/internal/repository"
	"github.com/horizons-voyages/cotation-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestSnapshot(t *testing.T, db *gorm.DB, tripRef string, source domain.SnapshotSource, receivedAt time.Time) *domain.CotationSnapshot {
	snapshot := &domain.CotationSnapshot{
		TripRef:        tripRef,
		Label:          "Thaïlande nord - Budget",
		Currency:       "EUR",
		Payload:        []byte(`{"pax_configs":[],"currency":"EUR"}`),
		PaxConfigCount: 1,
		Source:         source,
		ReceivedAt:     receivedAt,
	}
	err := db.Create(snapshot).Error
	require.NoError(t, err)
	return snapshot
}

func TestSnapshotRepository_CreateAndGetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	snapshot := &domain.CotationSnapshot{
		TripRef:        "TRIP-2025-042",
		Label:          "Vietnam sud - Confort",
		Currency:       "EUR",
		Payload:        []byte(`{"pax_configs":[],"currency":"EUR"}`),
		PaxConfigCount: 2,
		ErrorCount:     1,
		WarningCount:   3,
		MissingRates:   []string{"THB", "VND"},
		Source:         domain.SnapshotSourcePush,
		ReceivedAt:     time.Now().UTC(),
	}

	err := repo.Create(context.Background(), snapshot)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, snapshot.ID)

	found, err := repo.GetByID(context.Background(), snapshot.ID)
	require.NoError(t, err)
	assert.Equal(t, "TRIP-2025-042", found.TripRef)
	assert.Equal(t, "Vietnam sud - Confort", found.Label)
	assert.Equal(t, 2, found.PaxConfigCount)
	assert.Equal(t, 1, found.ErrorCount)
	assert.Equal(t, 3, found.WarningCount)
	assert.Equal(t, []string{"THB", "VND"}, []string(found.MissingRates))
	assert.Equal(t, domain.SnapshotSourcePush, found.Source)
}

func TestSnapshotRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSnapshotRepository_GetLatestByTripRef(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	now := time.Now().UTC()
	createTestSnapshot(t, db, "TRIP-1", domain.SnapshotSourcePush, now.Add(-2*time.Hour))
	latest := createTestSnapshot(t, db, "TRIP-1", domain.SnapshotSourcePush, now)
	createTestSnapshot(t, db, "TRIP-2", domain.SnapshotSourcePush, now.Add(time.Hour))

	found, err := repo.GetLatestByTripRef(context.Background(), "TRIP-1")
	require.NoError(t, err)
	assert.Equal(t, latest.ID, found.ID)

	_, err = repo.GetLatestByTripRef(context.Background(), "TRIP-3")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSnapshotRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	now := time.Now().UTC()
	createTestSnapshot(t, db, "TRIP-1", domain.SnapshotSourcePush, now.Add(-3*time.Hour))
	createTestSnapshot(t, db, "TRIP-1", domain.SnapshotSourceWarehouse, now.Add(-2*time.Hour))
	withErrors := createTestSnapshot(t, db, "TRIP-2", domain.SnapshotSourcePush, now.Add(-time.Hour))
	require.NoError(t, db.Model(withErrors).Update("error_count", 2).Error)

	t.Run("no filter returns everything newest first", func(t *testing.T) {
		snapshots, total, err := repo.List(context.Background(), repository.SnapshotFilter{}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, snapshots, 3)
		assert.Equal(t, withErrors.ID, snapshots[0].ID)
	})

	t.Run("filter by trip", func(t *testing.T) {
		snapshots, total, err := repo.List(context.Background(), repository.SnapshotFilter{TripRef: "TRIP-1"}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, snapshots, 2)
	})

	t.Run("filter by source", func(t *testing.T) {
		snapshots, total, err := repo.List(context.Background(), repository.SnapshotFilter{Source: domain.SnapshotSourceWarehouse}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, snapshots, 1)
		assert.Equal(t, domain.SnapshotSourceWarehouse, snapshots[0].Source)
	})

	t.Run("filter by alerts", func(t *testing.T) {
		snapshots, total, err := repo.List(context.Background(), repository.SnapshotFilter{WithAlerts: true}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, snapshots, 1)
		assert.Equal(t, withErrors.ID, snapshots[0].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		snapshots, total, err := repo.List(context.Background(), repository.SnapshotFilter{}, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, snapshots, 1)
	})
}

func TestSnapshotRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	snapshot := createTestSnapshot(t, db, "TRIP-1", domain.SnapshotSourcePush, time.Now().UTC())

	err := repo.Delete(context.Background(), snapshot.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), snapshot.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSnapshotRepository_ListOlderThan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	now := time.Now().UTC()
	oldest := createTestSnapshot(t, db, "TRIP-1", domain.SnapshotSourcePush, now.Add(-72*time.Hour))
	older := createTestSnapshot(t, db, "TRIP-2", domain.SnapshotSourcePush, now.Add(-48*time.Hour))
	createTestSnapshot(t, db, "TRIP-3", domain.SnapshotSourcePush, now)

	expired, err := repo.ListOlderThan(context.Background(), now.Add(-24*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, expired, 2)
	assert.Equal(t, oldest.ID, expired[0].ID)
	assert.Equal(t, older.ID, expired[1].ID)

	limited, err := repo.ListOlderThan(context.Background(), now.Add(-24*time.Hour), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, oldest.ID, limited[0].ID)
}

func TestSnapshotRepository_MarkArchived(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	snapshot := createTestSnapshot(t, db, "TRIP-1", domain.SnapshotSourcePush, time.Now().UTC())
	require.Nil(t, snapshot.ArchivedAt)

	err := repo.MarkArchived(context.Background(), snapshot.ID, "2025/01/TRIP-1/abc.json")
	require.NoError(t, err)

	found, err := repo.GetByID(context.Background(), snapshot.ID)
	require.NoError(t, err)
	assert.NotNil(t, found.ArchivedAt)
	assert.Equal(t, "2025/01/TRIP-1/abc.json", found.ArchivePath)
}

func TestSnapshotRepository_ExistsByWarehouseRunRef(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	runRef := "RUN-2025-0815"
	snapshot := createTestSnapshot(t, db, "TRIP-1", domain.SnapshotSourceWarehouse, time.Now().UTC())
	require.NoError(t, db.Model(snapshot).Update("warehouse_run_ref", runRef).Error)

	exists, err := repo.ExistsByWarehouseRunRef(context.Background(), runRef)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByWarehouseRunRef(context.Background(), "RUN-unknown")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSnapshotRepository_LatestWarehouseImportTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	t.Run("zero time when nothing imported", func(t *testing.T) {
		watermark, err := repo.LatestWarehouseImportTime(context.Background())
		require.NoError(t, err)
		assert.True(t, watermark.IsZero())
	})

	t.Run("newest warehouse import wins", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		createTestSnapshot(t, db, "TRIP-1", domain.SnapshotSourceWarehouse, now.Add(-2*time.Hour))
		createTestSnapshot(t, db, "TRIP-2", domain.SnapshotSourceWarehouse, now.Add(-time.Hour))
		// Push snapshots never move the watermark
		createTestSnapshot(t, db, "TRIP-3", domain.SnapshotSourcePush, now)

		watermark, err := repo.LatestWarehouseImportTime(context.Background())
		require.NoError(t, err)
		assert.WithinDuration(t, now.Add(-time.Hour), watermark, time.Second)
	})
}

func TestSnapshotRepository_CountByTripRef(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewSnapshotRepository(db)

	now := time.Now().UTC()
	createTestSnapshot(t, db, "TRIP-1", domain.SnapshotSourcePush, now)
	createTestSnapshot(t, db, "TRIP-1", domain.SnapshotSourcePush, now.Add(time.Minute))

	count, err := repo.CountByTripRef(context.Background(), "TRIP-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByTripRef(context.Background(), "TRIP-9")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
