package storage_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/horizons-voyages/cotation-api/internal/config"
	"github.com/horizons-voyages/cotation-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalArchive_StoreRetrieveDelete(t *testing.T) {
	archive, err := storage.NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	payload := []byte(`{"pax_configs":[],"currency":"EUR"}`)
	path := "2025/08/TRIP-2025-042/abc.json"

	size, err := archive.Store(ctx, path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), size)

	reader, err := archive.Retrieve(ctx, path)
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, payload, content)

	require.NoError(t, archive.Delete(ctx, path))

	_, err = archive.Retrieve(ctx, path)
	assert.Error(t, err)
}

func TestLocalArchive_DeleteMissingIsNoop(t *testing.T) {
	archive, err := storage.NewLocalArchive(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, archive.Delete(context.Background(), "2025/08/nothing.json"))
}

func TestLocalArchive_CreatesNestedDirectories(t *testing.T) {
	base := t.TempDir()
	archive, err := storage.NewLocalArchive(base)
	require.NoError(t, err)

	_, err = archive.Store(context.Background(), "a/b/c/d.json", "application/json", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(base, "a", "b", "c", "d.json"))
	assert.NoError(t, err)
}

func TestNewArchive_Modes(t *testing.T) {
	logger := zap.NewNop()

	t.Run("local", func(t *testing.T) {
		archive, err := storage.NewArchive(&config.StorageConfig{
			Mode:          "local",
			LocalBasePath: t.TempDir(),
		}, logger)
		require.NoError(t, err)
		assert.NotNil(t, archive)
	})

	t.Run("cloud without connection string", func(t *testing.T) {
		_, err := storage.NewArchive(&config.StorageConfig{Mode: "cloud"}, logger)
		assert.Error(t, err)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := storage.NewArchive(&config.StorageConfig{Mode: "ftp"}, logger)
		assert.Error(t, err)
	})
}
