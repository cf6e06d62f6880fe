package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogerio-castellano/store-analytics/internal/config"
	"github.com/rogerio-castellano/store-analytics/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const fixture = `stores:
  - id: s1
    storeName: Downtown
    products:
      - id: p1
        productName: Widget
        productPrice: 10
        stock: 3
        categoryId: tools
`

func memoryConfig(t *testing.T, fixturePath string) *config.Config {
	t.Helper()
	return &config.Config{
		Catalog: config.CatalogConfig{Backend: config.BackendMemory, Fixture: fixturePath},
		Loader:  config.LoaderConfig{Concurrency: 2},
	}
}

func TestOpen_MemoryFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o600))

	a, err := Open(context.Background(), memoryConfig(t, path), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, a.Close()) })

	assert.Nil(t, a.Snapshots, "redis is off without an address")

	snap, err := a.Service.Compute(context.Background(), models.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Aggregates.Totals.TotalProducts)
	assert.Equal(t, "Downtown", snap.Stores[0].Name)
}

func TestOpen_EmptyMemoryCatalog(t *testing.T) {
	a, err := Open(context.Background(), memoryConfig(t, ""), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close()

	snap, err := a.Service.Compute(context.Background(), models.Filter{})
	require.NoError(t, err)
	assert.Zero(t, snap.Aggregates.Totals.TotalStores)
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(context.Background(), memoryConfig(t, filepath.Join(t.TempDir(), "missing.yaml")), zaptest.NewLogger(t))
	assert.Error(t, err)

	cfg := memoryConfig(t, "")
	cfg.Catalog.Backend = "sqlite"
	_, err = Open(context.Background(), cfg, zaptest.NewLogger(t))
	assert.ErrorContains(t, err, "unknown catalog backend")
}
