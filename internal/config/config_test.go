package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DASHBOARD_CATALOG_BACKEND", "memory")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.False(t, cfg.Server.TrustProxy, "forwarded headers are not trusted by default")
	assert.Equal(t, BackendMemory, cfg.Catalog.Backend)
	assert.Equal(t, "stores", cfg.Firestore.StoresCollection)
	assert.Equal(t, "stockproducts", cfg.Firestore.ProductsCollection)
	assert.Equal(t, 4, cfg.Loader.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Loader.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Redis.SnapshotTTL)
	assert.Equal(t, 1.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DASHBOARD_CATALOG_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/dashboard")
	t.Setenv("DASHBOARD_LOADER_CONCURRENCY", "8")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DASHBOARD_SERVER_TRUST_PROXY", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/dashboard", cfg.Postgres.DSN)
	assert.Equal(t, 8, cfg.Loader.Concurrency)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Server.TrustProxy)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
catalog:
  backend: firestore
firestore:
  project_id: retail-demo
  products_collection: products
loader:
  timeout: 5s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "retail-demo", cfg.Firestore.ProjectID)
	assert.Equal(t, "products", cfg.Firestore.ProductsCollection)
	assert.Equal(t, 5*time.Second, cfg.Loader.Timeout)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"memory backend", func(c *Config) {}, false},
		{"firestore without project", func(c *Config) { c.Catalog.Backend = BackendFirestore }, true},
		{"postgres without dsn", func(c *Config) { c.Catalog.Backend = BackendPostgres }, true},
		{"unknown backend", func(c *Config) { c.Catalog.Backend = "mongo" }, true},
		{"zero concurrency", func(c *Config) { c.Loader.Concurrency = 0 }, true},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Catalog:   CatalogConfig{Backend: BackendMemory},
				Loader:    LoaderConfig{Concurrency: 1},
				RateLimit: RateLimitConfig{RequestsPerSecond: 1, Burst: 1},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
