// Package app assembles the dashboard from configuration. It is shared by
// the API server and dashctl.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/store-analytics/internal/config"
	"github.com/rogerio-castellano/store-analytics/internal/dashboard"
	"github.com/rogerio-castellano/store-analytics/internal/db"
	"github.com/rogerio-castellano/store-analytics/internal/firebase"
	"github.com/rogerio-castellano/store-analytics/internal/redissvc"
	"github.com/rogerio-castellano/store-analytics/internal/repo"
	"go.uber.org/zap"
)

// App owns the backend connections opened for one process.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Catalog   repo.Catalog
	Snapshots *redissvc.SnapshotStore
	Service   *dashboard.Service

	closers []func() error
}

// Open connects the configured catalog backend and, when redis.addr is set,
// the snapshot store. The returned App must be closed.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	catalog, err := a.openCatalog(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Catalog = catalog

	opts := []dashboard.Option{
		dashboard.WithConcurrency(cfg.Loader.Concurrency),
		dashboard.WithLoadTimeout(cfg.Loader.Timeout),
	}

	if cfg.Redis.Addr != "" {
		store, err := OpenSnapshotStore(ctx, cfg.Redis)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, store.Rdb().Close)
		a.Snapshots = store
		opts = append(opts, dashboard.WithPublisher(store))
		logger.Info("snapshot publication enabled", zap.String("redis", cfg.Redis.Addr), zap.String("channel", store.Channel()))
	}

	a.Service = dashboard.NewService(a.Catalog, logger, opts...)
	return a, nil
}

func (a *App) openCatalog(ctx context.Context) (repo.Catalog, error) {
	cfg := a.Config
	switch cfg.Catalog.Backend {
	case config.BackendFirestore:
		client, err := firebase.NewFirestore(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile, a.Logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return repo.NewFirestoreCatalog(client, cfg.Firestore.StoresCollection, cfg.Firestore.ProductsCollection, a.Logger), nil

	case config.BackendPostgres:
		database, err := db.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, database.Close)
		return repo.NewPostgresCatalog(database, a.Logger), nil

	case config.BackendMemory:
		if cfg.Catalog.Fixture == "" {
			a.Logger.Warn("memory catalog without fixture, dashboard will be empty")
			return repo.NewInMemoryCatalog(), nil
		}
		catalog, err := repo.LoadFixtureFile(cfg.Catalog.Fixture)
		if err != nil {
			return nil, err
		}
		return catalog, nil
	}
	return nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
}

// OpenSnapshotStore connects to Redis and verifies the connection. Closing
// the store's client is up to the caller.
func OpenSnapshotStore(ctx context.Context, cfg config.RedisConfig) (*redissvc.SnapshotStore, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis.addr is not configured")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", cfg.Addr, err)
	}
	return redissvc.NewSnapshotStore(rdb, cfg.KeyPrefix, cfg.SnapshotTTL), nil
}

// Close releases connections in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
