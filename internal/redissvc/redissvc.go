package redissvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/store-analytics/internal/dashboard"
)

// ErrNoSnapshot is returned by Latest when nothing has been published yet.
var ErrNoSnapshot = errors.New("no snapshot published")

// SnapshotStore publishes dashboard snapshots to Redis so other processes can
// read the latest one without reloading the catalog.
type SnapshotStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewSnapshotStore(rdb *redis.Client, prefix string, ttl time.Duration) *SnapshotStore {
	if prefix == "" {
		prefix = "dashboard"
	}
	return &SnapshotStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *SnapshotStore) Rdb() *redis.Client {
	return s.rdb
}

func (s *SnapshotStore) latestKey() string {
	return s.prefix + ":snapshot:latest"
}

func (s *SnapshotStore) snapshotKey(id string) string {
	return s.prefix + ":snapshot:" + id
}

// Channel is the pub/sub channel that receives the id of every published snapshot.
func (s *SnapshotStore) Channel() string {
	return s.prefix + ":snapshots"
}

// Publish implements dashboard.Publisher.
func (s *SnapshotStore) Publish(ctx context.Context, snap *dashboard.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.latestKey(), data, s.ttl)
		pipe.Set(ctx, s.snapshotKey(snap.ID), data, s.ttl)
		pipe.Publish(ctx, s.Channel(), snap.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish snapshot %s: %w", snap.ID, err)
	}
	return nil
}

// Latest returns the most recently published snapshot.
func (s *SnapshotStore) Latest(ctx context.Context) (*dashboard.Snapshot, error) {
	return s.get(ctx, s.latestKey())
}

// Get returns a published snapshot by id.
func (s *SnapshotStore) Get(ctx context.Context, id string) (*dashboard.Snapshot, error) {
	return s.get(ctx, s.snapshotKey(id))
}

func (s *SnapshotStore) get(ctx context.Context, key string) (*dashboard.Snapshot, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	var snap dashboard.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

var _ dashboard.Publisher = (*SnapshotStore)(nil)
