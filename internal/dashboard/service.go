package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/store-analytics/internal/models"
	"github.com/rogerio-castellano/store-analytics/internal/repo"
	"go.uber.org/zap"
)

// ErrSuperseded is returned by Reload when a newer reload started before it finished.
var ErrSuperseded = errors.New("reload superseded by a newer request")

const publishTimeout = 2 * time.Second

// Snapshot is an immutable result of one load-filter-aggregate cycle.
type Snapshot struct {
	ID         string               `json:"id"`
	Generation uint64               `json:"generation"`
	Filter     models.Filter        `json:"filter"`
	LoadedAt   time.Time            `json:"loaded_at"`
	Stores     []models.Store       `json:"stores"`
	Aggregates models.Aggregates    `json:"aggregates"`
	Options    models.FilterOptions `json:"filter_options"`
}

// Publisher receives every snapshot accepted by Reload.
type Publisher interface {
	Publish(ctx context.Context, snap *Snapshot) error
}

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// State describes the reload session. Snapshot is the last accepted snapshot
// and survives later failures.
type State struct {
	Status     Status    `json:"status"`
	Generation uint64    `json:"generation"`
	Error      string    `json:"error,omitempty"`
	Snapshot   *Snapshot `json:"snapshot,omitempty"`
}

// Service runs dashboard reloads against a catalog. Reload calls form a
// session: a newer call cancels the one in flight and only the newest result
// is kept. Compute is stateless.
type Service struct {
	catalog     repo.Catalog
	logger      *zap.Logger
	publisher   Publisher
	concurrency int
	loadTimeout time.Duration

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	status     Status
	lastErr    error
	current    *Snapshot

	// publishMu serializes publication. published is the last generation the publisher accepted.
	publishMu sync.Mutex
	published uint64
}

type Option func(*Service)

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithConcurrency(n int) Option {
	return func(s *Service) { s.concurrency = n }
}

// WithLoadTimeout bounds a single load; zero means no bound beyond the caller's context.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Service) { s.loadTimeout = d }
}

func NewService(catalog repo.Catalog, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		catalog:     catalog,
		logger:      logger,
		concurrency: DefaultLoadConcurrency,
		status:      StatusIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compute loads and aggregates once for f without touching the session.
func (s *Service) Compute(ctx context.Context, f models.Filter) (*Snapshot, error) {
	c, err := ParseFilter(f)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, c, 0)
}

// Reload loads and aggregates for f and makes the result the current
// snapshot. An invalid filter is rejected before the session is touched.
// On load failure the previous snapshot is kept and the error is recorded.
func (s *Service) Reload(ctx context.Context, f models.Filter) (*Snapshot, error) {
	c, err := ParseFilter(f)
	if err != nil {
		return nil, err
	}

	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.generation++
	gen := s.generation
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.status = StatusLoading
	s.mu.Unlock()

	s.logger.Debug("reload started", zap.Uint64("generation", gen), zap.Any("filter", c.Filter()))
	snap, err := s.build(loadCtx, c, gen)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debug("reload discarded", zap.Uint64("generation", gen))
		return nil, ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		if ctx.Err() != nil {
			// The caller went away; the session is unchanged.
			s.status = s.settledStatus()
			s.mu.Unlock()
			return nil, err
		}
		s.status = StatusError
		s.lastErr = err
		s.mu.Unlock()
		s.logger.Error("reload failed", zap.Uint64("generation", gen), zap.Error(err))
		return nil, err
	}
	s.status = StatusReady
	s.lastErr = nil
	s.current = snap
	s.mu.Unlock()

	s.logger.Info("reload completed",
		zap.Uint64("generation", gen),
		zap.String("snapshot_id", snap.ID),
		zap.Int("products", snap.Aggregates.Totals.TotalProducts))
	s.publish(ctx, snap)
	return snap, nil
}

// settledStatus is the status implied by the stored snapshot and error. Callers hold mu.
func (s *Service) settledStatus() Status {
	switch {
	case s.lastErr != nil:
		return StatusError
	case s.current != nil:
		return StatusReady
	default:
		return StatusIdle
	}
}

// publish hands snap to the publisher unless a newer reload has been
// accepted or published since. Publications run one at a time, so an older
// snapshot can never land after a newer one.
func (s *Service) publish(ctx context.Context, snap *Snapshot) {
	if s.publisher == nil {
		return
	}
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	stale := snap.Generation <= s.published || s.current != snap
	s.mu.Unlock()
	if stale {
		s.logger.Debug("snapshot publish skipped, newer snapshot exists",
			zap.String("snapshot_id", snap.ID), zap.Uint64("generation", snap.Generation))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, snap); err != nil {
		s.logger.Warn("snapshot publish failed", zap.String("snapshot_id", snap.ID), zap.Error(err))
		return
	}
	s.published = snap.Generation
}

func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{Status: s.status, Generation: s.generation, Snapshot: s.current}
	if s.lastErr != nil {
		st.Error = s.lastErr.Error()
	}
	return st
}

// Current returns the last accepted snapshot, or nil before the first one.
func (s *Service) Current() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Service) build(ctx context.Context, c Criteria, gen uint64) (*Snapshot, error) {
	if s.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.loadTimeout)
		defer cancel()
	}

	inv, err := Load(ctx, s.catalog, LoadOptions{Concurrency: s.concurrency})
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilter(inv.Products, c)
	return &Snapshot{
		ID:         uuid.NewString(),
		Generation: gen,
		Filter:     c.Filter(),
		LoadedAt:   time.Now().UTC(),
		Stores:     inv.Stores,
		Aggregates: Aggregate(filtered, inv.Stores),
		Options:    BuildFilterOptions(inv),
	}, nil
}
