package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rogerio-castellano/store-analytics/internal/models"
	"github.com/rogerio-castellano/store-analytics/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// blockingCatalog blocks the first ListStores call until its context is canceled.
type blockingCatalog struct {
	repo.Catalog
	calls   atomic.Int32
	started chan struct{}
}

func (c *blockingCatalog) ListStores(ctx context.Context) ([]models.Store, error) {
	if c.calls.Add(1) == 1 {
		close(c.started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return c.Catalog.ListStores(ctx)
}

// switchCatalog fails every read while fail is set.
type switchCatalog struct {
	repo.Catalog
	fail atomic.Bool
}

func (c *switchCatalog) ListStores(ctx context.Context) ([]models.Store, error) {
	if c.fail.Load() {
		return nil, errBackend
	}
	return c.Catalog.ListStores(ctx)
}

type recordingPublisher struct {
	mu    sync.Mutex
	snaps []*Snapshot
	err   error
}

func (p *recordingPublisher) Publish(_ context.Context, snap *Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snaps = append(p.snaps, snap)
	return p.err
}

// gatedPublisher holds the generation-1 publish until release is closed.
type gatedPublisher struct {
	recordingPublisher
	entered chan uint64
	release chan struct{}
}

func (p *gatedPublisher) Publish(ctx context.Context, snap *Snapshot) error {
	p.entered <- snap.Generation
	if snap.Generation == 1 {
		<-p.release
	}
	return p.recordingPublisher.Publish(ctx, snap)
}

func (p *gatedPublisher) generations() []uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]uint64, len(p.snaps))
	for i, s := range p.snaps {
		out[i] = s.Generation
	}
	return out
}

func TestService_ReloadBuildsSnapshot(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(seededCatalog(t), zaptest.NewLogger(t), WithPublisher(pub))

	assert.Equal(t, StatusIdle, svc.State().Status)
	assert.Nil(t, svc.Current())

	snap, err := svc.Reload(context.Background(), models.Filter{Store: "A"})
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, uint64(1), snap.Generation)
	assert.Equal(t, "A", snap.Filter.Store)
	assert.Equal(t, "all", snap.Filter.Category)

	// Unfiltered store rollups next to filtered ones.
	require.Len(t, snap.Stores, 3)
	assert.Equal(t, 1, snap.Stores[1].ProductCount)
	require.Len(t, snap.Aggregates.Stores, 3)
	assert.Equal(t, 2, snap.Aggregates.Stores[0].ProductCount)
	assert.Equal(t, 0, snap.Aggregates.Stores[1].ProductCount)

	assert.Equal(t, 3, snap.Aggregates.Totals.TotalStores)
	assert.Equal(t, 2, snap.Aggregates.Totals.TotalProducts)
	assert.Equal(t, []string{"a2", "a1"}, ids(snap.Aggregates.TopProducts))
	assert.Equal(t, []string{"a1"}, ids(snap.Aggregates.LowStockProducts))
	assert.Equal(t, []string{"1", "2"}, snap.Options.Categories, "options cover every product, not just filtered ones")

	st := svc.State()
	assert.Equal(t, StatusReady, st.Status)
	assert.Same(t, snap, st.Snapshot)
	assert.Empty(t, st.Error)

	require.Len(t, pub.snaps, 1)
	assert.Same(t, snap, pub.snaps[0])
}

func TestService_NewerReloadSupersedesInFlight(t *testing.T) {
	cat := &blockingCatalog{Catalog: seededCatalog(t), started: make(chan struct{})}
	svc := NewService(cat, zaptest.NewLogger(t))

	errc := make(chan error, 1)
	go func() {
		_, err := svc.Reload(context.Background(), models.Filter{Store: "B"})
		errc <- err
	}()
	<-cat.started

	snap, err := svc.Reload(context.Background(), models.Filter{Store: "A"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snap.Generation)

	assert.ErrorIs(t, <-errc, ErrSuperseded)

	st := svc.State()
	assert.Equal(t, StatusReady, st.Status)
	assert.Equal(t, uint64(2), st.Generation)
	assert.Same(t, snap, svc.Current())
	assert.Equal(t, "A", svc.Current().Filter.Store)
}

func TestService_FailedReloadKeepsPreviousSnapshot(t *testing.T) {
	cat := &switchCatalog{Catalog: seededCatalog(t)}
	pub := &recordingPublisher{}
	svc := NewService(cat, zaptest.NewLogger(t), WithPublisher(pub))

	first, err := svc.Reload(context.Background(), models.Filter{})
	require.NoError(t, err)

	cat.fail.Store(true)
	snap, err := svc.Reload(context.Background(), models.Filter{Store: "B"})
	assert.Nil(t, snap)
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.ErrorIs(t, err, errBackend)

	st := svc.State()
	assert.Equal(t, StatusError, st.Status)
	assert.Contains(t, st.Error, "backend unavailable")
	assert.Same(t, first, st.Snapshot)
	assert.Len(t, pub.snaps, 1, "failed reloads are not published")

	cat.fail.Store(false)
	_, err = svc.Reload(context.Background(), models.Filter{})
	require.NoError(t, err)
	st = svc.State()
	assert.Equal(t, StatusReady, st.Status)
	assert.Empty(t, st.Error)
}

func TestService_InvalidFilterLeavesSessionUntouched(t *testing.T) {
	svc := NewService(seededCatalog(t), zaptest.NewLogger(t))

	_, err := svc.Reload(context.Background(), models.Filter{PriceRange: "cheap"})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	st := svc.State()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Equal(t, uint64(0), st.Generation)
}

func TestService_CallerCancellationIsNotAnErrorState(t *testing.T) {
	svc := NewService(seededCatalog(t), zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Reload(ctx, models.Filter{})
	assert.True(t, errors.Is(err, context.Canceled))

	st := svc.State()
	assert.Equal(t, StatusIdle, st.Status)
	assert.Empty(t, st.Error)
}

func TestService_PublishErrorDoesNotFailReload(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("redis down")}
	svc := NewService(seededCatalog(t), zaptest.NewLogger(t), WithPublisher(pub))

	snap, err := svc.Reload(context.Background(), models.Filter{})
	require.NoError(t, err)
	assert.Same(t, snap, svc.Current())
}

func TestService_ComputeIsStateless(t *testing.T) {
	svc := NewService(seededCatalog(t), zaptest.NewLogger(t))

	snap, err := svc.Compute(context.Background(), models.Filter{StockLevel: "high"})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), snap.Generation)
	assert.Equal(t, []string{"a2"}, ids(snap.Aggregates.TopProducts))

	assert.Nil(t, svc.Current())
	assert.Equal(t, StatusIdle, svc.State().Status)

	_, err = svc.Compute(context.Background(), models.Filter{StockLevel: "none"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestService_PublishesInGenerationOrder(t *testing.T) {
	pub := &gatedPublisher{entered: make(chan uint64, 8), release: make(chan struct{})}
	svc := NewService(seededCatalog(t), zaptest.NewLogger(t), WithPublisher(pub))

	reload := func(f models.Filter) <-chan error {
		errc := make(chan error, 1)
		go func() {
			_, err := svc.Reload(context.Background(), f)
			errc <- err
		}()
		return errc
	}
	currentGeneration := func(gen uint64) func() bool {
		return func() bool {
			cur := svc.Current()
			return cur != nil && cur.Generation == gen
		}
	}

	first := reload(models.Filter{Store: "A"})
	require.Equal(t, uint64(1), <-pub.entered, "generation 1 is being published")

	second := reload(models.Filter{Store: "B"})
	require.Eventually(t, currentGeneration(2), time.Second, 5*time.Millisecond)
	third := reload(models.Filter{Store: "C"})
	require.Eventually(t, currentGeneration(3), time.Second, 5*time.Millisecond)

	close(pub.release)
	for _, errc := range []<-chan error{first, second, third} {
		require.NoError(t, <-errc)
	}

	// Generation 2 was overtaken before its turn came.
	assert.Equal(t, []uint64{1, 3}, pub.generations())
	assert.Equal(t, uint64(3), svc.Current().Generation)
}

func TestService_FailedPublishDoesNotBlockLaterOnes(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("redis down")}
	svc := NewService(seededCatalog(t), zaptest.NewLogger(t), WithPublisher(pub))

	_, err := svc.Reload(context.Background(), models.Filter{})
	require.NoError(t, err)

	pub.mu.Lock()
	pub.err = nil
	pub.mu.Unlock()

	snap, err := svc.Reload(context.Background(), models.Filter{Store: "A"})
	require.NoError(t, err)

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.Len(t, pub.snaps, 2)
	assert.Same(t, snap, pub.snaps[1])
}
