package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rogerio-castellano/store-analytics/internal/dashboard"
	api "github.com/rogerio-castellano/store-analytics/internal/http"
	handler "github.com/rogerio-castellano/store-analytics/internal/http/handlers"
	rl "github.com/rogerio-castellano/store-analytics/internal/http/rate_limiter"
	"github.com/rogerio-castellano/store-analytics/internal/models"
	"github.com/rogerio-castellano/store-analytics/internal/repo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap/zaptest"
)

// seedCatalog builds the catalog used by most tests:
//
//	s1 Downtown: Widget 10x3 (tools), Lamp 150.50x20 (home), Cable 2x60 (tools)
//	s2 Airport:  Gadget 600x8 (no category)
//	s3 Empty
func seedCatalog() *repo.InMemoryCatalog {
	c := repo.NewInMemoryCatalog()
	c.AddStore("s1", "Downtown")
	c.AddStore("s2", "Airport")
	c.AddStore("s3", "Empty")

	add := func(store, id, name, category, price string, stock int) {
		err := c.AddProduct(store, models.Product{
			ID: id, Name: name, CategoryID: category, Price: decimal.RequireFromString(price), Stock: stock,
		})
		if err != nil {
			panic(err)
		}
	}
	add("s1", "p1", "Widget", "tools", "10", 3)
	add("s1", "p2", "Lamp", "home", "150.50", 20)
	add("s1", "p3", "Cable", "tools", "2", 60)
	add("s2", "p4", "Gadget", "", "600", 8)
	return c
}

// newTestRouter wires a fresh service over catalog with a generous rate limit.
func newTestRouter(t *testing.T, catalog repo.Catalog) (http.Handler, *dashboard.Service) {
	t.Helper()
	return newLimitedRouter(t, catalog, rl.New(1000, 1000))
}

func newLimitedRouter(t *testing.T, catalog repo.Catalog, limiter *rl.Limiter, opts ...api.RouterOption) (http.Handler, *dashboard.Service) {
	t.Helper()
	logger := zaptest.NewLogger(t)
	svc := dashboard.NewService(catalog, logger)
	return api.NewRouter(handler.NewHandler(svc, logger), limiter, logger, opts...), svc
}

// getFrom issues a GET from peer with the given forwarding header value.
func getFrom(r http.Handler, target, peer, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = peer
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
		req.Header.Set("X-Real-IP", forwardedFor)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func reload(r http.Handler, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(http.MethodPost, "/dashboard/reload", &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSnapshot(t *testing.T, w *httptest.ResponseRecorder) dashboard.Snapshot {
	t.Helper()
	var snap dashboard.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	return snap
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handler.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return resp.Error
}

// failingCatalog fails every read.
type failingCatalog struct{ err error }

func (c failingCatalog) ListStores(context.Context) ([]models.Store, error) { return nil, c.err }

func (c failingCatalog) ListProducts(context.Context, string) ([]models.Product, error) {
	return nil, c.err
}

// toggleCatalog fails every read once fail is set.
type toggleCatalog struct {
	repo.Catalog
	fail atomic.Bool
}

func (c *toggleCatalog) ListStores(ctx context.Context) ([]models.Store, error) {
	if c.fail.Load() {
		return nil, errors.New("backend unavailable")
	}
	return c.Catalog.ListStores(ctx)
}

// gatedCatalog holds the first ListStores call until its context is done and
// serves every other call from the wrapped catalog.
type gatedCatalog struct {
	repo.Catalog

	once    sync.Once
	entered chan struct{}
}

func newGatedCatalog(inner repo.Catalog) *gatedCatalog {
	return &gatedCatalog{Catalog: inner, entered: make(chan struct{})}
}

func (c *gatedCatalog) ListStores(ctx context.Context) ([]models.Store, error) {
	first := false
	c.once.Do(func() { first = true })
	if first {
		close(c.entered)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return c.Catalog.ListStores(ctx)
}
