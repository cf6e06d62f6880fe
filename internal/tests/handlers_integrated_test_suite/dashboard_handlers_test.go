package handlers_integrated_test_suite

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/rogerio-castellano/store-analytics/internal/dashboard"
)

func TestMain(m *testing.M) {
	if err := setupDatabase(); err != nil {
		if errors.Is(err, errSkip) {
			fmt.Println("skipping integrated handler tests:", err)
			os.Exit(0)
		}
		fmt.Println("setup failed:", err)
		os.Exit(1)
	}
	code := m.Run()
	database.Close()
	os.Exit(code)
}

func TestDashboardOverPostgres(t *testing.T) {
	clearAllStores()
	t.Cleanup(clearAllStores)

	addStore("s1", "Downtown")
	addStore("s2", "Airport")
	addProduct("s1", "p1", "Widget", "tools", "10.00", 3)
	addProduct("s1", "p2", "Lamp", "home", "150.50", 20)
	addProduct("s2", "p3", "Gadget", "", "600.00", 8)

	r := newRouter()

	w := get(r, "/dashboard")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var snap dashboard.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if snap.Aggregates.Totals.TotalValue.String() != "7840" {
		t.Errorf("expected total value 7840, got %s", snap.Aggregates.Totals.TotalValue)
	}
	var uncategorized bool
	for _, c := range snap.Aggregates.Categories {
		if c.Category == "uncategorized" {
			uncategorized = c.Count == 1
		}
	}
	if !uncategorized {
		t.Errorf("expected one uncategorized product, got %+v", snap.Aggregates.Categories)
	}

	w = get(r, "/dashboard?store=s1&stockLevel=medium")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	snap = dashboard.Snapshot{}
	json.NewDecoder(w.Body).Decode(&snap)
	if snap.Aggregates.Totals.TotalProducts != 1 || snap.Aggregates.TopProducts[0].Name != "Lamp" {
		t.Errorf("expected only Lamp, got %+v", snap.Aggregates.TopProducts)
	}
}

func TestDashboardOverPostgres_ConcurrentRequests(t *testing.T) {
	clearAllStores()
	t.Cleanup(clearAllStores)

	for i := range 6 {
		id := fmt.Sprintf("s%d", i)
		addStore(id, strings.ToUpper(id))
		addProduct(id, "p1", "Item", "misc", "1.00", i)
	}
	r := newRouter()

	done := make(chan int, 5)
	for range 5 {
		go func() { done <- get(r, "/dashboard").Code }()
	}
	for range 5 {
		if code := <-done; code != http.StatusOK {
			t.Errorf("expected 200 OK, got %d", code)
		}
	}
}
