package handlers_integrated_test_suite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/rogerio-castellano/store-analytics/internal/dashboard"
	"github.com/rogerio-castellano/store-analytics/internal/db"
	api "github.com/rogerio-castellano/store-analytics/internal/http"
	handler "github.com/rogerio-castellano/store-analytics/internal/http/handlers"
	rl "github.com/rogerio-castellano/store-analytics/internal/http/rate_limiter"
	"github.com/rogerio-castellano/store-analytics/internal/repo"
	"go.uber.org/zap"
)

var (
	database *sql.DB
	errSkip  = errors.New("DATABASE_URL not set")
)

func setupDatabase() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errSkip
	}

	var err error
	database, err = db.Connect(context.Background(), dsn)
	if err != nil {
		return fmt.Errorf("could not connect to database: %w", err)
	}

	schema, err := os.ReadFile("../../db/schema.sql")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = database.ExecContext(ctx, string(schema))
	return err
}

func newRouter() http.Handler {
	logger := zap.NewNop()
	svc := dashboard.NewService(repo.NewPostgresCatalog(database, logger), logger)
	return api.NewRouter(handler.NewHandler(svc, logger), rl.New(1000, 1000), logger)
}

func addStore(id, name string) {
	exec(`INSERT INTO stores (id, store_name) VALUES ($1, $2)`, id, name)
}

func addProduct(storeID, id, name, category string, price string, stock int) {
	var cat any
	if category != "" {
		cat = category
	}
	exec(`INSERT INTO store_products (id, store_id, product_name, product_price, stock, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)`, id, storeID, name, price, stock, cat)
}

func clearAllStores() {
	exec("TRUNCATE TABLE stores CASCADE")
}

func exec(query string, args ...any) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := database.ExecContext(ctx, query, args...); err != nil {
		log.Printf("exec %q failed: %v", query, err)
	}
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
