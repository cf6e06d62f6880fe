package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/store-analytics/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const postgresQueryTimeout = 3 * time.Second

// PostgresCatalog reads the store hierarchy from a relational mirror of the
// document store (tables stores and store_products).
type PostgresCatalog struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresCatalog(db *sql.DB, logger *zap.Logger) *PostgresCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresCatalog{db: db, logger: logger}
}

func (r *PostgresCatalog) ListStores(ctx context.Context) ([]models.Store, error) {
	query := `SELECT id, store_name FROM stores ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, postgresQueryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query stores: %w", err)
	}
	defer rows.Close()

	stores := []models.Store{}
	for rows.Next() {
		var s models.Store
		var name sql.NullString
		if err := rows.Scan(&s.ID, &name); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		s.Name = name.String
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}
	return stores, nil
}

func (r *PostgresCatalog) ListProducts(ctx context.Context, storeID string) ([]models.Product, error) {
	query := `SELECT id, product_name, product_price, stock, category_id
		FROM store_products WHERE store_id = $1 ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, postgresQueryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("query products of store %s: %w", storeID, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		var name, category sql.NullString
		var price decimal.NullDecimal
		var stock sql.NullInt64
		if err := rows.Scan(&p.ID, &name, &price, &stock, &category); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if !price.Valid {
			r.logger.Warn("skipping product row without price",
				zap.String("store_id", storeID), zap.String("product_id", p.ID))
			continue
		}
		p.Name = name.String
		p.CategoryID = category.String
		p.Price = price.Decimal
		p.Stock = int(stock.Int64)
		if err := validateProduct(p); err != nil {
			r.logger.Warn("skipping product row",
				zap.String("store_id", storeID), zap.String("product_id", p.ID), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
