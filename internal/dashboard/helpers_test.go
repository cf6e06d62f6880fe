package dashboard

import (
	"testing"

	"github.com/rogerio-castellano/store-analytics/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func product(id, store, category string, price float64, stock int) models.Product {
	return models.Product{
		ID:         id,
		StoreID:    store,
		StoreName:  "Store " + store,
		Name:       "Product " + id,
		CategoryID: category,
		Price:      decimal.NewFromFloat(price),
		Stock:      stock,
	}
}

func mustParse(t *testing.T, f models.Filter) Criteria {
	t.Helper()
	c, err := ParseFilter(f)
	require.NoError(t, err)
	return c
}

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// sampleProducts covers every stock bucket, both price bounds and a missing category.
func sampleProducts() []models.Product {
	return []models.Product{
		product("p1", "A", "1", 10, 5),
		product("p2", "B", "2", 100, 2),
		product("p3", "A", "2", 101, 11),
		product("p4", "A", "", 500, 50),
		product("p5", "B", "1", 501, 51),
		product("p6", "B", "3", 0, 0),
		product("p7", "A", "1", 250.5, 10),
		product("p8", "C", "", 1200, 120),
	}
}
