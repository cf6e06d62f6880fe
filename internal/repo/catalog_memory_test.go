package repo

import (
	"context"
	"testing"

	"github.com/rogerio-castellano/store-analytics/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCatalog(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCatalog()
	c.AddStore("s2", "Airport")
	c.AddStore("s1", "Downtown")
	c.AddStore("s2", "Airport T2")

	require.NoError(t, c.AddProduct("s1", models.Product{ID: "p1", Name: "Widget", Price: decimal.NewFromInt(5), Stock: 1}))
	require.NoError(t, c.AddProduct("s1", models.Product{ID: "p2", Name: "Lamp", Price: decimal.NewFromInt(7), Stock: 2}))
	assert.ErrorIs(t, c.AddProduct("nope", models.Product{ID: "x"}), ErrStoreNotFound)

	stores, err := c.ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "s2", stores[0].ID, "insertion order is kept")
	assert.Equal(t, "Airport T2", stores[0].Name)

	products, err := c.ListProducts(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, []string{products[0].ID, products[1].ID})

	empty, err := c.ListProducts(ctx, "s2")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = c.ListProducts(ctx, "nope")
	assert.ErrorIs(t, err, ErrStoreNotFound)

	// Returned slices are copies.
	products[0].Name = "changed"
	again, _ := c.ListProducts(ctx, "s1")
	assert.Equal(t, "Widget", again[0].Name)

	c.Clear()
	stores, _ = c.ListStores(ctx)
	assert.Empty(t, stores)
}

func TestInMemoryCatalog_CancelledContext(t *testing.T) {
	c := NewInMemoryCatalog()
	c.AddStore("s1", "Downtown")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListStores(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = c.ListProducts(ctx, "s1")
	assert.ErrorIs(t, err, context.Canceled)
}
