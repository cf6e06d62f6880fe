package repo

import (
	"context"
	"sync"

	"github.com/rogerio-castellano/store-analytics/internal/models"
)

// InMemoryCatalog is an in-memory implementation of Catalog.
type InMemoryCatalog struct {
	mu       sync.RWMutex
	stores   []models.Store
	products map[string][]models.Product
}

// NewInMemoryCatalog creates a new, empty InMemoryCatalog.
func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{
		stores:   []models.Store{},
		products: map[string][]models.Product{},
	}
}

// AddStore registers a store. Adding an existing id replaces its name.
func (c *InMemoryCatalog) AddStore(id, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, s := range c.stores {
		if s.ID == id {
			c.stores[i].Name = name
			return
		}
	}
	c.stores = append(c.stores, models.Store{ID: id, Name: name})
	if _, ok := c.products[id]; !ok {
		c.products[id] = []models.Product{}
	}
}

// AddProduct appends a product to a store's sub-collection.
func (c *InMemoryCatalog) AddProduct(storeID string, p models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.products[storeID]; !ok {
		return ErrStoreNotFound
	}
	c.products[storeID] = append(c.products[storeID], p)
	return nil
}

// ListStores implements Catalog.
func (c *InMemoryCatalog) ListStores(ctx context.Context) ([]models.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Store, len(c.stores))
	copy(out, c.stores)
	return out, nil
}

// ListProducts implements Catalog.
func (c *InMemoryCatalog) ListProducts(ctx context.Context, storeID string) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	products, ok := c.products[storeID]
	if !ok {
		return nil, ErrStoreNotFound
	}
	out := make([]models.Product, len(products))
	copy(out, products)
	return out, nil
}

func (c *InMemoryCatalog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stores = []models.Store{}
	c.products = map[string][]models.Product{}
}
