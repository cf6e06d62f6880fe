package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/store-analytics/internal/models"
	"github.com/rogerio-castellano/store-analytics/internal/repo"
	"golang.org/x/sync/errgroup"
)

// ErrLoadFailed wraps every error raised while reading the catalog.
var ErrLoadFailed = errors.New("load failed")

const DefaultLoadConcurrency = 4

// Inventory is the flattened result of one catalog load.
type Inventory struct {
	// Stores carry rollups over all of their products (no filter applied).
	Stores []models.Store
	// Products are ordered by store, then by their order within the store.
	Products []models.Product
}

type LoadOptions struct {
	// Concurrency bounds the number of product sub-collections read at once.
	Concurrency int
}

// Load reads every store and its products from catalog. Any read error
// aborts the load and is returned wrapped in ErrLoadFailed.
func Load(ctx context.Context, catalog repo.Catalog, opts LoadOptions) (Inventory, error) {
	if catalog == nil {
		return Inventory{}, fmt.Errorf("%w: no catalog configured", ErrLoadFailed)
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultLoadConcurrency
	}

	stores, err := catalog.ListStores(ctx)
	if err != nil {
		return Inventory{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	perStore := make([][]models.Product, len(stores))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, s := range stores {
		g.Go(func() error {
			products, err := catalog.ListProducts(gctx, s.ID)
			if err != nil {
				return fmt.Errorf("store %s: %w", s.ID, err)
			}
			for j := range products {
				products[j].StoreID = s.ID
				products[j].StoreName = s.Name
			}
			perStore[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Inventory{}, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	inv := Inventory{
		Stores:   make([]models.Store, len(stores)),
		Products: []models.Product{},
	}
	for i, s := range stores {
		inv.Stores[i] = models.RollupStore(s, perStore[i])
		inv.Products = append(inv.Products, perStore[i]...)
	}
	return inv, nil
}
