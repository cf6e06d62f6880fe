package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/rogerio-castellano/store-analytics/internal/models"
)

// Catalog is the read side of the store/product document hierarchy.
type Catalog interface {
	// ListStores returns every store document. Rollup fields are left zero.
	ListStores(ctx context.Context) ([]models.Store, error)
	// ListProducts returns the product documents of a store. StoreID and
	// StoreName are filled in by the caller.
	ListProducts(ctx context.Context, storeID string) ([]models.Product, error)
}

// ErrStoreNotFound is returned when products are requested for an unknown store.
var ErrStoreNotFound = errors.New("store not found")

// ErrInvalidDocument marks a document whose fields cannot be decoded.
var ErrInvalidDocument = errors.New("invalid document")

func validateProduct(p models.Product) error {
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: negative price %s", ErrInvalidDocument, p.Price)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: negative stock %d", ErrInvalidDocument, p.Stock)
	}
	return nil
}
