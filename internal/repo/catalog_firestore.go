package repo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/rogerio-castellano/store-analytics/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Document field names.
const (
	fieldStoreName    = "storeName"
	fieldProductName  = "productName"
	fieldProductPrice = "productPrice"
	fieldStock        = "stock"
	fieldCategoryID   = "categoryId"
)

// FirestoreCatalog implements Catalog on top of a Firestore database laid out
// as <stores>/{storeId}/<products>/{productId}.
type FirestoreCatalog struct {
	client             *firestore.Client
	storesCollection   string
	productsCollection string
	logger             *zap.Logger
}

func NewFirestoreCatalog(client *firestore.Client, storesCollection, productsCollection string, logger *zap.Logger) *FirestoreCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FirestoreCatalog{
		client:             client,
		storesCollection:   storesCollection,
		productsCollection: productsCollection,
		logger:             logger,
	}
}

// Compile-time check
var _ Catalog = (*FirestoreCatalog)(nil)

func (r *FirestoreCatalog) ListStores(ctx context.Context) ([]models.Store, error) {
	if r.client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.client.Collection(r.storesCollection).Documents(ctx)
	defer it.Stop()

	stores := []models.Store{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, firestoreError("list stores", err)
		}
		stores = append(stores, storeFromData(doc.Ref.ID, doc.Data()))
	}
	return stores, nil
}

func (r *FirestoreCatalog) ListProducts(ctx context.Context, storeID string) ([]models.Product, error) {
	if r.client == nil {
		return nil, errors.New("firestore client is nil")
	}
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return nil, ErrStoreNotFound
	}

	it := r.client.Collection(r.storesCollection).Doc(storeID).Collection(r.productsCollection).Documents(ctx)
	defer it.Stop()

	products := []models.Product{}
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, firestoreError("list products of store "+storeID, err)
		}
		p, err := productFromData(doc.Ref.ID, doc.Data())
		if err != nil {
			r.logger.Warn("skipping product document",
				zap.String("store_id", storeID), zap.String("product_id", doc.Ref.ID), zap.Error(err))
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func firestoreError(op string, err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s: %w", op, ErrStoreNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func storeFromData(id string, data map[string]any) models.Store {
	name, _ := data[fieldStoreName].(string)
	return models.Store{ID: id, Name: name}
}

// productFromData decodes a product document. A missing stock counts as zero;
// a missing or non-numeric price, a fractional stock and negative values are
// rejected with ErrInvalidDocument.
func productFromData(id string, data map[string]any) (models.Product, error) {
	p := models.Product{ID: id}
	p.Name, _ = data[fieldProductName].(string)

	switch c := data[fieldCategoryID].(type) {
	case nil:
	case string:
		p.CategoryID = c
	case int64:
		p.CategoryID = strconv.FormatInt(c, 10)
	case int:
		p.CategoryID = strconv.Itoa(c)
	default:
		return models.Product{}, fmt.Errorf("%w: %s has type %T", ErrInvalidDocument, fieldCategoryID, c)
	}

	raw, ok := data[fieldProductPrice]
	if !ok || raw == nil {
		return models.Product{}, fmt.Errorf("%w: missing %s", ErrInvalidDocument, fieldProductPrice)
	}
	price, err := decimalValue(raw)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, fieldProductPrice, err)
	}
	p.Price = price

	if raw, ok := data[fieldStock]; ok && raw != nil {
		stock, err := intValue(raw)
		if err != nil {
			return models.Product{}, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, fieldStock, err)
		}
		p.Stock = stock
	}

	if err := validateProduct(p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func decimalValue(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case int64:
		return decimal.NewFromInt(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Decimal{}, fmt.Errorf("not a finite number: %v", n)
		}
		return decimal.NewFromFloat(n), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("not a number: %T", v)
	}
}

func intValue(v any) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case int:
		return n, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}
