package models

import "github.com/shopspring/decimal"

// UncategorizedCategory is the category key used for products without a category id.
const UncategorizedCategory = "uncategorized"

// Product represents a product document of a store, denormalized with its store identity.
type Product struct {
	ID         string          `json:"id"`
	StoreID    string          `json:"store_id"`
	StoreName  string          `json:"store_name"`
	Name       string          `json:"product_name"`
	CategoryID string          `json:"category_id,omitempty"`
	Price      decimal.Decimal `json:"product_price"`
	Stock      int             `json:"stock"`
}

// Value is the inventory value of the product (price × stock).
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// Category returns the category key, falling back to UncategorizedCategory.
func (p Product) Category() string {
	if p.CategoryID == "" {
		return UncategorizedCategory
	}
	return p.CategoryID
}
