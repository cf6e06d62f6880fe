package models

import "github.com/shopspring/decimal"

// Store is a retail store together with the rollup of its products.
type Store struct {
	ID           string          `json:"id"`
	Name         string          `json:"store_name"`
	ProductCount int             `json:"product_count"`
	TotalStock   int             `json:"total_stock"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// RollupStore returns a copy of s with its rollup recomputed over products.
// Products that belong to other stores are ignored.
func RollupStore(s Store, products []Product) Store {
	s.ProductCount = 0
	s.TotalStock = 0
	s.TotalValue = decimal.Zero
	for _, p := range products {
		if p.StoreID != s.ID {
			continue
		}
		s.ProductCount++
		s.TotalStock += p.Stock
		s.TotalValue = s.TotalValue.Add(p.Value())
	}
	return s
}
