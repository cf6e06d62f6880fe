package models

import "github.com/shopspring/decimal"

type CategoryRollup struct {
	Category     string          `json:"category"`
	Count        int             `json:"count"`
	TotalValue   decimal.Decimal `json:"total_value"`
	AveragePrice decimal.Decimal `json:"average_price"`
}

type Totals struct {
	TotalStores   int             `json:"total_stores"`
	TotalProducts int             `json:"total_products"`
	TotalStock    int             `json:"total_stock"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// Aggregates is the derived statistics bundle computed from a filtered product list.
type Aggregates struct {
	Stores           []Store          `json:"stores"`
	Categories       []CategoryRollup `json:"categories"`
	TopProducts      []Product        `json:"top_products"`
	LowStockProducts []Product        `json:"low_stock_products"`
	Totals           Totals           `json:"totals"`
}
