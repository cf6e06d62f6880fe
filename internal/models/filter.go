package models

const FacetAll = "all"

// Stock level buckets.
const (
	StockLevelLow    = "low"
	StockLevelMedium = "medium"
	StockLevelHigh   = "high"
)

// Filter holds the raw facet values selected by the user.
// An empty value or "all" leaves the facet unrestricted.
type Filter struct {
	Store      string `json:"store,omitempty"`
	Category   string `json:"category,omitempty"`
	StockLevel string `json:"stock_level,omitempty"`
	PriceRange string `json:"price_range,omitempty"`
}

// FilterOptions lists the values a client can choose from for each facet.
type FilterOptions struct {
	Stores      []StoreOption `json:"stores"`
	Categories  []string      `json:"categories"`
	StockLevels []string      `json:"stock_levels"`
	PriceRanges []string      `json:"price_ranges"`
}

type StoreOption struct {
	ID   string `json:"id"`
	Name string `json:"store_name"`
}
