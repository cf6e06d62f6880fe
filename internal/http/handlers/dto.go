package handlers

import (
	"errors"

	"github.com/rogerio-castellano/store-analytics/internal/models"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ReloadRequest is the body of POST /dashboard/reload. Omitted facets mean "all".
// Stock level and price range are accepted in both the snake_case spelling of
// the JSON responses and the camelCase spelling of the query parameters.
type ReloadRequest struct {
	Store           string `json:"store,omitempty"`
	Category        string `json:"category,omitempty"`
	StockLevel      string `json:"stock_level,omitempty"`
	PriceRange      string `json:"price_range,omitempty"`
	StockLevelCamel string `json:"stockLevel,omitempty"`
	PriceRangeCamel string `json:"priceRange,omitempty"`
}

var errConflictingFacet = errors.New("facet given twice with different values")

// Filter merges both spellings into a models.Filter.
func (req ReloadRequest) Filter() (models.Filter, error) {
	stockLevel, err := oneOf(req.StockLevel, req.StockLevelCamel)
	if err != nil {
		return models.Filter{}, err
	}
	priceRange, err := oneOf(req.PriceRange, req.PriceRangeCamel)
	if err != nil {
		return models.Filter{}, err
	}
	return models.Filter{
		Store:      req.Store,
		Category:   req.Category,
		StockLevel: stockLevel,
		PriceRange: priceRange,
	}, nil
}

func oneOf(a, b string) (string, error) {
	switch {
	case a == "":
		return b, nil
	case b == "" || a == b:
		return a, nil
	}
	return "", errConflictingFacet
}

type HealthResponse struct {
	Status string `json:"status"`
}

