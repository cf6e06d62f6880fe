package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rogerio-castellano/store-analytics/internal/models"
	"github.com/shopspring/decimal"
)

// ErrInvalidFilter is returned by ParseFilter for facet values it cannot interpret.
var ErrInvalidFilter = errors.New("invalid filter")

// Stock level bucket bounds (inclusive upper bounds of low and medium).
const (
	lowStockMax    = 10
	mediumStockMax = 50
)

// PriceRange is a parsed price-range facet. A nil Max means open-ended.
type PriceRange struct {
	Min decimal.Decimal
	Max *decimal.Decimal
}

// Contains reports whether price lies within the range (bounds inclusive).
func (r PriceRange) Contains(price decimal.Decimal) bool {
	if price.LessThan(r.Min) {
		return false
	}
	return r.Max == nil || !price.GreaterThan(*r.Max)
}

func (r PriceRange) String() string {
	if r.Max == nil {
		return r.Min.String() + "+"
	}
	return r.Min.String() + "-" + r.Max.String()
}

// Criteria is a validated Filter. Empty fields are inactive facets.
type Criteria struct {
	Store      string
	Category   string
	StockLevel string
	Price      *PriceRange
}

// DefaultFilter is the reset state: every facet unrestricted.
func DefaultFilter() models.Filter {
	return models.Filter{
		Store:      models.FacetAll,
		Category:   models.FacetAll,
		StockLevel: models.FacetAll,
		PriceRange: models.FacetAll,
	}
}

// ParseFilter validates the raw facet values of f. Unknown stock levels and
// malformed price ranges are rejected with ErrInvalidFilter.
func ParseFilter(f models.Filter) (Criteria, error) {
	var c Criteria
	c.Store = facetValue(f.Store)
	c.Category = facetValue(f.Category)

	switch level := strings.ToLower(facetValue(f.StockLevel)); level {
	case "", models.StockLevelLow, models.StockLevelMedium, models.StockLevelHigh:
		c.StockLevel = level
	default:
		return Criteria{}, fmt.Errorf("%w: unknown stock level %q", ErrInvalidFilter, f.StockLevel)
	}

	if raw := facetValue(f.PriceRange); raw != "" {
		r, err := ParsePriceRange(raw)
		if err != nil {
			return Criteria{}, err
		}
		c.Price = &r
	}
	return c, nil
}

// ParsePriceRange parses "min-max" or "min+".
func ParsePriceRange(s string) (PriceRange, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutSuffix(s, "+"); ok {
		minPrice, err := parseBound(rest, s)
		if err != nil {
			return PriceRange{}, err
		}
		return PriceRange{Min: minPrice}, nil
	}

	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return PriceRange{}, fmt.Errorf("%w: price range %q must be min-max or min+", ErrInvalidFilter, s)
	}
	minPrice, err := parseBound(lo, s)
	if err != nil {
		return PriceRange{}, err
	}
	maxPrice, err := parseBound(hi, s)
	if err != nil {
		return PriceRange{}, err
	}
	if maxPrice.LessThan(minPrice) {
		return PriceRange{}, fmt.Errorf("%w: price range %q has max below min", ErrInvalidFilter, s)
	}
	return PriceRange{Min: minPrice, Max: &maxPrice}, nil
}

func parseBound(v, whole string) (decimal.Decimal, error) {
	v = strings.TrimSpace(v)
	if v == "" || strings.ContainsAny(v, "+-") {
		return decimal.Decimal{}, fmt.Errorf("%w: malformed price range %q", ErrInvalidFilter, whole)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: malformed price range %q", ErrInvalidFilter, whole)
	}
	return d, nil
}

func facetValue(v string) string {
	v = strings.TrimSpace(v)
	if v == models.FacetAll {
		return ""
	}
	return v
}

// Filter returns the normalized raw form of c, with "all" for inactive facets.
func (c Criteria) Filter() models.Filter {
	f := DefaultFilter()
	if c.Store != "" {
		f.Store = c.Store
	}
	if c.Category != "" {
		f.Category = c.Category
	}
	if c.StockLevel != "" {
		f.StockLevel = c.StockLevel
	}
	if c.Price != nil {
		f.PriceRange = c.Price.String()
	}
	return f
}

// Matches reports whether p satisfies every active facet of c.
func (c Criteria) Matches(p models.Product) bool {
	if c.Store != "" && p.StoreID != c.Store {
		return false
	}
	if c.Category != "" && p.CategoryID != c.Category {
		return false
	}
	switch c.StockLevel {
	case models.StockLevelLow:
		if p.Stock > lowStockMax {
			return false
		}
	case models.StockLevelMedium:
		if p.Stock <= lowStockMax || p.Stock > mediumStockMax {
			return false
		}
	case models.StockLevelHigh:
		if p.Stock <= mediumStockMax {
			return false
		}
	}
	if c.Price != nil && !c.Price.Contains(p.Price) {
		return false
	}
	return true
}

// ApplyFilter returns the products matching c, in their original order.
func ApplyFilter(products []models.Product, c Criteria) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if c.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
