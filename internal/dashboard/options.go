package dashboard

import "github.com/rogerio-castellano/store-analytics/internal/models"

// PriceRangePresets are the price ranges offered to clients.
var PriceRangePresets = []string{"0-100", "101-500", "501+"}

// BuildFilterOptions lists the selectable facet values for an inventory.
// Categories are the distinct non-empty category ids over all products, in
// order of first appearance.
func BuildFilterOptions(inv Inventory) models.FilterOptions {
	opts := models.FilterOptions{
		Stores:      make([]models.StoreOption, len(inv.Stores)),
		Categories:  []string{},
		StockLevels: []string{models.StockLevelLow, models.StockLevelMedium, models.StockLevelHigh},
		PriceRanges: append([]string(nil), PriceRangePresets...),
	}
	for i, s := range inv.Stores {
		opts.Stores[i] = models.StoreOption{ID: s.ID, Name: s.Name}
	}

	seen := map[string]bool{}
	for _, p := range inv.Products {
		if p.CategoryID == "" || seen[p.CategoryID] {
			continue
		}
		seen[p.CategoryID] = true
		opts.Categories = append(opts.Categories, p.CategoryID)
	}
	return opts
}
