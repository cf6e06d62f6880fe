package dashboard

import (
	"sort"

	"github.com/rogerio-castellano/store-analytics/internal/models"
	"github.com/shopspring/decimal"
)

const (
	TopProductsLimit = 5
	LowStockLimit    = 5
	// LowStockThreshold is exclusive: a product is low on stock below it.
	LowStockThreshold = 10
)

// Aggregate derives the dashboard statistics from the filtered products.
// stores is the full, unfiltered store list; every store gets a rollup, even
// when none of its products matched.
func Aggregate(products []models.Product, stores []models.Store) models.Aggregates {
	return models.Aggregates{
		Stores:           RollupStores(products, stores),
		Categories:       RollupCategories(products),
		TopProducts:      TopByValue(products, TopProductsLimit),
		LowStockProducts: LowStock(products, LowStockLimit),
		Totals:           ComputeTotals(products, len(stores)),
	}
}

func RollupStores(products []models.Product, stores []models.Store) []models.Store {
	out := make([]models.Store, len(stores))
	for i, s := range stores {
		out[i] = models.RollupStore(s, products)
	}
	return out
}

// RollupCategories groups products by category key in order of first appearance.
func RollupCategories(products []models.Product) []models.CategoryRollup {
	index := map[string]int{}
	rollups := []models.CategoryRollup{}
	priceSums := []decimal.Decimal{}

	for _, p := range products {
		key := p.Category()
		i, ok := index[key]
		if !ok {
			i = len(rollups)
			index[key] = i
			rollups = append(rollups, models.CategoryRollup{Category: key, TotalValue: decimal.Zero})
			priceSums = append(priceSums, decimal.Zero)
		}
		rollups[i].Count++
		rollups[i].TotalValue = rollups[i].TotalValue.Add(p.Value())
		priceSums[i] = priceSums[i].Add(p.Price)
	}

	for i := range rollups {
		rollups[i].AveragePrice = averagePrice(priceSums[i], rollups[i].Count)
	}
	return rollups
}

// averagePrice is zero for an empty group.
func averagePrice(sum decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

// TopByValue returns up to limit products ordered by descending value.
// Ties keep their input order.
func TopByValue(products []models.Product, limit int) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value().GreaterThan(sorted[j].Value())
	})
	return head(sorted, limit)
}

// LowStock returns up to limit products below LowStockThreshold, ordered by
// ascending stock. Ties keep their input order.
func LowStock(products []models.Product, limit int) []models.Product {
	low := []models.Product{}
	for _, p := range products {
		if p.Stock < LowStockThreshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Stock < low[j].Stock
	})
	return head(low, limit)
}

// ComputeTotals sums products; storeCount is passed through unfiltered.
func ComputeTotals(products []models.Product, storeCount int) models.Totals {
	t := models.Totals{TotalStores: storeCount, TotalValue: decimal.Zero}
	for _, p := range products {
		t.TotalProducts++
		t.TotalStock += p.Stock
		t.TotalValue = t.TotalValue.Add(p.Value())
	}
	return t
}

func head(products []models.Product, limit int) []models.Product {
	if limit >= 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}
