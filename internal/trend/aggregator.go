package trend

import (
	"sort"

	"github.com/shopspring/decimal"

	"hot-product-trends/internal/feed"
)

// UnknownCategory is the sentinel bucket for records without a category.
const UnknownCategory = "Unknown"

const (
	maxTopProducts   = 10
	maxTopCategories = 5
)

// CategoryTrend aggregates demand for one category.
type CategoryTrend struct {
	CategoryName string `json:"categoryName"`
	ProductCount int    `json:"productCount"`
	TotalOrders  int    `json:"totalOrders"`
}

// PriceStats summarises the parseable sale prices of a product set.
type PriceStats struct {
	Count    int    `json:"count"`
	MinPrice string `json:"minPrice"`
	MaxPrice string `json:"maxPrice"`
	AvgPrice string `json:"avgPrice"`
}

// Summary is the derived trend view returned to callers. It is computed
// fresh per call and never persisted.
type Summary struct {
	TotalProducts int             `json:"totalProducts"`
	TopProducts   []feed.Product  `json:"topProducts"`
	TopCategories []CategoryTrend `json:"topCategories"`
	PriceStats    *PriceStats     `json:"priceStats,omitempty"`
}

// Summarize derives ranked trends from a normalized product list. It is a
// pure function: the input is not mutated and output order is deterministic.
// Every record counts once; duplicate product ids are not collapsed.
func Summarize(products []feed.Product) Summary {
	return Summary{
		TotalProducts: len(products),
		TopProducts:   topProducts(products),
		TopCategories: topCategories(products),
		PriceStats:    summarizePrices(products),
	}
}

func topProducts(products []feed.Product) []feed.Product {
	ranked := make([]feed.Product, len(products))
	copy(ranked, products)

	// Stable keeps input order among equal order counts.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Orders > ranked[j].Orders
	})

	if len(ranked) > maxTopProducts {
		ranked = ranked[:maxTopProducts]
	}
	return ranked
}

func topCategories(products []feed.Product) []CategoryTrend {
	index := make(map[string]int, len(products))
	groups := make([]CategoryTrend, 0)

	for _, p := range products {
		name := p.CategoryName
		if name == "" {
			name = UnknownCategory
		}
		i, seen := index[name]
		if !seen {
			i = len(groups)
			index[name] = i
			groups = append(groups, CategoryTrend{CategoryName: name})
		}
		groups[i].ProductCount++
		groups[i].TotalOrders += p.Orders
	}

	// Stable keeps first-seen category order among equal order sums.
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].TotalOrders > groups[j].TotalOrders
	})

	if len(groups) > maxTopCategories {
		groups = groups[:maxTopCategories]
	}
	return groups
}

// summarizePrices folds the prices that parse as decimals. Prices stay text
// everywhere else; decimal arithmetic here avoids float drift in the derived
// view. Returns nil when no price parses, so the field is omitted from JSON.
func summarizePrices(products []feed.Product) *PriceStats {
	var (
		count int
		sum   decimal.Decimal
		min   decimal.Decimal
		max   decimal.Decimal
	)

	for _, p := range products {
		if p.Price == "" {
			continue
		}
		value, err := decimal.NewFromString(p.Price)
		if err != nil {
			continue
		}
		if count == 0 {
			min, max = value, value
		} else {
			if value.LessThan(min) {
				min = value
			}
			if value.GreaterThan(max) {
				max = value
			}
		}
		sum = sum.Add(value)
		count++
	}

	if count == 0 {
		return nil
	}

	avg := sum.Div(decimal.NewFromInt(int64(count))).Round(2)
	return &PriceStats{
		Count:    count,
		MinPrice: min.String(),
		MaxPrice: max.String(),
		AvgPrice: avg.String(),
	}
}
