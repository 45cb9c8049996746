package trend

import (
	"testing"

	"hot-product-trends/internal/feed"
)

func product(category string, orders int) feed.Product {
	return feed.Product{CategoryName: category, Orders: orders}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	if summary.TotalProducts != 0 {
		t.Fatalf("expected 0 total products, got %d", summary.TotalProducts)
	}
	if summary.TopProducts == nil || len(summary.TopProducts) != 0 {
		t.Fatalf("topProducts must be an empty slice, got %#v", summary.TopProducts)
	}
	if summary.TopCategories == nil || len(summary.TopCategories) != 0 {
		t.Fatalf("topCategories must be an empty slice, got %#v", summary.TopCategories)
	}
	if summary.PriceStats != nil {
		t.Fatal("priceStats must be absent for empty input")
	}
}

func TestSummarizeTotalEqualsInputLength(t *testing.T) {
	for _, n := range []int{1, 5, 10, 37} {
		products := make([]feed.Product, n)
		if got := Summarize(products).TotalProducts; got != n {
			t.Fatalf("n=%d: totalProducts=%d", n, got)
		}
	}
}

func TestSummarizeTopProductsBoundAndOrder(t *testing.T) {
	products := make([]feed.Product, 0, 15)
	for i := 0; i < 15; i++ {
		products = append(products, product("C", i*10))
	}

	summary := Summarize(products)
	if len(summary.TopProducts) != 10 {
		t.Fatalf("expected 10 top products, got %d", len(summary.TopProducts))
	}
	for i := 1; i < len(summary.TopProducts); i++ {
		if summary.TopProducts[i].Orders > summary.TopProducts[i-1].Orders {
			t.Fatalf("topProducts not sorted non-increasing at %d", i)
		}
	}
	if summary.TopProducts[0].Orders != 140 {
		t.Fatalf("expected highest orders first, got %d", summary.TopProducts[0].Orders)
	}
}

func TestSummarizeStableTies(t *testing.T) {
	products := []feed.Product{
		{Title: "first", Orders: 100},
		{Title: "second", Orders: 100},
		{Title: "third", Orders: 100},
		{Title: "winner", Orders: 200},
	}

	top := Summarize(products).TopProducts
	want := []string{"winner", "first", "second", "third"}
	for i, title := range want {
		if top[i].Title != title {
			t.Fatalf("tie order not stable: position %d is %q, want %q", i, top[i].Title, title)
		}
	}
}

func TestSummarizeCategoryScenario(t *testing.T) {
	// 12 products, 3 categories: A 5 products / 1000 orders,
	// B 4 products / 4000 orders, C 3 products / 50 orders.
	products := []feed.Product{
		product("A", 200), product("A", 200), product("A", 200), product("A", 200), product("A", 200),
		product("B", 1000), product("B", 1000), product("B", 1000), product("B", 1000),
		product("C", 20), product("C", 20), product("C", 10),
	}

	got := Summarize(products).TopCategories
	want := []CategoryTrend{
		{CategoryName: "B", ProductCount: 4, TotalOrders: 4000},
		{CategoryName: "A", ProductCount: 5, TotalOrders: 1000},
		{CategoryName: "C", ProductCount: 3, TotalOrders: 50},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSummarizeCategoryBound(t *testing.T) {
	products := make([]feed.Product, 0, 8)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		products = append(products, product(name, 1))
	}
	if got := len(Summarize(products).TopCategories); got != 5 {
		t.Fatalf("expected 5 categories, got %d", got)
	}
}

func TestSummarizeCategoryTiesKeepFirstSeenOrder(t *testing.T) {
	products := []feed.Product{
		product("late-but-first-seen", 10),
		product("second-seen", 10),
	}
	got := Summarize(products).TopCategories
	if got[0].CategoryName != "late-but-first-seen" || got[1].CategoryName != "second-seen" {
		t.Fatalf("tied categories must keep first-seen order, got %+v", got)
	}
}

func TestSummarizeUnknownSentinel(t *testing.T) {
	products := []feed.Product{
		product("", 5),
		product("", 7),
		product("Named", 1),
	}

	got := Summarize(products).TopCategories
	if got[0].CategoryName != UnknownCategory {
		t.Fatalf("expected %q first, got %q", UnknownCategory, got[0].CategoryName)
	}
	if got[0].ProductCount != 2 || got[0].TotalOrders != 12 {
		t.Fatalf("all uncategorized records collapse into one bucket, got %+v", got[0])
	}
}

func TestSummarizeZeroOrdersCounted(t *testing.T) {
	products := []feed.Product{product("A", 0), product("A", 0)}
	got := Summarize(products).TopCategories
	if got[0].ProductCount != 2 || got[0].TotalOrders != 0 {
		t.Fatalf("zero-order products still count, got %+v", got[0])
	}
}

func TestSummarizeDuplicateIDsNotDeduplicated(t *testing.T) {
	id := int64(42)
	products := []feed.Product{
		{ID: &id, CategoryName: "A", Orders: 10},
		{ID: &id, CategoryName: "A", Orders: 10},
	}
	summary := Summarize(products)
	if summary.TotalProducts != 2 || summary.TopCategories[0].ProductCount != 2 {
		t.Fatalf("duplicate ids must each count, got %+v", summary)
	}
}

func TestSummarizeDoesNotMutateInput(t *testing.T) {
	products := []feed.Product{
		{Title: "low", Orders: 1},
		{Title: "high", Orders: 9},
	}
	Summarize(products)
	if products[0].Title != "low" || products[1].Title != "high" {
		t.Fatalf("input order mutated: %+v", products)
	}
}

func TestSummarizePriceStats(t *testing.T) {
	products := []feed.Product{
		{Price: "1.50", Orders: 1},
		{Price: "2.50", Orders: 1},
		{Price: "not-a-price", Orders: 1},
		{Orders: 1},
	}

	stats := Summarize(products).PriceStats
	if stats == nil {
		t.Fatal("expected price stats")
	}
	if stats.Count != 2 {
		t.Fatalf("expected 2 parseable prices, got %d", stats.Count)
	}
	if stats.MinPrice != "1.5" || stats.MaxPrice != "2.5" || stats.AvgPrice != "2" {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestSummarizePriceStatsAbsent(t *testing.T) {
	products := []feed.Product{{Price: "n/a"}, {}}
	if stats := Summarize(products).PriceStats; stats != nil {
		t.Fatalf("no parseable prices must omit stats, got %+v", stats)
	}
}
