package app

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"hot-product-trends/internal/trend"
)

// Export fetches a category page, summarizes it, and renders the category
// ranking as CSV and/or a PNG bar chart.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}

	client := a.newFeedClient()
	products, err := client.FetchHotProducts(ctx, opts.Category, opts.Page)
	if err != nil {
		return err
	}

	summary := trend.Summarize(products)
	categories := summary.TopCategories
	if max := a.Config.Export.MaxCategories; len(categories) > max {
		categories = categories[:max]
	}
	if len(categories) == 0 {
		a.Logger.Info().Msg("no categories to export")
		return nil
	}

	a.Logger.Info().
		Int("products", summary.TotalProducts).
		Int("categories", len(categories)).
		Msg("exporting trend summary")

	if opts.CSVPath != "" {
		if err := writeCategoriesCSV(opts.CSVPath, categories); err != nil {
			return err
		}
	}

	if opts.PNGPath != "" {
		if err := writeCategoriesPNG(opts.PNGPath, categories); err != nil {
			return err
		}
	}

	return nil
}

func writeCategoriesCSV(path string, categories []trend.CategoryTrend) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"category_name", "product_count", "total_orders"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, c := range categories {
		record := []string{
			c.CategoryName,
			strconv.Itoa(c.ProductCount),
			strconv.Itoa(c.TotalOrders),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

func writeCategoriesPNG(path string, categories []trend.CategoryTrend) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	bars := make([]chart.Value, 0, len(categories))
	for _, c := range categories {
		bars = append(bars, chart.Value{
			Label: c.CategoryName,
			Value: float64(c.TotalOrders),
		})
	}

	graph := chart.BarChart{
		Title:    "Top categories by orders",
		Width:    1280,
		Height:   720,
		BarWidth: 80,
		Bars:     bars,
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
