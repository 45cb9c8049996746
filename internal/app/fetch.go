package app

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"hot-product-trends/internal/storage"
	"hot-product-trends/internal/trend"
)

// Fetch performs a one-shot fetch for a category/page and prints the trend
// summary. With Persist set, records are also written to the document store.
func (a *App) Fetch(ctx context.Context, opts FetchOptions) error {
	if opts.Page <= 0 {
		opts.Page = 1
	}

	client := a.newFeedClient()
	products, err := client.FetchHotProducts(ctx, opts.Category, opts.Page)
	if err != nil {
		return err
	}

	if opts.Persist {
		store, closeStore := a.openStore()
		if store == nil {
			a.Logger.Warn().Msg("database.dsn not configured; skipping persist")
		} else {
			defer closeStore()
			sink := storage.NewSink(store, a.Config.Database.PersistTimeout, a.Logger)
			sink.PersistBestEffort(products)
			sink.Wait()
		}
	}

	summary := trend.Summarize(products)
	printSummary(summary)
	return nil
}

func printSummary(summary trend.Summary) {
	fmt.Fprintf(os.Stdout, "total products: %d\n\n", summary.TotalProducts)

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Orders\tPrice\tCategory\tTitle")
	for _, p := range summary.TopProducts {
		fmt.Fprintf(writer, "%d\t%s\t%s\t%s\n", p.Orders, p.Price, p.CategoryName, p.Title)
	}
	writer.Flush()

	fmt.Fprintln(os.Stdout)
	writer = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Category\tProducts\tTotal Orders")
	for _, c := range summary.TopCategories {
		fmt.Fprintf(writer, "%s\t%d\t%d\n", c.CategoryName, c.ProductCount, c.TotalOrders)
	}
	writer.Flush()

	if summary.PriceStats != nil {
		fmt.Fprintf(os.Stdout, "\nprices: n=%d min=%s max=%s avg=%s\n",
			summary.PriceStats.Count,
			summary.PriceStats.MinPrice,
			summary.PriceStats.MaxPrice,
			summary.PriceStats.AvgPrice,
		)
	}
}
