package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"
)

// Show prints recently persisted product documents.
func (a *App) Show(ctx context.Context, opts ShowOptions) error {
	store, closeStore := a.openStore()
	if store == nil {
		return errors.New("database not configured; cannot show products")
	}
	defer closeStore()

	docs, err := store.ListRecentProducts(ctx, opts.Limit)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		fmt.Fprintln(os.Stdout, "no products found")
		return nil
	}

	count, err := store.CountProducts(ctx)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Fetched (UTC)\tOrders\tPrice\tCategory\tTitle")
	for _, doc := range docs {
		fmt.Fprintf(
			writer,
			"%s\t%d\t%s\t%s\t%s\n",
			doc.FetchedAt.UTC().Format(time.RFC3339),
			doc.Orders,
			doc.Price,
			doc.CategoryName,
			sanitizeInline(doc.Title),
		)
	}
	writer.Flush()

	fmt.Fprintf(os.Stdout, "\n%d of %d stored documents\n", len(docs), count)
	return nil
}

func sanitizeInline(v string) string {
	cleaned := strings.ReplaceAll(v, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	return cleaned
}
