package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hot-product-trends/internal/app"
)

var (
	fetchCategory string
	fetchPage     int
	fetchPersist  bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch one page of hot products and print the trend summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		if fetchCategory == "" {
			return fmt.Errorf("--category is required")
		}

		opts := app.FetchOptions{
			Category: fetchCategory,
			Page:     fetchPage,
			Persist:  fetchPersist,
		}

		return getApp().Fetch(cmd.Context(), opts)
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchCategory, "category", "", "Feed category identifier (required)")
	fetchCmd.Flags().IntVar(&fetchPage, "page", 1, "Feed page to fetch")
	fetchCmd.Flags().BoolVar(&fetchPersist, "persist", false, "Also persist fetched products to the document store")
}
