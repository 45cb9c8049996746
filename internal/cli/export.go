package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hot-product-trends/internal/app"
)

var (
	exportCategory string
	exportPage     int
	exportCSVPath  string
	exportPNGPath  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a category trend summary as CSV and/or PNG chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportCategory == "" {
			return fmt.Errorf("--category is required")
		}

		opts := app.ExportOptions{
			Category: exportCategory,
			Page:     exportPage,
			CSVPath:  exportCSVPath,
			PNGPath:  exportPNGPath,
		}

		return getApp().Export(cmd.Context(), opts)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "Feed category identifier (required)")
	exportCmd.Flags().IntVar(&exportPage, "page", 1, "Feed page to fetch")
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "Write top categories to this CSV file")
	exportCmd.Flags().StringVar(&exportPNGPath, "png", "", "Render top categories to this PNG file")
}
