package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"catalog.GO/config"
	"catalog.GO/export"
	"catalog.GO/model/entity"
	catalogService "catalog.GO/service/catalog"
	"catalog.GO/view"
)

var (
	exportSearch   string
	exportSort     string
	exportPage     int
	exportPageSize int
	exportDir      string
	exportAll      bool
)

var exportCmd = &cobra.Command{
	Use:   "products:export",
	Short: "Export products from the remote catalog to a CSV file",
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()

		client := catalogService.NewClient(config.LoadRemoteConfig())
		raw, err := client.List(context.Background())
		if err != nil {
			fmt.Printf("Fetch failed: %v\n", err)
			os.Exit(1)
		}
		products, err := entity.Normalize(raw)
		if err != nil {
			fmt.Printf("Malformed response: %v\n", err)
			os.Exit(1)
		}
		fetchTime := time.Since(start)

		rows := products
		matched := len(products)
		if !exportAll {
			res := view.Compute(products, exportSearch, parseSortFlag(exportSort), view.Cursor{
				Page:     exportPage,
				PageSize: exportPageSize,
			})
			rows = res.Rows
			matched = res.TotalCount
		}

		if err := os.MkdirAll(exportDir, 0o755); err != nil {
			fmt.Printf("Export failed: %v\n", err)
			os.Exit(1)
		}
		path := filepath.Join(exportDir, export.FileName())
		if err := os.WriteFile(path, []byte(export.Encode(rows)), 0o644); err != nil {
			fmt.Printf("Export failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf(`
=== Export Report ===
Fetched:      %d
Matched:      %d
Exported:     %d
File:         %s
Total time:   %s
  - Fetch:    %s
=====================
`, len(products), matched, len(rows), path,
			time.Since(start).Round(time.Millisecond),
			fetchTime.Round(time.Millisecond))
	},
}

func parseSortFlag(s string) view.SortOrder {
	switch view.SortOrder(s) {
	case view.SortTitleAsc, view.SortTitleDesc, view.SortPriceAsc, view.SortPriceDesc:
		return view.SortOrder(s)
	}
	return view.SortNone
}

func init() {
	exportCmd.Flags().StringVarP(&exportSearch, "search", "s", "", "Filter by name substring before exporting")
	exportCmd.Flags().StringVar(&exportSort, "sort", "", "Sort order: title-asc, title-desc, price-asc, price-desc")
	exportCmd.Flags().IntVarP(&exportPage, "page", "p", 1, "Page to export")
	exportCmd.Flags().IntVar(&exportPageSize, "page-size", 10, "Rows per page")
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "var/export", "Output directory")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export the full catalog, ignoring page flags")
	rootCmd.AddCommand(exportCmd)
}
