package main

import (
	"github.com/rogerio-castellano/store-analytics/internal/app"
	"github.com/rogerio-castellano/store-analytics/internal/dashboard"
	"github.com/rogerio-castellano/store-analytics/internal/models"
	"github.com/spf13/cobra"
)

func newReportCmd(c *cli) *cobra.Command {
	var (
		f      models.Filter
		output string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Load every store once and print the filtered dashboard",
		Long: `Load every store and its products, apply the filter and print the
snapshot: store rollups, category rollups, the top products by value, the
low-stock list and the totals.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			// Reject a bad filter before any backend is dialled.
			if _, err := dashboard.ParseFilter(f); err != nil {
				return err
			}

			a, err := app.Open(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			snap, err := a.Service.Compute(cmd.Context(), f)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output, snap)
		},
	}

	cmd.Flags().StringVar(&f.Store, "store", "", "Store id (all when empty)")
	cmd.Flags().StringVar(&f.Category, "category", "", "Category id (all when empty)")
	cmd.Flags().StringVar(&f.StockLevel, "stock-level", "", "low, medium or high")
	cmd.Flags().StringVar(&f.PriceRange, "price-range", "", "min-max or min+, e.g. 101-500")
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format: json or yaml")
	return cmd
}

func newFiltersCmd(c *cli) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Print the stores, categories, stock levels and price ranges to filter by",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			a, err := app.Open(cmd.Context(), c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			snap, err := a.Service.Compute(cmd.Context(), dashboard.DefaultFilter())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output, snap.Options)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputJSON, "Output format: json or yaml")
	return cmd
}
