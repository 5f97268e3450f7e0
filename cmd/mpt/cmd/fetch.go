package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func fetchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "fetch <category>",
		Short: "Fetch and enrich the most sold products for a category",
		Long: "Runs the server's enrichment pipeline for a category: the top products\n" +
			"by sold quantity are fetched from MercadoLibre and enriched with visits,\n" +
			"reviews, and seller reputation. The result replaces the current batch.",
		Example: `  # Fetch the default number of products
  mpt fetch Electronics

  # Fetch the top 50 cellphones
  mpt fetch "Cellphones & Smartphones" --limit 50`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			resp, err := c.Fetch(context.Background(), args[0], limit)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			return printBatch(resp)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of products to fetch (max 50)")

	return cmd
}

func batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "batch",
		Short:   "Show the current enriched batch",
		Example: `  mpt batch`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.GetBatch(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			return printBatch(resp)
		},
	}
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "categories",
		Short:   "List the available categories",
		Example: `  mpt categories`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			categories, err := c.ListCategories(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(categories)
			}

			fmt.Printf("%d categories available\n\n", len(categories))
			return printCategoriesTable(categories)
		},
	}
}
