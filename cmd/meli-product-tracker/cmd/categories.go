package cmd

import (
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func categoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the available categories",
		Long:  "Queries the API server for the category table.",
		RunE:  runCategories,
	}
}

func init() {
	rootCmd.AddCommand(categoriesCommand())
}

func runCategories(cmd *cobra.Command, _ []string) error {
	req, err := http.NewRequestWithContext(
		cmd.Context(),
		http.MethodGet,
		apiURL+"/api/v1/categories",
		http.NoBody,
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling categories API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned %d: %s", resp.StatusCode, body)
	}

	printJSON(body)
	return nil
}
