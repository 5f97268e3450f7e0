package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func fetchCommand() *cobra.Command {
	var fetchLimit int

	fetchCmd := &cobra.Command{
		Use:   "fetch [category]",
		Short: "Fetch and enrich the most sold products for a category",
		Long:  "Sends a fetch request to the API server and displays the raw enriched batch.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args, fetchLimit)
		},
	}
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 20, "number of products to fetch")

	return fetchCmd
}

func init() {
	rootCmd.AddCommand(fetchCommand())
}

type fetchPayload struct {
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}

func runFetch(cmd *cobra.Command, args []string, limit int) error {
	payload, err := json.Marshal(fetchPayload{
		Category: args[0],
		Limit:    limit,
	})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		cmd.Context(),
		http.MethodPost,
		apiURL+"/api/v1/fetch",
		bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling fetch API: %w", err)
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

func printJSON(body []byte) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(pretty.String())
}
