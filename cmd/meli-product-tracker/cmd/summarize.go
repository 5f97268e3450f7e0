package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

func summarizeCommand() *cobra.Command {
	var maxTokens int

	summarizeCmd := &cobra.Command{
		Use:   "summarize",
		Short: "Stream an AI summary of the current batch",
		Long:  "Asks the API server to generate a summary of the current batch and streams it to the terminal.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummarize(cmd, maxTokens)
		},
	}
	summarizeCmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "max response tokens (0 = model limit)")

	return summarizeCmd
}

func init() {
	rootCmd.AddCommand(summarizeCommand())
}

func runSummarize(cmd *cobra.Command, maxTokens int) error {
	url := apiURL + "/api/v1/summary/stream"
	if maxTokens > 0 {
		url = fmt.Sprintf("%s?max_tokens=%d", url, maxTokens)
	}

	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling summary API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned %d: %s", resp.StatusCode, body)
	}

	scanner := bufio.NewScanner(resp.Body)
	var event string
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data := strings.TrimPrefix(line, "data: ")
			switch event {
			case "error":
				fmt.Println()
				return fmt.Errorf("summary stream failed: %s", data)
			case "done":
				fmt.Println()
				return nil
			default:
				var fragment struct {
					Text string `json:"text"`
				}
				if err := json.Unmarshal([]byte(data), &fragment); err == nil {
					fmt.Print(fragment.Text)
				}
			}
		case line == "":
			event = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stream: %w", err)
	}

	fmt.Println()
	return nil
}
