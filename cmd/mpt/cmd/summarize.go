package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func summarizeCmd() *cobra.Command {
	var (
		maxTokens int
		saved     bool
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Generate an AI summary of the current batch",
		Long: "Streams an LLM-generated summary of the current enriched batch to the\n" +
			"terminal as it is produced. With --saved, prints the last generated\n" +
			"summary instead of generating a new one.",
		Example: `  # Stream a fresh summary
  mpt summarize

  # Cap the response length
  mpt summarize --max-tokens 512

  # Print the last generated summary without calling the model again
  mpt summarize --saved`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()

			if saved {
				text, err := c.DownloadSummary(context.Background())
				if err != nil {
					return err
				}
				fmt.Println(text)
				return nil
			}

			_, err := c.StreamSummary(context.Background(), maxTokens, func(fragment string) {
				fmt.Print(fragment)
			})
			if err != nil {
				return err
			}
			fmt.Println()
			return nil
		},
	}
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "max response tokens (0 = model limit)")
	cmd.Flags().BoolVar(&saved, "saved", false, "print the last generated summary")

	return cmd
}
