package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func modelsCmd() *cobra.Command {
	modelsRoot := &cobra.Command{
		Use:   "models",
		Short: "Manage summary models",
		Long: "List the available LLM summary models and select which one is used\n" +
			"for summary generation. Selecting a different model clears the current\n" +
			"batch so fresh data is fetched for the new model.",
	}

	modelsRoot.AddCommand(
		modelsListCmd(),
		modelsSelectCmd(),
	)

	return modelsRoot
}

func modelsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List available models",
		Example: `  mpt models list`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			resp, err := c.ListModels(context.Background())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			return printModelsTable(resp)
		},
	}
}

func modelsSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "select <model-id>",
		Short:   "Select the summary model",
		Example: `  mpt models select llama3-70b-8192`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			result, err := c.SelectModel(context.Background(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(result)
			}

			fmt.Printf("Selected model %s (max tokens %d)\n", result.ModelID, result.MaxTokens)
			if result.BatchCleared {
				fmt.Println("The current batch was cleared; fetch a category again.")
			}
			return nil
		},
	}
}
