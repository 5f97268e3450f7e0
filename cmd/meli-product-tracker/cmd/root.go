// Package cmd implements the CLI commands for meli-product-tracker.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	apiURL  string
)

var rootCmd = &cobra.Command{
	Use:   "meli-product-tracker",
	Short: "Track and summarize top MercadoLibre products",
	Long:  "An API-first service that fetches the most sold products per MercadoLibre category, enriches them with visits, reviews and seller reputation, and generates LLM-powered market summaries.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().
		StringVar(&apiURL, "api-url", "http://localhost:8080", "API server URL")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
