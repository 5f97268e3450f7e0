package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	exportRoot := &cobra.Command{
		Use:   "export",
		Short: "Export the current batch as a spreadsheet",
	}

	exportRoot.AddCommand(
		exportFileCmd("csv", "Export the current batch as CSV"),
		exportFileCmd("xlsx", "Export the current batch as an Excel workbook"),
	)

	return exportRoot
}

func exportFileCmd(format, short string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     format,
		Short:   short,
		Example: fmt.Sprintf("  mpt export %s --out products.%s", format, format),
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()

			var (
				data []byte
				err  error
			)
			switch format {
			case "csv":
				data, err = c.ExportCSV(context.Background())
			default:
				data, err = c.ExportXLSX(context.Background())
			}
			if err != nil {
				return err
			}

			if err := os.WriteFile(out, data, 0o644); err != nil { //nolint:gosec
				return fmt.Errorf("writing %s: %w", out, err)
			}

			fmt.Printf("Wrote %d bytes to %s\n", len(data), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "products."+format, "output file path")

	return cmd
}
