package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	apiclient "github.com/donaldgifford/meli-product-tracker/internal/api/client"
	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printBatch(resp *apiclient.BatchResponse) error {
	b := resp.Batch

	fmt.Printf("Category: %s (%s)\n", b.Category, b.CategoryID)
	fmt.Printf("Fetched:  %s\n", b.FetchedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Products: %d (%d degraded, %d skipped)\n\n",
		len(b.Products), resp.Degraded, len(b.Skipped))

	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tTITLE\tPRICE\tSOLD\tVISITS\tRATING\tSELLER LEVEL\n")
	for i := range b.Products {
		p := &b.Products[i]
		tw.writef("%s\t%s\t$%.2f\t%d\t%s\t%s\t%s\n",
			p.ID,
			truncate(p.Title, 40),
			p.Price,
			p.SoldQuantity,
			domain.FormatCount(p.Visits),
			domain.FormatRating(p.Rating.Average),
			domain.OrUnavailable(p.Seller.LevelID),
		)
	}
	if err := tw.finish(); err != nil {
		return err
	}

	if len(b.Skipped) > 0 {
		fmt.Println()
		for i := range b.Skipped {
			s := &b.Skipped[i]
			fmt.Printf("Skipped #%d (%s): %s\n", s.Index, s.ItemID, s.Reason)
		}
	}

	return nil
}

func printCategoriesTable(categories []apiclient.Category) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("NAME\tID\n")
	for i := range categories {
		tw.writef("%s\t%s\n", categories[i].Name, categories[i].ID)
	}
	return tw.finish()
}

func printModelsTable(resp *apiclient.ModelsResponse) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tNAME\tDEVELOPER\tMAX TOKENS\tSELECTED\n")
	for i := range resp.Models {
		m := &resp.Models[i]
		selected := ""
		if m.ID == resp.Selected {
			selected = "*"
		}
		tw.writef("%s\t%s\t%s\t%d\t%s\n",
			m.ID, m.Name, m.Developer, m.MaxTokens, selected)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
