package export

import (
	"encoding/csv"
	"fmt"
	"io"

	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

// WriteCSV writes the batch as CSV with the canonical column order.
func WriteCSV(w io.Writer, batch *domain.EnrichedBatch) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for i := range batch.Products {
		if err := cw.Write(row(&batch.Products[i])); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}
