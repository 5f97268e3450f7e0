package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

const sheetName = "Products"

// WriteXLSX writes the batch as an Excel workbook with one sheet. Price,
// quantity, and review-count cells stay numeric so spreadsheet sorting
// works; enrichment fields keep their display strings (including the
// unavailable sentinel).
func WriteXLSX(w io.Writer, batch *domain.EnrichedBatch) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	for i := range batch.Products {
		p := &batch.Products[i]
		cells := []any{
			p.Title,
			p.Price,
			p.AvailableQuantity,
			p.Condition,
			domain.FormatCount(p.Visits),
			domain.FormatRating(p.Rating.Average),
			p.Rating.ReviewCount,
			p.Rating.Levels.String(),
			domain.OrUnavailable(p.Seller.LevelID),
			domain.OrUnavailable(p.Seller.PowerSellerStatus),
			domain.FormatCount(p.Seller.TransactionsTotal),
			p.Permalink,
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
