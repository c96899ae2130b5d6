// Package report exports ledger records to spreadsheet files for finance
// review.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/chairulridjaal/invoice-chain-agent/internal/ledger"
)

const sheetName = "Ledger"

var headers = []string{
	"Record ID",
	"Invoice ID",
	"Vendor",
	"Tax ID",
	"Amount",
	"Invoice Date",
	"Status",
	"Score",
	"Fraud Risk",
	"Transaction Hash",
	"Recorded At",
	"Explanation",
}

// Exporter writes ledger records to .xlsx workbooks.
type Exporter struct{}

// NewExporter creates an exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Export writes one workbook with a header row and one row per record.
func (e *Exporter) Export(records []*ledger.Record, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, rec := range records {
		row := i + 2
		values := []interface{}{
			rec.ID,
			rec.InvoiceID,
			rec.VendorName,
			rec.TaxID,
			rec.Amount,
			rec.Date,
			rec.Status,
			rec.Score,
			rec.FraudRisk(),
			rec.TransactionHash,
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.Explanation,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write record row: %w", err)
			}
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
