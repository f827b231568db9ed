package ledger

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/finboard-dev/finboard/internal/model"
)

// XLSXLoader parses a GL export saved as an Excel workbook. The first sheet
// must follow the same column contract as the CSV export.
type XLSXLoader struct{}

// Format returns the loader name.
func (l *XLSXLoader) Format() string { return "xlsx" }

// Parse reads the first sheet of an XLSX workbook into ledger rows.
func (l *XLSXLoader) Parse(r io.Reader) ([]model.LedgerRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening GL workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("GL workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return parseRecords(records)
}
