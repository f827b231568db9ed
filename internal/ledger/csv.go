package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/model"
)

const (
	colAccountNum  = 0
	colDescription = 1
)

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// CSVLoader parses a GL export in CSV form: an Account_Num and
// Account_Description column followed by one column per "YYYY-MM" month.
type CSVLoader struct{}

// Format returns the loader name.
func (l *CSVLoader) Format() string { return "csv" }

// Parse reads a GL CSV export into ledger rows.
func (l *CSVLoader) Parse(r io.Reader) ([]model.LedgerRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // exports vary in trailing columns

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading GL CSV: %w", err)
	}
	return parseRecords(records)
}

// parseRecords converts a header row plus data rows into ledger rows.
// Month columns are identified by their "YYYY-MM" header; any other column
// beyond the first two is ignored. Blank or non-numeric cells coerce to
// zero, and rows without a numeric account number are skipped: the engine
// degrades to zero activity rather than refusing the snapshot.
func parseRecords(records [][]string) ([]model.LedgerRow, error) {
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("GL header has %d columns, want at least 2", len(header))
	}

	monthCols := make(map[int]string)
	for i, name := range header[colDescription+1:] {
		key := strings.TrimSpace(name)
		if monthKeyPattern.MatchString(key) {
			monthCols[i+colDescription+1] = key
		}
	}

	var rows []model.LedgerRow
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		acct, err := strconv.Atoi(strings.TrimSpace(rec[colAccountNum]))
		if err != nil {
			continue
		}

		row := model.LedgerRow{
			AccountNum:  acct,
			Description: strings.TrimSpace(rec[colDescription]),
			Amounts:     make(map[string]decimal.Decimal),
		}
		for col, month := range monthCols {
			if col >= len(rec) {
				continue
			}
			row.Amounts[month] = coerceAmount(rec[col])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// coerceAmount parses a monetary cell, treating blank or malformed values
// as zero.
func coerceAmount(cell string) decimal.Decimal {
	s := strings.TrimSpace(cell)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", "")
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + s[1:len(s)-1] // accounting-style negatives
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
