package jobs

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

const budgetNumFields = 9

// ReadBudgets reads a job budget CSV:
// job_no,job_description,project_manager,customer_name,job_status,original_contract,revised_contract,original_cost,revised_cost
func ReadBudgets(r io.Reader) ([]Budget, error) {
	records, err := readJobCSV(r, budgetNumFields)
	if err != nil {
		return nil, fmt.Errorf("reading job budgets: %w", err)
	}

	var out []Budget
	for i, rec := range records {
		b := Budget{
			JobNo:          strings.TrimSpace(rec[0]),
			Description:    strings.TrimSpace(rec[1]),
			ProjectManager: strings.TrimSpace(rec[2]),
			CustomerName:   strings.TrimSpace(rec[3]),
			Status:         Status(strings.TrimSpace(rec[4])),
		}
		b.OriginalContract = coerce(rec[5])
		b.Contract = coerce(rec[6])
		b.OriginalCost = coerce(rec[7])
		b.BudgetCost = coerce(rec[8])
		if b.JobNo == "" {
			return nil, fmt.Errorf("budget row %d: missing job_no", i+2)
		}
		out = append(out, b)
	}
	return out, nil
}

// ReadActuals reads an actual-cost CSV: job_no,amount. A job may repeat.
func ReadActuals(r io.Reader) ([]Actual, error) {
	records, err := readJobCSV(r, 2)
	if err != nil {
		return nil, fmt.Errorf("reading job actuals: %w", err)
	}

	var out []Actual
	for i, rec := range records {
		jobNo := strings.TrimSpace(rec[0])
		if jobNo == "" {
			return nil, fmt.Errorf("actuals row %d: missing job_no", i+2)
		}
		out = append(out, Actual{JobNo: jobNo, Amount: coerce(rec[1])})
	}
	return out, nil
}

// ReadBilled reads a billed-revenue CSV: job_no,billed_revenue.
func ReadBilled(r io.Reader) ([]Billed, error) {
	records, err := readJobCSV(r, 2)
	if err != nil {
		return nil, fmt.Errorf("reading billed revenue: %w", err)
	}

	var out []Billed
	for i, rec := range records {
		jobNo := strings.TrimSpace(rec[0])
		if jobNo == "" {
			return nil, fmt.Errorf("billed row %d: missing job_no", i+2)
		}
		out = append(out, Billed{JobNo: jobNo, Amount: coerce(rec[1])})
	}
	return out, nil
}

func readJobCSV(r io.Reader, minFields int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	var out [][]string
	for i, rec := range records[1:] {
		if len(rec) < minFields {
			return nil, fmt.Errorf("row %d: %d fields, want at least %d", i+2, len(rec), minFields)
		}
		out = append(out, rec)
	}
	return out, nil
}

// coerce parses a monetary cell, treating blanks and junk as zero, matching
// the GL loader's behavior.
func coerce(cell string) decimal.Decimal {
	s := strings.TrimSpace(strings.ReplaceAll(cell, ",", ""))
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
