package aging

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	arNumFields = 9
	apNumFields = 9
)

// ReadARInvoices reads a receivables CSV:
// invoice_no,customer_name,project_manager,job_no,invoice_date,due_date,invoice_amount,amount_due,retainage,days_outstanding
// (days_outstanding optional as a trailing column on older exports).
func ReadARInvoices(r io.Reader) ([]ARInvoice, error) {
	records, err := readInvoiceCSV(r, arNumFields)
	if err != nil {
		return nil, fmt.Errorf("reading AR invoices: %w", err)
	}

	var out []ARInvoice
	for i, rec := range records {
		inv := ARInvoice{
			InvoiceNo:      rec[0],
			CustomerName:   rec[1],
			ProjectManager: rec[2],
			JobNo:          rec[3],
			InvoiceDate:    rec[4],
			DueDate:        rec[5],
		}
		inv.InvoiceAmount = coerce(rec[6])
		inv.AmountDue = coerce(rec[7])
		inv.RetainageAmount = coerce(rec[8])
		if len(rec) > 9 {
			inv.DaysOutstanding = coerceDays(rec[9])
		}
		if inv.InvoiceNo == "" {
			return nil, fmt.Errorf("AR row %d: missing invoice_no", i+2)
		}
		out = append(out, inv)
	}
	return out, nil
}

// ReadAPInvoices reads a payables CSV:
// invoice_no,vendor_name,project_manager,job_no,invoice_date,due_date,invoice_amount,remaining_balance,retainage,days_outstanding
func ReadAPInvoices(r io.Reader) ([]APInvoice, error) {
	records, err := readInvoiceCSV(r, apNumFields)
	if err != nil {
		return nil, fmt.Errorf("reading AP invoices: %w", err)
	}

	var out []APInvoice
	for i, rec := range records {
		inv := APInvoice{
			InvoiceNo:      rec[0],
			VendorName:     rec[1],
			ProjectManager: rec[2],
			JobNo:          rec[3],
			InvoiceDate:    rec[4],
			DueDate:        rec[5],
		}
		inv.InvoiceAmount = coerce(rec[6])
		inv.RemainingBalance = coerce(rec[7])
		inv.RetainageAmount = coerce(rec[8])
		if len(rec) > 9 {
			inv.DaysOutstanding = coerceDays(rec[9])
		}
		if inv.InvoiceNo == "" {
			return nil, fmt.Errorf("AP row %d: missing invoice_no", i+2)
		}
		out = append(out, inv)
	}
	return out, nil
}

func readInvoiceCSV(r io.Reader, minFields int) ([][]string, error) {
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

func coerceDays(cell string) int {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	// Some exports format days as a float.
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
