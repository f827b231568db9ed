// Package aging computes receivable and payable invoice metrics: per-invoice
// collectible amounts and aging buckets, plus customer/vendor rollups with
// weighted days outstanding.
package aging

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Bucket classifies an invoice by days outstanding.
type Bucket string

const (
	BucketCurrent Bucket = "current"
	Bucket31to60  Bucket = "days_31_60"
	Bucket61to90  Bucket = "days_61_90"
	Bucket90Plus  Bucket = "days_90_plus"
)

// bucketFor maps days outstanding to an aging bucket.
func bucketFor(days int) Bucket {
	switch {
	case days <= 30:
		return BucketCurrent
	case days <= 60:
		return Bucket31to60
	case days <= 90:
		return Bucket61to90
	default:
		return Bucket90Plus
	}
}

// ARInvoice is one raw receivable invoice record.
type ARInvoice struct {
	InvoiceNo       string
	CustomerName    string
	ProjectManager  string
	JobNo           string
	InvoiceDate     string
	DueDate         string
	InvoiceAmount   decimal.Decimal
	AmountDue       decimal.Decimal
	RetainageAmount decimal.Decimal
	DaysOutstanding int
}

// ARMetrics is one open receivable invoice with computed amounts.
type ARMetrics struct {
	ARInvoice
	Collectible decimal.Decimal
	TotalDue    decimal.Decimal
	Bucket      Bucket
}

// ComputeAR computes metrics for every open receivable invoice. Fully paid
// invoices drop out.
func ComputeAR(invoices []ARInvoice) []ARMetrics {
	var out []ARMetrics
	for _, inv := range invoices {
		if !inv.AmountDue.IsPositive() {
			continue
		}
		collectible := inv.AmountDue.Sub(inv.RetainageAmount)
		if collectible.IsNegative() {
			collectible = decimal.Zero
		}
		inv.CustomerName = strings.TrimSpace(inv.CustomerName)
		inv.ProjectManager = strings.TrimSpace(inv.ProjectManager)
		out = append(out, ARMetrics{
			ARInvoice:   inv,
			Collectible: collectible,
			TotalDue:    collectible.Add(inv.RetainageAmount),
			Bucket:      bucketFor(inv.DaysOutstanding),
		})
	}
	return out
}

// APInvoice is one raw payable invoice record.
type APInvoice struct {
	InvoiceNo        string
	VendorName       string
	ProjectManager   string
	JobNo            string
	InvoiceDate      string
	DueDate          string
	InvoiceAmount    decimal.Decimal
	RemainingBalance decimal.Decimal
	RetainageAmount  decimal.Decimal
	DaysOutstanding  int
}

// APMetrics is one open payable invoice with computed amounts.
type APMetrics struct {
	APInvoice
	AmountExRetainage decimal.Decimal
	Bucket            Bucket
}

// ComputeAP computes metrics for every open payable invoice, skipping paid
// invoices and excluded (internal) vendors.
func ComputeAP(invoices []APInvoice, excludedVendors []string) []APMetrics {
	excluded := make(map[string]struct{}, len(excludedVendors))
	for _, v := range excludedVendors {
		excluded[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}

	var out []APMetrics
	for _, inv := range invoices {
		if !inv.RemainingBalance.IsPositive() {
			continue
		}
		inv.VendorName = strings.TrimSpace(inv.VendorName)
		if _, skip := excluded[strings.ToLower(inv.VendorName)]; skip {
			continue
		}
		exRet := inv.RemainingBalance
		if inv.RetainageAmount.IsPositive() {
			exRet = exRet.Sub(inv.RetainageAmount)
		}
		out = append(out, APMetrics{
			APInvoice:         inv,
			AmountExRetainage: exRet,
			Bucket:            bucketFor(inv.DaysOutstanding),
		})
	}
	return out
}
