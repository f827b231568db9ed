package aging

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PartySummary is one customer's or vendor's rollup: totals, aging-bucket
// amounts, and the amount-weighted average days outstanding.
type PartySummary struct {
	Name            string
	InvoiceCount    int
	TotalDue        decimal.Decimal
	Collectible     decimal.Decimal // AR only; zero for AP
	Retainage       decimal.Decimal
	Buckets         map[Bucket]decimal.Decimal
	AvgDaysOutstand decimal.Decimal
}

// Summary is the overall AR or AP position.
type Summary struct {
	InvoiceCount    int
	TotalDue        decimal.Decimal
	Collectible     decimal.Decimal // AR only; zero for AP
	Retainage       decimal.Decimal
	Buckets         map[Bucket]decimal.Decimal
	AvgDaysOutstand decimal.Decimal
}

// ByCustomer aggregates receivable metrics per customer, sorted by total
// due, largest first. Bucket amounts and weighted days use the collectible
// portion.
func ByCustomer(metrics []ARMetrics) []PartySummary {
	acc := make(map[string]*partyAccum)
	for _, m := range metrics {
		name := m.CustomerName
		if name == "" {
			name = "Unknown Customer"
		}
		p := accumFor(acc, name)
		p.count++
		p.total = p.total.Add(m.TotalDue)
		p.collectible = p.collectible.Add(m.Collectible)
		p.retainage = p.retainage.Add(m.RetainageAmount)
		p.buckets[m.Bucket] = p.buckets[m.Bucket].Add(m.Collectible)
		p.weighted = p.weighted.Add(m.Collectible.Mul(decimal.NewFromInt(int64(m.DaysOutstanding))))
		p.weightBase = p.weightBase.Add(m.Collectible)
	}
	return finish(acc)
}

// ByVendor aggregates payable metrics per vendor, sorted by total due,
// largest first. Bucket amounts and weighted days use the ex-retainage
// portion.
func ByVendor(metrics []APMetrics) []PartySummary {
	acc := make(map[string]*partyAccum)
	for _, m := range metrics {
		name := m.VendorName
		if name == "" {
			name = "Unknown Vendor"
		}
		p := accumFor(acc, name)
		p.count++
		p.total = p.total.Add(m.RemainingBalance)
		p.retainage = p.retainage.Add(m.RetainageAmount)
		p.buckets[m.Bucket] = p.buckets[m.Bucket].Add(m.AmountExRetainage)
		p.weighted = p.weighted.Add(m.AmountExRetainage.Mul(decimal.NewFromInt(int64(m.DaysOutstanding))))
		p.weightBase = p.weightBase.Add(m.AmountExRetainage)
	}
	return finish(acc)
}

// SummarizeAR totals the receivable position.
func SummarizeAR(metrics []ARMetrics) Summary {
	s := Summary{Buckets: make(map[Bucket]decimal.Decimal)}
	weighted := decimal.Zero
	for _, m := range metrics {
		s.InvoiceCount++
		s.TotalDue = s.TotalDue.Add(m.TotalDue)
		s.Collectible = s.Collectible.Add(m.Collectible)
		s.Retainage = s.Retainage.Add(m.RetainageAmount)
		s.Buckets[m.Bucket] = s.Buckets[m.Bucket].Add(m.Collectible)
		weighted = weighted.Add(m.Collectible.Mul(decimal.NewFromInt(int64(m.DaysOutstanding))))
	}
	if s.Collectible.IsPositive() {
		s.AvgDaysOutstand = weighted.DivRound(s.Collectible, 1)
	}
	return s
}

// SummarizeAP totals the payable position.
func SummarizeAP(metrics []APMetrics) Summary {
	s := Summary{Buckets: make(map[Bucket]decimal.Decimal)}
	weighted := decimal.Zero
	for _, m := range metrics {
		s.InvoiceCount++
		s.TotalDue = s.TotalDue.Add(m.RemainingBalance)
		s.Retainage = s.Retainage.Add(m.RetainageAmount)
		s.Buckets[m.Bucket] = s.Buckets[m.Bucket].Add(m.AmountExRetainage)
		weighted = weighted.Add(m.AmountExRetainage.Mul(decimal.NewFromInt(int64(m.DaysOutstanding))))
	}
	exRet := s.TotalDue.Sub(s.Retainage)
	if exRet.IsPositive() {
		s.AvgDaysOutstand = weighted.DivRound(exRet, 1)
	}
	return s
}

type partyAccum struct {
	count       int
	total       decimal.Decimal
	collectible decimal.Decimal
	retainage   decimal.Decimal
	buckets     map[Bucket]decimal.Decimal
	weighted    decimal.Decimal
	weightBase  decimal.Decimal
}

func accumFor(acc map[string]*partyAccum, name string) *partyAccum {
	p, ok := acc[name]
	if !ok {
		p = &partyAccum{buckets: make(map[Bucket]decimal.Decimal)}
		acc[name] = p
	}
	return p
}

func finish(acc map[string]*partyAccum) []PartySummary {
	out := make([]PartySummary, 0, len(acc))
	for name, p := range acc {
		s := PartySummary{
			Name:         name,
			InvoiceCount: p.count,
			TotalDue:     p.total,
			Collectible:  p.collectible,
			Retainage:    p.retainage,
			Buckets:      p.buckets,
		}
		if p.weightBase.IsPositive() {
			s.AvgDaysOutstand = p.weighted.DivRound(p.weightBase, 1)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalDue.Equal(out[j].TotalDue) {
			return out[i].TotalDue.GreaterThan(out[j].TotalDue)
		}
		return out[i].Name < out[j].Name
	})
	return out
}
