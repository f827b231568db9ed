package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/model"
)

// Index provides point lookups over a GL snapshot: account → month → amount,
// plus per-account cumulative prefix sums so balance-style lookups are O(1).
// Built once per snapshot and never mutated afterward.
type Index struct {
	amounts    map[int]map[string]decimal.Decimal
	cumulative map[int][]decimal.Decimal // parallel to months
	months     []string                  // sorted ascending
	accounts   []int                     // sorted ascending
	names      map[int]string
}

// NewIndex builds an Index from GL export rows. Duplicate account rows are
// merged by summing their monthly amounts.
func NewIndex(rows []model.LedgerRow) *Index {
	idx := &Index{
		amounts: make(map[int]map[string]decimal.Decimal),
		names:   make(map[int]string),
	}

	monthSet := make(map[string]struct{})
	for _, row := range rows {
		byMonth, ok := idx.amounts[row.AccountNum]
		if !ok {
			byMonth = make(map[string]decimal.Decimal, len(row.Amounts))
			idx.amounts[row.AccountNum] = byMonth
			idx.accounts = append(idx.accounts, row.AccountNum)
		}
		if _, ok := idx.names[row.AccountNum]; !ok {
			idx.names[row.AccountNum] = row.Description
		}
		for month, amt := range row.Amounts {
			monthSet[month] = struct{}{}
			byMonth[month] = byMonth[month].Add(amt)
		}
	}

	idx.months = make([]string, 0, len(monthSet))
	for m := range monthSet {
		idx.months = append(idx.months, m)
	}
	sort.Strings(idx.months)
	sort.Ints(idx.accounts)

	// Prefix sums over the full month range, one running total per account.
	idx.cumulative = make(map[int][]decimal.Decimal, len(idx.accounts))
	for _, acct := range idx.accounts {
		running := decimal.Zero
		sums := make([]decimal.Decimal, len(idx.months))
		for i, m := range idx.months {
			running = running.Add(idx.amounts[acct][m])
			sums[i] = running
		}
		idx.cumulative[acct] = sums
	}

	return idx
}

// Months returns the sorted distinct month keys present in the snapshot.
func (idx *Index) Months() []string { return idx.months }

// Accounts returns the sorted distinct account numbers present.
func (idx *Index) Accounts() []int { return idx.accounts }

// Name returns the description for an account, if known.
func (idx *Index) Name(account int) string { return idx.names[account] }

// Amount returns one account's activity for one month. A missing account or
// month is zero activity, never an error.
func (idx *Index) Amount(account int, month string) decimal.Decimal {
	return idx.amounts[account][month]
}

// Activity sums the given accounts' activity across the given months.
func (idx *Index) Activity(accounts []int, months []string) decimal.Decimal {
	total := decimal.Zero
	for _, acct := range accounts {
		byMonth, ok := idx.amounts[acct]
		if !ok {
			continue
		}
		for _, m := range months {
			total = total.Add(byMonth[m])
		}
	}
	return total
}

// AccountsInRange returns the known account numbers within [start, end]
// inclusive.
func (idx *Index) AccountsInRange(start, end int) []int {
	lo := sort.SearchInts(idx.accounts, start)
	hi := sort.SearchInts(idx.accounts, end+1)
	if lo >= hi {
		return nil
	}
	out := make([]int, hi-lo)
	copy(out, idx.accounts[lo:hi])
	return out
}

// ActivityRange sums activity across the given months for every known
// account with a number in [start, end] inclusive.
func (idx *Index) ActivityRange(start, end int, months []string) decimal.Decimal {
	return idx.Activity(idx.AccountsInRange(start, end), months)
}

// CumulativeBalance returns the sum of all monthly activity for the given
// accounts over every available month <= through. Months before the start of
// history yield zero.
func (idx *Index) CumulativeBalance(accounts []int, through string) decimal.Decimal {
	// Index of the last available month <= through. Lexicographic order on
	// "YYYY-MM" keys matches chronological order.
	pos := sort.SearchStrings(idx.months, through)
	if pos < len(idx.months) && idx.months[pos] == through {
		pos++
	}
	if pos == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, acct := range accounts {
		sums, ok := idx.cumulative[acct]
		if !ok {
			continue
		}
		total = total.Add(sums[pos-1])
	}
	return total
}

// CumulativeRange is CumulativeBalance over every known account with a
// number in [start, end] inclusive.
func (idx *Index) CumulativeRange(start, end int, through string) decimal.Decimal {
	return idx.CumulativeBalance(idx.AccountsInRange(start, end), through)
}
