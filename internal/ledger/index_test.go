package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finboard-dev/finboard/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func row(acct int, desc string, amounts map[string]string) model.LedgerRow {
	r := model.LedgerRow{AccountNum: acct, Description: desc, Amounts: make(map[string]decimal.Decimal)}
	for m, v := range amounts {
		r.Amounts[m] = dec(v)
	}
	return r
}

func testIndex() *Index {
	return NewIndex([]model.LedgerRow{
		row(1010, "Operating Checking", map[string]string{"2024-01": "100", "2024-02": "50", "2024-03": "-25"}),
		row(4000, "Contract Revenue", map[string]string{"2024-01": "-1000", "2024-02": "-1500", "2024-03": "-800"}),
		row(5020, "Subcontractors", map[string]string{"2024-02": "600", "2024-03": "700"}),
		row(5400, "Materials", map[string]string{"2024-01": "200"}),
	})
}

func TestIndex_Months(t *testing.T) {
	idx := testIndex()
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, idx.Months())
	assert.Equal(t, []int{1010, 4000, 5020, 5400}, idx.Accounts())
}

func TestIndex_Activity(t *testing.T) {
	idx := testIndex()

	got := idx.Activity([]int{4000}, []string{"2024-01", "2024-02"})
	assert.True(t, got.Equal(dec("-2500")), "got %s", got)

	// Missing account and missing month are zero activity.
	got = idx.Activity([]int{9999}, []string{"2024-01"})
	assert.True(t, got.IsZero())
	got = idx.Activity([]int{1010}, []string{"2023-12"})
	assert.True(t, got.IsZero())
}

func TestIndex_ActivityRange(t *testing.T) {
	idx := testIndex()

	got := idx.ActivityRange(5000, 5999, []string{"2024-01", "2024-02", "2024-03"})
	assert.True(t, got.Equal(dec("1500")), "got %s", got)

	assert.Equal(t, []int{5020, 5400}, idx.AccountsInRange(5000, 5999))
	assert.Empty(t, idx.AccountsInRange(6000, 7999))
}

func TestIndex_CumulativeBalance(t *testing.T) {
	idx := testIndex()

	// Prefix sums must match the naive cumulative sum at each month.
	for _, tc := range []struct {
		through string
		want    string
	}{
		{"2024-01", "100"},
		{"2024-02", "150"},
		{"2024-03", "125"},
		{"2024-12", "125"}, // past end of history clamps to the last month
		{"2023-06", "0"},   // before start of history
	} {
		got := idx.CumulativeBalance([]int{1010}, tc.through)
		assert.True(t, got.Equal(dec(tc.want)), "through %s: got %s want %s", tc.through, got, tc.want)
	}
}

func TestIndex_CumulativeMatchesNaiveSum(t *testing.T) {
	idx := testIndex()

	for _, acct := range idx.Accounts() {
		naive := decimal.Zero
		for _, m := range idx.Months() {
			naive = naive.Add(idx.Amount(acct, m))
			got := idx.CumulativeBalance([]int{acct}, m)
			require.True(t, got.Equal(naive), "account %d through %s: got %s want %s", acct, m, got, naive)
		}
	}
}

func TestIndex_MergesDuplicateAccounts(t *testing.T) {
	idx := NewIndex([]model.LedgerRow{
		row(1010, "Checking", map[string]string{"2024-01": "100"}),
		row(1010, "Checking", map[string]string{"2024-01": "40", "2024-02": "10"}),
	})

	assert.True(t, idx.Amount(1010, "2024-01").Equal(dec("140")))
	assert.True(t, idx.CumulativeBalance([]int{1010}, "2024-02").Equal(dec("150")))
}
