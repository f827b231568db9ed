package cashpos

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finboard-dev/finboard/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tx(account string, date time.Time, amount string) model.CashTransaction {
	return model.CashTransaction{Account: account, Date: date, Amount: dec(amount)}
}

func TestReconstruct(t *testing.T) {
	today := day(2024, 6, 10)
	accounts := []model.CashAccount{
		{Name: "Operating", CurrentBalance: dec("1000"), LastUpdate: today},
		{Name: "Payroll", CurrentBalance: dec("500"), LastUpdate: today},
	}
	txns := []model.CashTransaction{
		tx("Operating", day(2024, 6, 10), "200"),  // deposit today
		tx("Operating", day(2024, 6, 8), "-300"),  // payment two days ago
		tx("Payroll", day(2024, 6, 8), "-100"),
		tx("Operating", day(2024, 6, 5), "50"),
	}

	table := Reconstruct(accounts, txns, today)

	// Today matches the stated balances exactly.
	assert.True(t, table.Balance("2024-06-10", "Operating").Equal(dec("1000")))
	assert.True(t, table.Balance("2024-06-10", "Payroll").Equal(dec("500")))

	// Yesterday backs out today's deposit.
	assert.True(t, table.Balance("2024-06-09", "Operating").Equal(dec("800")))

	// Quiet days carry values through unchanged.
	assert.True(t, table.Balance("2024-06-08", "Operating").Equal(dec("800")))

	// The payment on the 8th means the 7th closed higher.
	assert.True(t, table.Balance("2024-06-07", "Operating").Equal(dec("1100")))
	assert.True(t, table.Balance("2024-06-07", "Payroll").Equal(dec("600")))
}

// Every day in the window must satisfy the reconstruction identity:
// balance[d-1] == balance[d] - net(d).
func TestReconstruct_RoundTrip(t *testing.T) {
	today := day(2024, 6, 10)
	accounts := []model.CashAccount{{Name: "Operating", CurrentBalance: dec("250.75"), LastUpdate: today}}
	txns := []model.CashTransaction{
		tx("Operating", day(2024, 6, 10), "10.25"),
		tx("Operating", day(2024, 6, 9), "-40"),
		tx("Operating", day(2024, 6, 9), "15.50"),
		tx("Operating", day(2024, 5, 20), "-99.99"),
	}

	table := Reconstruct(accounts, txns, today)

	net := make(map[string]decimal.Decimal)
	for _, trx := range txns {
		key := trx.Date.Format(DateFormat)
		net[key] = net[key].Add(trx.Amount)
	}

	require.True(t, len(table.Dates) >= 2)
	for i := 1; i < len(table.Dates); i++ {
		d, prev := table.Dates[i], table.Dates[i-1]
		want := table.Balance(d, "Operating").Sub(net[d])
		got := table.Balance(prev, "Operating")
		require.True(t, got.Equal(want), "balance[%s] = %s, want %s", prev, got, want)
	}
}

func TestReconstruct_WindowCoversOldestTransaction(t *testing.T) {
	today := day(2024, 6, 10)
	accounts := []model.CashAccount{{Name: "Operating", CurrentBalance: dec("100"), LastUpdate: today}}
	txns := []model.CashTransaction{tx("Operating", day(2024, 2, 1), "-500")}

	table := Reconstruct(accounts, txns, today)
	assert.Equal(t, "2024-01-25", table.Dates[0], "buffer reaches past the oldest transaction")
	assert.Equal(t, "2024-06-10", table.Dates[len(table.Dates)-1])

	// Before the oldest outflow the account held more.
	assert.True(t, table.Balance("2024-01-31", "Operating").Equal(dec("600")))
}

func TestReconstruct_NoTransactions(t *testing.T) {
	today := day(2024, 6, 10)
	accounts := []model.CashAccount{{Name: "Operating", CurrentBalance: dec("100"), LastUpdate: today}}

	table := Reconstruct(accounts, nil, today)
	require.NotEmpty(t, table.Dates)
	for _, d := range table.Dates {
		assert.True(t, table.Balance(d, "Operating").Equal(dec("100")), d)
	}
}

func TestReconstruct_IgnoresFutureTransactions(t *testing.T) {
	today := day(2024, 6, 10)
	accounts := []model.CashAccount{{Name: "Operating", CurrentBalance: dec("100"), LastUpdate: today}}
	txns := []model.CashTransaction{tx("Operating", day(2024, 6, 15), "9999")}

	table := Reconstruct(accounts, txns, today)
	for _, d := range table.Dates {
		assert.True(t, table.Balance(d, "Operating").Equal(dec("100")), d)
	}
}

func TestReadAccounts(t *testing.T) {
	input := "name,current_balance,last_update\nOperating,1000.50,2024-06-10T08:00:00Z\n"
	accounts, err := ReadAccounts(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Operating", accounts[0].Name)
	assert.True(t, accounts[0].CurrentBalance.Equal(dec("1000.50")))
	assert.Equal(t, 2024, accounts[0].LastUpdate.Year())
}

func TestReadTransactions(t *testing.T) {
	input := "account,date,amount,description\nOperating,2024-06-08,-300,Vendor payment\n"
	txns, err := ReadTransactions(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Operating", txns[0].Account)
	assert.True(t, txns[0].Amount.Equal(dec("-300")))
	assert.Equal(t, "Vendor payment", txns[0].Description)
}

func TestReadTransactions_BadDate(t *testing.T) {
	input := "account,date,amount,description\nOperating,06/08/2024,-300,Vendor payment\n"
	_, err := ReadTransactions(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}
