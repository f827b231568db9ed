// Package cashpos reconstructs daily cash balances per account by walking
// backward from each account's current stated balance through the raw
// transaction history.
package cashpos

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/model"
)

// DateFormat is the key format of the daily balance table.
const DateFormat = "2006-01-02"

// safetyBufferDays extends the reconstruction window past the oldest
// transaction so the table always shows some settled history.
const safetyBufferDays = 7

// Table is the dense daily balance table: one entry per calendar day in the
// window, each holding every account's closing balance. Fully derived,
// never persisted.
type Table struct {
	Dates    []string                              // ascending "YYYY-MM-DD"
	Balances map[string]map[string]decimal.Decimal // date → account → balance
}

// Balance returns one account's balance on one date.
func (t *Table) Balance(date, account string) decimal.Decimal {
	return t.Balances[date][account]
}

// Reconstruct rebuilds the daily balance table from current balances and
// the full transaction list. The walk starts at today, whose balances are
// the accounts' stated current balances, and steps backward one day at a
// time: the prior day's close is the day's close minus the day's net
// transaction amount. Days without transactions carry the value through
// unchanged.
func Reconstruct(accounts []model.CashAccount, txns []model.CashTransaction, today time.Time) *Table {
	todayDay := midnight(today)
	oldest := todayDay

	// Net transaction amount per (day, account); transactions dated in the
	// future have no bearing on history.
	net := make(map[string]map[string]decimal.Decimal)
	for _, tx := range txns {
		day := midnight(tx.Date)
		if day.After(todayDay) {
			continue
		}
		if day.Before(oldest) {
			oldest = day
		}
		key := day.Format(DateFormat)
		if net[key] == nil {
			net[key] = make(map[string]decimal.Decimal)
		}
		net[key][tx.Account] = net[key][tx.Account].Add(tx.Amount)
	}

	// The window reaches past the oldest transaction so its effect on the
	// prior balance is part of the table.
	start := oldest.AddDate(0, 0, -safetyBufferDays)

	table := &Table{Balances: make(map[string]map[string]decimal.Decimal)}

	current := make(map[string]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		current[a.Name] = a.CurrentBalance
	}
	table.set(todayDay, current)

	for day := todayDay; day.After(start); day = day.AddDate(0, 0, -1) {
		prior := make(map[string]decimal.Decimal, len(current))
		dayNet := net[day.Format(DateFormat)]
		for name, bal := range current {
			prior[name] = bal.Sub(dayNet[name])
		}
		table.set(day.AddDate(0, 0, -1), prior)
		current = prior
	}

	// Dates ascending for table consumers.
	for day := start; !day.After(todayDay); day = day.AddDate(0, 0, 1) {
		table.Dates = append(table.Dates, day.Format(DateFormat))
	}
	return table
}

func (t *Table) set(day time.Time, balances map[string]decimal.Decimal) {
	t.Balances[day.Format(DateFormat)] = balances
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
