package model

import "github.com/shopspring/decimal"

// LedgerRow is one account from the GL export: a sparse month-key ("YYYY-MM")
// to signed amount mapping. Amounts carry the raw debit/credit sign as
// recorded: expense/asset increases positive, income/liability/equity
// increases negative.
type LedgerRow struct {
	AccountNum  int
	Description string
	Amounts     map[string]decimal.Decimal
}
