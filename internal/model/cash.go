package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashAccount is one bank/cash account with its current stated balance.
type CashAccount struct {
	Name           string
	CurrentBalance decimal.Decimal
	LastUpdate     time.Time
}

// CashTransaction is one raw (unaggregated) cash movement. Amount is signed:
// positive = inflow.
type CashTransaction struct {
	Account     string
	Date        time.Time
	Amount      decimal.Decimal
	Description string
}
