package cashpos

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/model"
)

const (
	acctNumFields = 3
	acctColName   = 0
	acctColBal    = 1
	acctColUpdate = 2

	txNumFields   = 4
	txColAccount  = 0
	txColDate     = 1
	txColAmount   = 2
	txColDesc     = 3
)

// ReadAccounts reads a cash-accounts CSV: name,current_balance,last_update.
func ReadAccounts(r io.Reader) ([]model.CashAccount, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = acctNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading cash accounts CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.CashAccount
	for i, rec := range records[1:] {
		bal, err := decimal.NewFromString(rec[acctColBal])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing balance %q: %w", i+2, rec[acctColBal], err)
		}
		updated, err := time.Parse(time.RFC3339, rec[acctColUpdate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing last_update %q: %w", i+2, rec[acctColUpdate], err)
		}
		accounts = append(accounts, model.CashAccount{
			Name:           rec[acctColName],
			CurrentBalance: bal,
			LastUpdate:     updated,
		})
	}
	return accounts, nil
}

// ReadTransactions reads a transactions CSV: account,date,amount,description.
// Amounts are signed, positive = inflow.
func ReadTransactions(r io.Reader) ([]model.CashTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = txNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var txns []model.CashTransaction
	for i, rec := range records[1:] {
		date, err := time.Parse(DateFormat, rec[txColDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[txColDate], err)
		}
		amount, err := decimal.NewFromString(rec[txColAmount])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount %q: %w", i+2, rec[txColAmount], err)
		}
		txns = append(txns, model.CashTransaction{
			Account:     rec[txColAccount],
			Date:        date,
			Amount:      amount,
			Description: rec[txColDesc],
		})
	}
	return txns, nil
}
