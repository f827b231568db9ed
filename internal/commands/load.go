package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/finboard-dev/finboard/internal/aging"
	"github.com/finboard-dev/finboard/internal/cashpos"
	"github.com/finboard-dev/finboard/internal/jobs"
	"github.com/finboard-dev/finboard/internal/config"
	"github.com/finboard-dev/finboard/internal/ledger"
	"github.com/finboard-dev/finboard/internal/model"
	"github.com/finboard-dev/finboard/internal/period"
	"github.com/finboard-dev/finboard/internal/statement"
)

// loadSession reads the config, the GL export, and the statement
// definitions, and builds the session every reporting command works from.
func loadSession(configPath string) (*config.Config, *statement.Session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	rows, err := ledger.DefaultRegistry().LoadFile(cfg.Data.LedgerFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading ledger: %w", err)
	}

	stmts, err := config.LoadStatements(cfg.Data.StatementsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading statement definitions: %w", err)
	}

	session := statement.NewSession(ledger.NewIndex(rows), stmts, statement.Options{
		ContraEquityAccount:        cfg.Company.ContraEquityAccount,
		BeginningBalanceExclusions: cfg.CashFlow.BeginningBalanceExclusions,
	})
	return cfg, session, nil
}

// loadCash reads the cash account and transaction files and reconstructs
// the daily balance table.
func loadCash(cfg *config.Config, today time.Time) ([]model.CashAccount, *cashpos.Table, error) {
	if cfg.Data.CashAccountsFile == "" {
		return nil, nil, fmt.Errorf("no cash_accounts_file configured")
	}

	accounts, err := readCSVFile(cfg.Data.CashAccountsFile, cashpos.ReadAccounts)
	if err != nil {
		return nil, nil, fmt.Errorf("loading cash accounts: %w", err)
	}

	var txns []model.CashTransaction
	if cfg.Data.TransactionsFile != "" {
		txns, err = readCSVFile(cfg.Data.TransactionsFile, cashpos.ReadTransactions)
		if err != nil {
			return nil, nil, fmt.Errorf("loading cash transactions: %w", err)
		}
	}

	return accounts, cashpos.Reconstruct(accounts, txns, today), nil
}

// loadAging reads and computes both sides of the invoice metrics. A missing
// file yields empty metrics for that side, not an error.
func loadAging(cfg *config.Config) (ar []aging.ARMetrics, ap []aging.APMetrics, err error) {
	if cfg.Data.ARInvoicesFile != "" {
		invoices, err := readCSVFile(cfg.Data.ARInvoicesFile, aging.ReadARInvoices)
		if err != nil {
			return nil, nil, fmt.Errorf("loading AR invoices: %w", err)
		}
		ar = aging.ComputeAR(invoices)
	}
	if cfg.Data.APInvoicesFile != "" {
		invoices, err := readCSVFile(cfg.Data.APInvoicesFile, aging.ReadAPInvoices)
		if err != nil {
			return nil, nil, fmt.Errorf("loading AP invoices: %w", err)
		}
		ap = aging.ComputeAP(invoices, cfg.Aging.ExcludedVendors)
	}
	return ar, ap, nil
}

// loadJobs reads the job cost files and computes per-job metrics. Budgets
// are required; actuals and billings are optional.
func loadJobs(cfg *config.Config) ([]jobs.Metrics, error) {
	if cfg.Data.JobBudgetsFile == "" {
		return nil, fmt.Errorf("no job_budgets_file configured")
	}

	budgets, err := readCSVFile(cfg.Data.JobBudgetsFile, jobs.ReadBudgets)
	if err != nil {
		return nil, fmt.Errorf("loading job budgets: %w", err)
	}

	var actuals []jobs.Actual
	if cfg.Data.JobActualsFile != "" {
		actuals, err = readCSVFile(cfg.Data.JobActualsFile, jobs.ReadActuals)
		if err != nil {
			return nil, fmt.Errorf("loading job actuals: %w", err)
		}
	}
	var billed []jobs.Billed
	if cfg.Data.JobBilledFile != "" {
		billed, err = readCSVFile(cfg.Data.JobBilledFile, jobs.ReadBilled)
		if err != nil {
			return nil, fmt.Errorf("loading billed revenue: %w", err)
		}
	}

	return jobs.Compute(budgets, actuals, billed), nil
}

func readCSVFile[T any](path string, read func(r io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f)
}

func parseStatementType(raw string) (model.StatementType, error) {
	switch st := model.StatementType(raw); st {
	case model.StatementIncome, model.StatementBalance, model.StatementCashFlow:
		return st, nil
	default:
		return "", fmt.Errorf("unknown statement type %q (want income_statement, balance_sheet, or cash_flow)", raw)
	}
}

func parsePeriodFlags(periodFlag, valueFlag string, excludeCurrent bool, now time.Time) (period.Spec, error) {
	spec := period.Spec{
		Type:           period.TypeMonth,
		Value:          period.MonthKey(now.Year(), now.Month()),
		ExcludeCurrent: excludeCurrent,
	}
	if periodFlag != "" {
		switch t := period.Type(periodFlag); t {
		case period.TypeMonth, period.TypeQuarter, period.TypeYear, period.TypeYTD, period.TypeTTM:
			spec.Type = t
		default:
			return spec, fmt.Errorf("unknown period type %q", periodFlag)
		}
	}
	if valueFlag != "" {
		spec.Value = valueFlag
	}
	return spec, nil
}
