package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finboard-dev/finboard/internal/config"
	"github.com/finboard-dev/finboard/internal/model"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// scaffold writes a minimal project: config, statement definitions, and a
// two-month GL export.
func scaffold(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()

	glCSV := "Account_Num,Account_Description,2024-01,2024-02\n" +
		"4010,Contract Revenue,\"(1,000.00)\",-1500\n" +
		"5020,Materials,600,800\n"
	glPath := filepath.Join(dir, "gl.csv")
	require.NoError(t, os.WriteFile(glPath, []byte(glCSV), 0o644))

	stmts := &config.Statements{
		IncomeStatement: config.GroupTree{Groups: []model.Group{
			{Label: "Revenue", Type: model.GroupSubtotal, Accounts: []int{4010}},
			{Label: "Total Cost of Sales", Type: model.GroupSubtotal, Accounts: []int{5020}},
			{Label: "Gross Profit", Type: model.GroupSubtotal, Formula: "Revenue - Total Cost of Sales"},
		}},
	}
	stmtsPath := filepath.Join(dir, "statements.yaml")
	require.NoError(t, config.SaveStatements(stmtsPath, stmts))

	cfg := config.Default("Test Co")
	cfg.Data.LedgerFile = glPath
	cfg.Data.StatementsFile = stmtsPath
	cfgPath = filepath.Join(dir, "finboard.yaml")
	require.NoError(t, config.Save(cfgPath, cfg))
	return dir, cfgPath
}

func TestInit_CreatesProject(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "init", dir, "--name", "Test Co")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized finboard project")

	for _, f := range []string{"finboard.yaml", "statements.yaml", "data"} {
		_, err := os.Stat(filepath.Join(dir, f))
		require.NoError(t, err, "%s should exist", f)
	}

	cfg, err := config.Load(filepath.Join(dir, "finboard.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Test Co", cfg.Company.Name)

	stmts, err := config.LoadStatements(filepath.Join(dir, "statements.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, stmts.IncomeStatement.Groups)
}

func TestInit_RefusesExistingConfig(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "init", dir, "--name", "Test Co")
	require.NoError(t, err)
	_, err = run(t, "init", dir, "--name", "Test Co")
	require.Error(t, err)
}

func TestStatementCommand(t *testing.T) {
	_, cfgPath := scaffold(t)

	out, err := run(t, "--config", cfgPath, "statement", "income_statement",
		"--period", "month", "--value", "2024-01")
	require.NoError(t, err)

	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "Revenue")
	assert.Contains(t, out, "1000.00")
	assert.Contains(t, out, "Gross Profit")
	assert.Contains(t, out, "400.00")
}

func TestStatementCommand_Compare(t *testing.T) {
	_, cfgPath := scaffold(t)

	out, err := run(t, "--config", cfgPath, "statement", "income_statement",
		"--period", "month", "--value", "2024-02", "--compare", "prior")
	require.NoError(t, err)

	assert.Contains(t, out, "Diff")
	assert.Contains(t, out, "1500.00")
	assert.Contains(t, out, "500.00")
	assert.Contains(t, out, "50.0%")
}

func TestStatementCommand_Errors(t *testing.T) {
	_, cfgPath := scaffold(t)

	_, err := run(t, "--config", cfgPath, "statement", "profit")
	require.Error(t, err)

	_, err = run(t, "--config", cfgPath, "statement", "income_statement", "--period", "decade")
	require.Error(t, err)

	_, err = run(t, "--config", cfgPath, "statement", "income_statement", "--value", "1999-01")
	require.Error(t, err)
}

func TestMatrixCommand(t *testing.T) {
	_, cfgPath := scaffold(t)

	out, err := run(t, "--config", cfgPath, "matrix", "income_statement", "--view", "months", "--year", "2024")
	require.NoError(t, err)

	assert.Contains(t, out, "Jan 2024")
	assert.Contains(t, out, "Feb 2024")
	assert.Contains(t, out, "Revenue")
	assert.Contains(t, out, "1500.00")
}

func TestCashCommand(t *testing.T) {
	dir, cfgPath := scaffold(t)

	accountsCSV := "name,current_balance,last_update\n" +
		"Operating,5000,2024-02-15T00:00:00Z\n"
	accountsPath := filepath.Join(dir, "cash.csv")
	require.NoError(t, os.WriteFile(accountsPath, []byte(accountsCSV), 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Data.CashAccountsFile = accountsPath
	require.NoError(t, config.Save(cfgPath, cfg))

	out, err := run(t, "--config", cfgPath, "cash")
	require.NoError(t, err)
	assert.Contains(t, out, "Operating")
	assert.Contains(t, out, "5000.00")
}

func TestAgingCommand(t *testing.T) {
	dir, cfgPath := scaffold(t)

	arCSV := "invoice_no,customer_name,project_manager,job_no,invoice_date,due_date,invoice_amount,amount_due,retainage,days_outstanding\n" +
		"1001,Acme,PM,J-1,2024-05-01,2024-05-31,1000,800,100,45\n"
	arPath := filepath.Join(dir, "ar.csv")
	require.NoError(t, os.WriteFile(arPath, []byte(arCSV), 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Data.ARInvoicesFile = arPath
	require.NoError(t, config.Save(cfgPath, cfg))

	out, err := run(t, "--config", cfgPath, "aging", "ar")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "800.00") // total due: collectible 700 + retainage 100

	_, err = run(t, "--config", cfgPath, "aging", "receivables")
	require.Error(t, err)
}

func TestJobsCommand(t *testing.T) {
	dir, cfgPath := scaffold(t)

	budgetsCSV := "job_no,job_description,project_manager,customer_name,job_status,original_contract,revised_contract,original_cost,revised_cost\n" +
		"J-1,Warehouse Fitout,Jane,Acme,A,90000,100000,75000,80000\n" +
		"J-2,Internal Works,Josh Angelo,Acme,A,50000,50000,40000,40000\n"
	budgetsPath := filepath.Join(dir, "budgets.csv")
	require.NoError(t, os.WriteFile(budgetsPath, []byte(budgetsCSV), 0o644))

	actualsPath := filepath.Join(dir, "actuals.csv")
	require.NoError(t, os.WriteFile(actualsPath, []byte("job_no,amount\nJ-1,40000\n"), 0o644))

	billedPath := filepath.Join(dir, "billed.csv")
	require.NoError(t, os.WriteFile(billedPath, []byte("job_no,billed_revenue\nJ-1,55000\n"), 0o644))

	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Data.JobBudgetsFile = budgetsPath
	cfg.Data.JobActualsFile = actualsPath
	cfg.Data.JobBilledFile = billedPath
	cfg.Jobs.ExcludedManagers = []string{"Josh Angelo"}
	require.NoError(t, config.Save(cfgPath, cfg))

	out, err := run(t, "--config", cfgPath, "jobs")
	require.NoError(t, err)
	assert.Contains(t, out, "Jane")
	assert.NotContains(t, out, "Josh Angelo", "excluded manager stays out of the rollup")
	assert.Contains(t, out, "100000.00") // Jane's contract
	assert.Contains(t, out, "20000.00")  // projected profit
	assert.Contains(t, out, "20.00%")    // projected margin
	// The summary still counts every job, excluded managers included.
	assert.Contains(t, out, "Jobs: 2 (2 budgeted, 0 without budget, 2 valid for profit)")
}

func TestJobsCommand_NotConfigured(t *testing.T) {
	_, cfgPath := scaffold(t)
	_, err := run(t, "--config", cfgPath, "jobs")
	require.Error(t, err)
}
