package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level finboard.yaml configuration.
type Config struct {
	Company  CompanyConfig  `yaml:"company"`
	Data     DataConfig     `yaml:"data"`
	Server   ServerConfig   `yaml:"server"`
	CashFlow CashFlowConfig `yaml:"cash_flow"`
	Aging    AgingConfig    `yaml:"aging"`
	Jobs     JobsConfig     `yaml:"jobs"`
}

// CompanyConfig identifies the reporting entity.
type CompanyConfig struct {
	Name string `yaml:"name"`
	// ContraEquityAccount is the single contra-equity account folded into
	// the retained-earnings calculation.
	ContraEquityAccount int `yaml:"contra_equity_account,omitempty"`
}

// DataConfig locates the snapshot files the engine loads at startup.
type DataConfig struct {
	LedgerFile       string `yaml:"ledger_file"`
	StatementsFile   string `yaml:"statements_file"`
	CashAccountsFile string `yaml:"cash_accounts_file,omitempty"`
	TransactionsFile string `yaml:"transactions_file,omitempty"`
	ARInvoicesFile   string `yaml:"ar_invoices_file,omitempty"`
	APInvoicesFile   string `yaml:"ap_invoices_file,omitempty"`
	JobBudgetsFile   string `yaml:"job_budgets_file,omitempty"`
	JobActualsFile   string `yaml:"job_actuals_file,omitempty"`
	JobBilledFile    string `yaml:"job_billed_file,omitempty"`
}

// ServerConfig controls the collaborator API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// CashFlowConfig carries cash-flow statement tweaks.
type CashFlowConfig struct {
	// BeginningBalanceExclusions lists accounts left out of the
	// beginning-balance special calc. Historically a single hard-coded
	// account; kept configurable.
	BeginningBalanceExclusions []int `yaml:"beginning_balance_exclusions,omitempty"`
}

// AgingConfig controls AR/AP invoice metrics.
type AgingConfig struct {
	// ExcludedVendors are internal vendors removed from AP aging.
	ExcludedVendors []string `yaml:"excluded_vendors,omitempty"`
}

// JobsConfig controls job cost metrics.
type JobsConfig struct {
	// ExcludedManagers removes internal managers from the per-manager
	// rollup. Matched as a case-insensitive substring so name variants
	// filter out together.
	ExcludedManagers []string `yaml:"excluded_managers,omitempty"`
}

// Load reads a finboard.yaml file from disk, then applies FINBOARD_*
// environment overrides. A .env file in the working directory is honored
// when present.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(companyName string) *Config {
	return &Config{
		Company: CompanyConfig{Name: companyName},
		Data: DataConfig{
			LedgerFile:     "data/gl_export.csv",
			StatementsFile: "statements.yaml",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// applyEnv overlays FINBOARD_* environment variables onto the config.
func (c *Config) applyEnv() {
	_ = godotenv.Load() // best effort; absence of .env is normal

	if v := os.Getenv("FINBOARD_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("FINBOARD_LEDGER_FILE"); v != "" {
		c.Data.LedgerFile = v
	}
	if v := os.Getenv("FINBOARD_STATEMENTS_FILE"); v != "" {
		c.Data.StatementsFile = v
	}
}
