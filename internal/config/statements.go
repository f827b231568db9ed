package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finboard-dev/finboard/internal/model"
)

// Statements holds the three ordered group-definition trees loaded from
// statements.yaml. Each tree is evaluated top to bottom; a group's formula
// may reference only labels defined earlier in its tree.
type Statements struct {
	IncomeStatement GroupTree `yaml:"income_statement"`
	BalanceSheet    GroupTree `yaml:"balance_sheet"`
	CashFlow        GroupTree `yaml:"cash_flow"`
}

// GroupTree is one statement's ordered group list.
type GroupTree struct {
	Groups []model.Group `yaml:"groups"`
}

// Tree returns the group tree for a statement type.
func (s *Statements) Tree(st model.StatementType) []model.Group {
	switch st {
	case model.StatementIncome:
		return s.IncomeStatement.Groups
	case model.StatementBalance:
		return s.BalanceSheet.Groups
	case model.StatementCashFlow:
		return s.CashFlow.Groups
	}
	return nil
}

// LoadStatements reads the group-definition trees from a YAML file.
func LoadStatements(path string) (*Statements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading statements config: %w", err)
	}
	var s Statements
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing statements config: %w", err)
	}
	return &s, nil
}

// SaveStatements writes the group-definition trees to a YAML file.
func SaveStatements(path string, s *Statements) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling statements config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing statements config: %w", err)
	}
	return nil
}

// DefaultStatements returns a starter set of group trees for a standard
// small-company chart of accounts (assets 1xxx, liabilities 2xxx, equity
// 3xxx, income 4xxx, cost of sales 5xxx, expenses 6xxx-7xxx, other income
// 8xxx).
func DefaultStatements() *Statements {
	return &Statements{
		IncomeStatement: GroupTree{Groups: []model.Group{
			{Label: "Revenue", Level: 0, Type: model.GroupSubtotal, Range: &model.AccountRange{Start: 4000, End: 4999}, Highlight: true},
			{Label: "Cost of Sales", Level: 0, Type: model.GroupHeader},
			{Label: "Subcontractors", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 5000, End: 5299}, Parent: "Cost of Sales"},
			{Label: "Materials", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 5300, End: 5599}, Parent: "Cost of Sales"},
			{Label: "Direct Labor", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 5600, End: 5999}, Parent: "Cost of Sales"},
			{Label: "Total Cost of Sales", Level: 0, Type: model.GroupSubtotal, Formula: "Subcontractors + Materials + Direct Labor", Highlight: true},
			{Label: "Gross Profit", Level: 0, Type: model.GroupSubtotal, Formula: "Revenue - Total Cost of Sales", Highlight: true, IsIncome: true},
			{Label: "Operating Expenses", Level: 0, Type: model.GroupHeader, Expandable: true},
			{Label: "Payroll", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 6000, End: 6299}, Parent: "Operating Expenses"},
			{Label: "Office & Admin", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 6300, End: 6699}, Parent: "Operating Expenses"},
			{Label: "Insurance", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 6700, End: 6999}, Parent: "Operating Expenses"},
			{Label: "Other Overhead", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 7000, End: 7999}, Parent: "Operating Expenses"},
			{Label: "Total Operating Expenses", Level: 0, Type: model.GroupSubtotal, Formula: "Payroll + Office & Admin + Insurance + Other Overhead", Highlight: true},
			{Label: "Operating Income", Level: 0, Type: model.GroupSubtotal, Formula: "Gross Profit - Total Operating Expenses", Highlight: true, IsIncome: true},
			{Label: "Other Income", Level: 0, Type: model.GroupDetail, Range: &model.AccountRange{Start: 8000, End: 8999}},
			{Label: "Net Income", Level: 0, Type: model.GroupSubtotal, Formula: "Operating Income + Other Income", Highlight: true, IsIncome: true},
		}},
		BalanceSheet: GroupTree{Groups: []model.Group{
			{Label: "Assets", Level: 0, Type: model.GroupHeader},
			{Label: "Cash", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 1000, End: 1099}, Parent: "Assets"},
			{Label: "Accounts Receivable", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 1100, End: 1199}, Parent: "Assets"},
			{Label: "Other Current Assets", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 1200, End: 1499}, Parent: "Assets"},
			{Label: "Fixed Assets", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 1500, End: 1999}, Parent: "Assets"},
			{Label: "Total Assets", Level: 0, Type: model.GroupSubtotal, Formula: "Cash + Accounts Receivable + Other Current Assets + Fixed Assets", Highlight: true},
			{Label: "", Level: 0, Type: model.GroupSpacer},
			{Label: "Liabilities", Level: 0, Type: model.GroupHeader},
			{Label: "Accounts Payable", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 2000, End: 2099}, Negate: true, Parent: "Liabilities"},
			{Label: "Credit Cards", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 2100, End: 2199}, Negate: true, Parent: "Liabilities"},
			{Label: "Other Liabilities", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 2200, End: 2999}, Negate: true, Parent: "Liabilities"},
			{Label: "Total Liabilities", Level: 0, Type: model.GroupSubtotal, Formula: "Accounts Payable + Credit Cards + Other Liabilities", Highlight: true},
			{Label: "Equity", Level: 0, Type: model.GroupHeader},
			{Label: "Owner Contributions", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 3000, End: 3499}, Negate: true, Parent: "Equity"},
			{Label: "Retained Earnings", Level: 1, Type: model.GroupDetail, Special: model.CalcRetainedEarnings, Parent: "Equity"},
			{Label: "Current Year Net Income", Level: 1, Type: model.GroupDetail, Special: model.CalcCurrentYearNet, Parent: "Equity"},
			{Label: "Total Equity", Level: 0, Type: model.GroupSubtotal, Formula: "Owner Contributions + Retained Earnings + Current Year Net Income", Highlight: true},
			{Label: "Total Liabilities & Equity", Level: 0, Type: model.GroupSubtotal, Formula: "Total Liabilities + Total Equity", Highlight: true},
		}},
		CashFlow: GroupTree{Groups: []model.Group{
			{Label: "Net Income", Level: 0, Type: model.GroupDetail, Special: model.CalcNetIncome, Highlight: true},
			{Label: "Adjustments", Level: 0, Type: model.GroupHeader},
			{Label: "Change in Accounts Receivable", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 1100, End: 1199}, Special: model.CalcBalanceChange, ChangeType: model.IncreaseIsNegative, Parent: "Adjustments"},
			{Label: "Change in Accounts Payable", Level: 1, Type: model.GroupDetail, Range: &model.AccountRange{Start: 2000, End: 2099}, Special: model.CalcBalanceChange, ChangeType: model.DecreaseIsPositive, Parent: "Adjustments"},
			{Label: "Net Cash Flow", Level: 0, Type: model.GroupSubtotal, Formula: "Net Income + Change in Accounts Receivable + Change in Accounts Payable", Highlight: true},
			{Label: "", Level: 0, Type: model.GroupSpacer},
			{Label: "Beginning Cash", Level: 0, Type: model.GroupDetail, Range: &model.AccountRange{Start: 1000, End: 1099}, Special: model.CalcBeginningBalance},
			{Label: "Ending Cash", Level: 0, Type: model.GroupSubtotal, Formula: "Beginning Cash + Net Cash Flow", Highlight: true},
		}},
	}
}
