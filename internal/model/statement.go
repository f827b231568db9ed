package model

import "github.com/shopspring/decimal"

// StatementType identifies one of the three statement group trees.
type StatementType string

const (
	StatementIncome   StatementType = "income_statement"
	StatementBalance  StatementType = "balance_sheet"
	StatementCashFlow StatementType = "cash_flow"
)

// GroupType classifies a group definition row.
type GroupType string

const (
	GroupHeader   GroupType = "header"
	GroupDetail   GroupType = "detail"
	GroupSubtotal GroupType = "subtotal"
	GroupRatio    GroupType = "ratio"
	GroupSpacer   GroupType = "spacer"
)

// SpecialCalc names a hard-coded aggregation that cannot be expressed as an
// account sum or a formula.
type SpecialCalc string

const (
	CalcRetainedEarnings SpecialCalc = "retained_earnings"
	CalcCurrentYearNet   SpecialCalc = "current_year_net_income"
	CalcNetIncome        SpecialCalc = "net_income"
	CalcBeginningBalance SpecialCalc = "beginning_balance"
	CalcBalanceChange    SpecialCalc = "balance_change"
)

// ChangeType controls the cash-flow sign convention applied to a
// balance_change special calc (asset vs. liability movements).
type ChangeType string

const (
	IncreaseIsPositive ChangeType = "increase_is_positive"
	DecreaseIsPositive ChangeType = "decrease_is_positive"
	IncreaseIsNegative ChangeType = "increase_is_negative"
)

// AccountRange is an inclusive numeric account-number range.
type AccountRange struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Group is one row definition in a statement group tree. Exactly one value
// source (Accounts, Range, Formula, Special) should be set; a group with
// none yields a row with no value. The beginning_balance and balance_change
// special calcs additionally read Accounts/Range for their account set.
type Group struct {
	Label      string        `yaml:"label"`
	Level      int           `yaml:"level"`
	Type       GroupType     `yaml:"type"`
	Accounts   []int         `yaml:"accounts,omitempty"`
	Range      *AccountRange `yaml:"accounts_range,omitempty"`
	Formula    string        `yaml:"formula,omitempty"`
	Special    SpecialCalc   `yaml:"special,omitempty"`
	ChangeType ChangeType    `yaml:"change_type,omitempty"`
	Negate     bool          `yaml:"negate,omitempty"`
	Expandable bool          `yaml:"expandable,omitempty"`
	Parent     string        `yaml:"parent,omitempty"`
	Highlight  bool          `yaml:"highlight,omitempty"`
	// IsIncome forces income-side favorability for rows the account bands
	// cannot classify, chiefly formula subtotals like a gross profit line.
	IsIncome bool `yaml:"is_income,omitempty"`
}

// Row is one computed statement row. Value is nil for spacer and header rows.
type Row struct {
	ID         string           `json:"id"`
	Label      string           `json:"label"`
	Level      int              `json:"level"`
	Type       GroupType        `json:"type"`
	Value      *decimal.Decimal `json:"value"`
	Expandable bool             `json:"expandable"`
	Parent     string           `json:"parent,omitempty"`
	Highlight  bool             `json:"highlight,omitempty"`
	IsIncome   bool             `json:"isIncome"`
}
