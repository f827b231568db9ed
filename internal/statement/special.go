package statement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/model"
	"github.com/finboard-dev/finboard/internal/period"
)

// incomeExpenseFloor is the first income/expense account number; everything
// at or above it is activity that rolls into net income.
const incomeExpenseFloor = 4000

// incomeExpenseCeil bounds the account-number scan for income/expense
// cumulative sums.
const incomeExpenseCeil = 99999

// specialCalc dispatches one named aggregation. The period's last month
// serves as the as-of month for point-in-time calcs.
func (s *Session) specialCalc(g model.Group, months []string) (decimal.Decimal, error) {
	asOf := months[len(months)-1]

	switch g.Special {
	case model.CalcRetainedEarnings:
		return s.retainedEarnings(asOf)
	case model.CalcCurrentYearNet:
		return s.currentYearNetIncome(asOf)
	case model.CalcNetIncome:
		return s.periodNetIncome(months), nil
	case model.CalcBeginningBalance:
		return s.beginningBalance(g, months)
	case model.CalcBalanceChange:
		return s.balanceChange(g, months)
	}
	return decimal.Zero, fmt.Errorf("unknown special calc %q", g.Special)
}

// retainedEarnings is the accumulated net income through the prior fiscal
// year's close, plus the designated contra-equity account through the as-of
// month. Income/expense activity is stored credit-negative, so the sign
// flips for presentation.
func (s *Session) retainedEarnings(asOf string) (decimal.Decimal, error) {
	year, _, err := period.ParseMonthKey(asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("retained earnings as of %q: %w", asOf, err)
	}
	priorClose := period.MonthKey(year-1, 12)

	re := s.index.CumulativeRange(incomeExpenseFloor, incomeExpenseCeil, priorClose).Neg()
	if s.opts.ContraEquityAccount != 0 {
		contra := s.index.CumulativeBalance([]int{s.opts.ContraEquityAccount}, asOf)
		re = re.Sub(contra)
	}
	return re, nil
}

// currentYearNetIncome is the accumulated net income from January of the
// as-of month's year through the as-of month.
func (s *Session) currentYearNetIncome(asOf string) (decimal.Decimal, error) {
	year, _, err := period.ParseMonthKey(asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("current-year net income as of %q: %w", asOf, err)
	}
	priorClose := period.MonthKey(year-1, 12)

	through := s.index.CumulativeRange(incomeExpenseFloor, incomeExpenseCeil, asOf)
	before := s.index.CumulativeRange(incomeExpenseFloor, incomeExpenseCeil, priorClose)
	return through.Sub(before).Neg(), nil
}

// periodNetIncome is net income over exactly the period months (cash-flow
// statement top line).
func (s *Session) periodNetIncome(months []string) decimal.Decimal {
	return s.index.ActivityRange(incomeExpenseFloor, incomeExpenseCeil, months).Neg()
}

// beginningBalance is the cumulative balance of the group's accounts through
// the month immediately preceding the period, minus any configured
// exclusions.
func (s *Session) beginningBalance(g model.Group, months []string) (decimal.Decimal, error) {
	before, err := period.AddMonths(months[0], -1)
	if err != nil {
		return decimal.Zero, fmt.Errorf("beginning balance before %q: %w", months[0], err)
	}
	accounts := s.calcAccounts(g)
	accounts = exclude(accounts, s.opts.BeginningBalanceExclusions)
	return s.index.CumulativeBalance(accounts, before), nil
}

// balanceChange is the movement in the group's accounts' cumulative balance
// over the period, sign-adjusted for the cash-flow convention: an asset
// increase consumes cash, a liability increase frees it.
func (s *Session) balanceChange(g model.Group, months []string) (decimal.Decimal, error) {
	before, err := period.AddMonths(months[0], -1)
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance change before %q: %w", months[0], err)
	}
	accounts := s.calcAccounts(g)
	delta := s.index.CumulativeBalance(accounts, months[len(months)-1]).
		Sub(s.index.CumulativeBalance(accounts, before))

	switch g.ChangeType {
	case model.IncreaseIsPositive:
		return delta, nil
	case model.DecreaseIsPositive, model.IncreaseIsNegative:
		return delta.Neg(), nil
	case "":
		return delta, nil
	}
	return decimal.Zero, fmt.Errorf("unknown change type %q", g.ChangeType)
}

// calcAccounts resolves the account set a special calc operates on.
func (s *Session) calcAccounts(g model.Group) []int {
	accounts := append([]int(nil), g.Accounts...)
	if g.Range != nil {
		accounts = append(accounts, s.index.AccountsInRange(g.Range.Start, g.Range.End)...)
	}
	return accounts
}

func exclude(accounts, excluded []int) []int {
	if len(excluded) == 0 {
		return accounts
	}
	skip := make(map[int]struct{}, len(excluded))
	for _, a := range excluded {
		skip[a] = struct{}{}
	}
	out := accounts[:0]
	for _, a := range accounts {
		if _, ok := skip[a]; !ok {
			out = append(out, a)
		}
	}
	return out
}
