package statement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/formula"
	"github.com/finboard-dev/finboard/internal/model"
)

// incomeBands are the account ranges whose raw credit-negative totals are
// flipped to positive magnitudes for presentation.
var incomeBands = []model.AccountRange{
	{Start: 4000, End: 4999},
	{Start: 8000, End: 8999},
}

// Diagnostic records a row whose value could not be computed. The row is
// still emitted with a zero value so the statement shape never collapses,
// but tests and callers can tell "legitimately zero" from "failed".
type Diagnostic struct {
	RowID string
	Label string
	Err   error
}

// spacerLabels name the rows that inject a trailing spacer row, a
// formatting rule carried by the income statement layout.
var spacerLabels = map[string]bool{
	"Revenue":             true,
	"Total Cost of Sales": true,
}

// Build walks one statement's group tree in config order against the given
// resolved months and produces the flat row list. Formula and special-calc
// groups may reference only labels computed earlier in the walk.
func (s *Session) Build(st model.StatementType, months []string) ([]model.Row, []Diagnostic) {
	tr, ok := s.trees[st]
	if !ok || len(months) == 0 {
		return nil, nil
	}

	vis := s.visibility[st]
	values := make(map[string]decimal.Decimal, len(tr.groups))
	rows := make([]model.Row, 0, len(tr.groups))
	var diags []Diagnostic
	spacerSeq := 0

	for _, g := range tr.groups {
		row := model.Row{
			ID:         rowID(g.Label),
			Label:      g.Label,
			Level:      g.Level,
			Type:       g.Type,
			Expandable: g.Expandable,
			Parent:     g.Parent,
			Highlight:  g.Highlight,
		}
		if row.ID == "" {
			spacerSeq++
			row.ID = fmt.Sprintf("spacer-%d", spacerSeq)
		}

		switch {
		case g.Type == model.GroupSpacer || g.Type == model.GroupHeader:
			// Structural rows bound sections; no numeric meaning.

		case g.Special != "":
			v, err := s.specialCalc(g, months)
			if err != nil {
				diags = append(diags, Diagnostic{RowID: row.ID, Label: g.Label, Err: err})
				v = decimal.Zero
			}
			row.Value = &v
			row.IsIncome = g.IsIncome || isIncomeCalc(g.Special)
			values[g.Label] = v

		case len(g.Accounts) > 0 || g.Range != nil:
			v := s.accountSum(g, months)
			row.Value = &v
			row.IsIncome = g.IsIncome || s.isIncomeGroup(g)
			values[g.Label] = v

		case g.Formula != "":
			v, err := formula.EvalWith(g.Formula, values)
			if err != nil {
				diags = append(diags, Diagnostic{RowID: row.ID, Label: g.Label,
					Err: fmt.Errorf("formula %q: %w", g.Formula, err)})
				v = decimal.Zero
			}
			row.Value = &v
			row.IsIncome = g.IsIncome
			values[g.Label] = v

		default:
			// No recognized value source: emit the row with no value.
		}

		if g.Expandable {
			vis.Ensure(row.ID)
		}
		rows = append(rows, row)

		if spacerLabels[g.Label] && st == model.StatementIncome {
			spacerSeq++
			rows = append(rows, model.Row{
				ID:   fmt.Sprintf("spacer-%d", spacerSeq),
				Type: model.GroupSpacer,
			})
		}
	}

	return rows, diags
}

// accountSum resolves an accounts or accounts_range group: raw activity over
// the months, with the income-band sign flip (credit-negative storage shown
// as positive) unless the group negates explicitly.
func (s *Session) accountSum(g model.Group, months []string) decimal.Decimal {
	accounts := g.Accounts
	if g.Range != nil {
		accounts = append(append([]int(nil), accounts...), s.index.AccountsInRange(g.Range.Start, g.Range.End)...)
	}
	total := s.index.Activity(accounts, months)

	switch {
	case g.Negate:
		return total.Neg()
	case s.isIncomeGroup(g):
		return total.Neg()
	}
	return total
}

// isIncomeGroup reports whether every account the group names falls in an
// income band (4000-4999 or 8000-8999).
func (s *Session) isIncomeGroup(g model.Group) bool {
	accounts := g.Accounts
	if g.Range != nil {
		accounts = append(append([]int(nil), accounts...), g.Range.Start, g.Range.End)
	}
	if len(accounts) == 0 {
		return false
	}
	for _, a := range accounts {
		inBand := false
		for _, band := range incomeBands {
			if a >= band.Start && a <= band.End {
				inBand = true
				break
			}
		}
		if !inBand {
			return false
		}
	}
	return true
}

func isIncomeCalc(calc model.SpecialCalc) bool {
	return calc == model.CalcNetIncome || calc == model.CalcCurrentYearNet
}
