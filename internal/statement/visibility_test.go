package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finboard-dev/finboard/internal/model"
)

func nestedTree() []model.Group {
	return []model.Group{
		{Label: "Operating Expenses", Level: 0, Type: model.GroupHeader, Expandable: true},
		{Label: "Payroll", Level: 1, Type: model.GroupHeader, Expandable: true, Parent: "Operating Expenses"},
		{Label: "Salaries", Level: 2, Type: model.GroupDetail, Accounts: []int{6000}, Parent: "Payroll"},
		{Label: "Revenue", Level: 0, Type: model.GroupSubtotal, Range: &model.AccountRange{Start: 4000, End: 4999}},
	}
}

func TestVisibility_DefaultCollapsed(t *testing.T) {
	s := testSession(t, nestedTree())
	rows, _ := s.Build(model.StatementIncome, []string{"2024-01"})

	vis := s.Visibility(model.StatementIncome)
	assert.False(t, vis.Expanded(rowID("Operating Expenses")))

	shown := VisibleRows(rows, vis)
	labels := rowLabels(shown)
	assert.Contains(t, labels, "Operating Expenses")
	assert.Contains(t, labels, "Revenue")
	assert.NotContains(t, labels, "Payroll")
	assert.NotContains(t, labels, "Salaries")
}

func TestVisibility_CollapsedAncestorHidesDescendants(t *testing.T) {
	s := testSession(t, nestedTree())
	rows, _ := s.Build(model.StatementIncome, []string{"2024-01"})
	vis := s.Visibility(model.StatementIncome)

	// Expanding the middle level alone is not enough: its own parent is
	// still collapsed.
	vis.Set(rowID("Payroll"), true)
	labels := rowLabels(VisibleRows(rows, vis))
	assert.NotContains(t, labels, "Payroll")
	assert.NotContains(t, labels, "Salaries")

	vis.Set(rowID("Operating Expenses"), true)
	labels = rowLabels(VisibleRows(rows, vis))
	assert.Contains(t, labels, "Payroll")
	assert.Contains(t, labels, "Salaries")
}

func TestVisibility_SurvivesRebuilds(t *testing.T) {
	s := testSession(t, nestedTree())
	vis := s.Visibility(model.StatementIncome)

	s.Build(model.StatementIncome, []string{"2024-01"})
	vis.Set(rowID("Operating Expenses"), true)

	// A period change rebuilds rows but keeps the same visibility map.
	s.Build(model.StatementIncome, []string{"2024-02"})
	assert.True(t, s.Visibility(model.StatementIncome).Expanded(rowID("Operating Expenses")))
	assert.Same(t, vis, s.Visibility(model.StatementIncome))
}

func TestVisibility_Toggle(t *testing.T) {
	vis := NewVisibility()
	assert.True(t, vis.Toggle("a"))
	assert.False(t, vis.Toggle("a"))

	// Toggling one row never disturbs another.
	vis.Set("b", true)
	vis.Toggle("a")
	assert.True(t, vis.Expanded("b"))
}

func TestVisibility_Presets(t *testing.T) {
	s := testSession(t, nestedTree())
	vis := s.Visibility(model.StatementIncome)

	s.ApplyDetail(model.StatementIncome, DetailFull)
	assert.True(t, vis.Expanded(rowID("Operating Expenses")))
	assert.True(t, vis.Expanded(rowID("Payroll")))

	s.ApplyDetail(model.StatementIncome, DetailMedium)
	assert.True(t, vis.Expanded(rowID("Operating Expenses")))
	assert.False(t, vis.Expanded(rowID("Payroll")))

	s.ApplyDetail(model.StatementIncome, DetailSummary)
	assert.False(t, vis.Expanded(rowID("Operating Expenses")))
	assert.False(t, vis.Expanded(rowID("Payroll")))
}

func TestRowID(t *testing.T) {
	assert.Equal(t, "total-cost-of-sales", rowID("Total Cost of Sales"))
	assert.Equal(t, "office-admin", rowID("Office & Admin"))
	assert.Equal(t, "", rowID(""))
}

func rowLabels(rows []model.Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Label)
	}
	return out
}
