package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finboard-dev/finboard/internal/model"
)

func valueRow(label string, value string, isIncome bool) model.Row {
	v := dec(value)
	return model.Row{ID: rowID(label), Label: label, Type: model.GroupDetail, Value: &v, IsIncome: isIncome}
}

func TestCompare_Variance(t *testing.T) {
	current := []model.Row{valueRow("Revenue", "120", true)}
	prior := []model.Row{valueRow("Revenue", "100", true)}

	got := Compare(current, prior)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Diff)
	assert.True(t, got[0].Diff.Equal(dec("20")))
	require.NotNil(t, got[0].Pct)
	assert.True(t, got[0].Pct.Equal(dec("20")), "got %s", got[0].Pct)
	assert.True(t, got[0].Favorable)
}

func TestCompare_NegativeComparisonUsesMagnitude(t *testing.T) {
	current := []model.Row{valueRow("Net Income", "-50", true)}
	prior := []model.Row{valueRow("Net Income", "-100", true)}

	got := Compare(current, prior)
	require.NotNil(t, got[0].Pct)
	assert.True(t, got[0].Pct.Equal(dec("50")), "got %s", got[0].Pct)
	assert.True(t, got[0].Favorable)
}

func TestCompare_ZeroComparison(t *testing.T) {
	current := []model.Row{valueRow("Revenue", "50", true)}
	prior := []model.Row{valueRow("Revenue", "0", true)}

	got := Compare(current, prior)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Pct, "percentage undefined against zero")
	assert.True(t, got[0].PctUnavailable)
	require.NotNil(t, got[0].Diff)
	assert.True(t, got[0].Diff.Equal(dec("50")))
}

func TestCompare_ZeroAgainstZero(t *testing.T) {
	current := []model.Row{valueRow("Revenue", "0", true)}
	prior := []model.Row{valueRow("Revenue", "0", true)}

	got := Compare(current, prior)
	require.NotNil(t, got[0].Pct)
	assert.True(t, got[0].Pct.IsZero())
	assert.False(t, got[0].PctUnavailable)
}

func TestCompare_UnavailablePeriod(t *testing.T) {
	current := []model.Row{valueRow("Revenue", "120", true)}

	got := Compare(current, nil)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Compare)
	assert.Nil(t, got[0].Diff)
	assert.Nil(t, got[0].Pct)
	assert.False(t, got[0].PctUnavailable)
}

func TestCompare_StructuralRows(t *testing.T) {
	current := []model.Row{{ID: "spacer-1", Type: model.GroupSpacer}}
	prior := []model.Row{{ID: "spacer-1", Type: model.GroupSpacer}}

	got := Compare(current, prior)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Diff)
}

func TestCompare_Favorability(t *testing.T) {
	// Spending less than the comparison period is favorable for expense
	// rows and unfavorable for income rows.
	expense := Compare(
		[]model.Row{valueRow("Payroll", "80", false)},
		[]model.Row{valueRow("Payroll", "100", false)},
	)
	assert.True(t, expense[0].Favorable)

	income := Compare(
		[]model.Row{valueRow("Revenue", "80", true)},
		[]model.Row{valueRow("Revenue", "100", true)},
	)
	assert.False(t, income[0].Favorable)
}

func TestCompare_WithBuiltRows(t *testing.T) {
	s := testSession(t, incomeTree())
	current, _ := s.Build(model.StatementIncome, []string{"2024-01"})
	prior, _ := s.Build(model.StatementIncome, []string{"2023-12"})

	got := Compare(current, prior)
	require.Len(t, got, len(current))

	for _, vr := range got {
		switch vr.Label {
		case "Revenue":
			// 1500 now vs 1000 then.
			require.NotNil(t, vr.Diff)
			assert.True(t, vr.Diff.Equal(dec("500")))
			require.NotNil(t, vr.Pct)
			assert.True(t, vr.Pct.Equal(dec("50")), "got %s", vr.Pct)
		case "Gross Profit":
			// 900 now vs 1000 then: a shrinking gross profit is
			// unfavorable because the subtotal sits on the income side.
			require.NotNil(t, vr.Diff)
			assert.True(t, vr.Diff.Equal(dec("-100")))
			assert.False(t, vr.Favorable)
		}
	}
}
