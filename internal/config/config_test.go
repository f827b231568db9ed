package config

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finboard-dev/finboard/internal/model"
)

func TestConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finboard.yaml")

	cfg := Default("FTG Builders")
	cfg.CashFlow.BeginningBalanceExclusions = []int{1090}
	cfg.Aging.ExcludedVendors = []string{"FTG Builders LLC"}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FTG Builders", loaded.Company.Name)
	assert.Equal(t, ":8080", loaded.Server.Addr)
	assert.Equal(t, []int{1090}, loaded.CashFlow.BeginningBalanceExclusions)
	assert.Equal(t, []string{"FTG Builders LLC"}, loaded.Aging.ExcludedVendors)
}

func TestConfig_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finboard.yaml")
	require.NoError(t, Save(path, Default("Acme")))

	t.Setenv("FINBOARD_ADDR", ":9090")
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", loaded.Server.Addr)
}

func TestConfig_LoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestStatements_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statements.yaml")

	s := DefaultStatements()
	require.NoError(t, SaveStatements(path, s))

	loaded, err := LoadStatements(path)
	require.NoError(t, err)
	assert.Equal(t, s.IncomeStatement.Groups, loaded.IncomeStatement.Groups)
	assert.Equal(t, s.BalanceSheet.Groups, loaded.BalanceSheet.Groups)
	assert.Equal(t, s.CashFlow.Groups, loaded.CashFlow.Groups)
}

func TestStatements_Tree(t *testing.T) {
	s := DefaultStatements()
	assert.NotEmpty(t, s.Tree(model.StatementIncome))
	assert.NotEmpty(t, s.Tree(model.StatementBalance))
	assert.NotEmpty(t, s.Tree(model.StatementCashFlow))
	assert.Nil(t, s.Tree(model.StatementType("unknown")))
}

// Formulas may reference only labels defined earlier in the same tree:
// stripping every earlier label from a formula must leave nothing but
// operators and whitespace.
func TestDefaultStatements_FormulasReferenceEarlierLabels(t *testing.T) {
	s := DefaultStatements()
	for _, st := range []model.StatementType{model.StatementIncome, model.StatementBalance, model.StatementCashFlow} {
		var earlier []string
		for _, g := range s.Tree(st) {
			if g.Formula != "" {
				rest := g.Formula
				// Longest first, matching how the builder substitutes.
				sorted := append([]string(nil), earlier...)
				sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
				for _, label := range sorted {
					if label != "" {
						rest = strings.ReplaceAll(rest, label, "")
					}
				}
				rest = strings.Trim(rest, " +-*/()")
				assert.Empty(t, rest, "%s: formula for %q references a later label", st, g.Label)
			}
			earlier = append(earlier, g.Label)
		}
	}
}
