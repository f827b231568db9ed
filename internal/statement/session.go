package statement

import (
	"github.com/finboard-dev/finboard/internal/config"
	"github.com/finboard-dev/finboard/internal/ledger"
	"github.com/finboard-dev/finboard/internal/model"
)

// Options carries the per-company knobs the builder reads.
type Options struct {
	// ContraEquityAccount is folded into retained earnings; zero means none.
	ContraEquityAccount int
	// BeginningBalanceExclusions are accounts left out of the cash-flow
	// beginning-balance calc.
	BeginningBalanceExclusions []int
}

// Session owns everything one loaded snapshot needs to build statements:
// the ledger index, the three group trees with precomputed lookups, and one
// visibility map per statement type. Construct once per snapshot; all state
// that outlives a build lives here rather than in package globals.
type Session struct {
	index      *ledger.Index
	statements *config.Statements
	opts       Options
	trees      map[model.StatementType]*tree
	visibility map[model.StatementType]*Visibility
}

// NewSession builds a Session for a loaded snapshot.
func NewSession(idx *ledger.Index, stmts *config.Statements, opts Options) *Session {
	s := &Session{
		index:      idx,
		statements: stmts,
		opts:       opts,
		trees:      make(map[model.StatementType]*tree),
		visibility: make(map[model.StatementType]*Visibility),
	}
	for _, st := range []model.StatementType{model.StatementIncome, model.StatementBalance, model.StatementCashFlow} {
		s.trees[st] = newTree(stmts.Tree(st))
		s.visibility[st] = NewVisibility()
	}
	return s
}

// Index exposes the session's ledger index.
func (s *Session) Index() *ledger.Index { return s.index }

// Visibility returns the visibility map for a statement type. The same
// instance is returned across builds.
func (s *Session) Visibility(st model.StatementType) *Visibility {
	return s.visibility[st]
}

// ApplyDetail bulk-overwrites a statement's visibility map from a preset.
func (s *Session) ApplyDetail(st model.StatementType, level DetailLevel) {
	tr, ok := s.trees[st]
	if !ok {
		return
	}
	s.visibility[st].ApplyPreset(level, tr.groups)
}
