// Package jobs computes per-job cost metrics from budget, actual-cost, and
// billed-revenue records: completion percentage, earned revenue, backlog,
// over/under billing, and profit with a closed-versus-active basis rule.
package jobs

import (
	"github.com/shopspring/decimal"
)

// Status is the raw job status code from the cost system. "C" is closed;
// everything else ("A", "O", "I") is treated as active for profit purposes.
type Status string

const (
	StatusActive Status = "A"
	StatusClosed Status = "C"
)

// Basis records which profit rule a job's metrics used.
type Basis string

const (
	// BasisActual applies to closed jobs: profit is billed minus actual cost.
	BasisActual Basis = "actual"
	// BasisProjected applies to open jobs: profit is contract minus budget.
	BasisProjected Basis = "projected"
)

// Budget is one raw job budget record.
type Budget struct {
	JobNo            string
	Description      string
	ProjectManager   string
	CustomerName     string
	Status           Status
	OriginalContract decimal.Decimal
	Contract         decimal.Decimal // revised contract
	OriginalCost     decimal.Decimal
	BudgetCost       decimal.Decimal // revised cost
}

// Actual is one raw actual-cost record. A job may have many; they sum.
type Actual struct {
	JobNo  string
	Amount decimal.Decimal
}

// Billed is one billed-revenue record. One per job; a later record for the
// same job replaces the earlier one.
type Billed struct {
	JobNo  string
	Amount decimal.Decimal
}

// Metrics is one job with its computed cost metrics.
type Metrics struct {
	Budget
	ActualCost       decimal.Decimal
	Billed           decimal.Decimal
	HasBudget        bool
	PercentComplete  decimal.Decimal
	EarnedRevenue    decimal.Decimal
	Backlog          decimal.Decimal
	Profit           decimal.Decimal
	Margin           decimal.Decimal
	ValidForProfit   bool
	ProfitBasis      Basis
	OverUnderBilling decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Compute joins budgets with summed actuals and billed revenue and computes
// metrics for every job. Jobs with no budget cost still appear, with zero
// completion and earned revenue, so counts stay honest; the ValidForProfit
// flag keeps jobs with missing revenue or cost data out of profit rollups.
func Compute(budgets []Budget, actuals []Actual, billed []Billed) []Metrics {
	actualByJob := make(map[string]decimal.Decimal)
	for _, a := range actuals {
		actualByJob[a.JobNo] = actualByJob[a.JobNo].Add(a.Amount)
	}
	billedByJob := make(map[string]decimal.Decimal)
	for _, b := range billed {
		billedByJob[b.JobNo] = b.Amount
	}

	out := make([]Metrics, 0, len(budgets))
	for _, job := range budgets {
		out = append(out, compute(job, actualByJob[job.JobNo], billedByJob[job.JobNo]))
	}
	return out
}

func compute(job Budget, actualCost, billedAmt decimal.Decimal) Metrics {
	m := Metrics{
		Budget:     job,
		ActualCost: actualCost,
		Billed:     billedAmt,
		HasBudget:  job.BudgetCost.IsPositive(),
	}

	if m.HasBudget {
		m.PercentComplete = actualCost.Mul(hundred).DivRound(job.BudgetCost, 2)
		if m.PercentComplete.GreaterThan(hundred) {
			m.PercentComplete = hundred
		}
		m.EarnedRevenue = actualCost.Mul(job.Contract).DivRound(job.BudgetCost, 2)
	}
	m.Backlog = job.Contract.Sub(m.EarnedRevenue)
	m.OverUnderBilling = billedAmt.Sub(m.EarnedRevenue)

	if job.Status == StatusClosed {
		m.ProfitBasis = BasisActual
		m.Profit = billedAmt.Sub(actualCost)
		if billedAmt.IsPositive() {
			m.Margin = m.Profit.Mul(hundred).DivRound(billedAmt, 2)
		}
		m.ValidForProfit = billedAmt.IsPositive() && actualCost.IsPositive()
	} else {
		m.ProfitBasis = BasisProjected
		m.Profit = job.Contract.Sub(job.BudgetCost)
		if job.Contract.IsPositive() {
			m.Margin = m.Profit.Mul(hundred).DivRound(job.Contract, 2)
		}
		m.ValidForProfit = job.Contract.IsPositive() && job.BudgetCost.IsPositive()
	}
	return m
}
