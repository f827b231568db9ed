package jobs

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ManagerSummary is one project manager's rollup. Earned revenue, backlog,
// and completion cover only budgeted jobs; profit and margin cover only
// jobs valid for profit.
type ManagerSummary struct {
	Name               string
	TotalJobs          int
	ActiveJobs         int
	JobsWithBudget     int
	JobsValidForProfit int
	TotalContract      decimal.Decimal
	TotalBudget        decimal.Decimal
	TotalActual        decimal.Decimal
	TotalBilled        decimal.Decimal
	TotalEarnedRevenue decimal.Decimal
	TotalBacklog       decimal.Decimal
	TotalProfit        decimal.Decimal
	AvgMargin          decimal.Decimal
	AvgCompletion      decimal.Decimal
}

// Summary is the overall job position.
type Summary struct {
	TotalJobs          int
	JobsWithBudget     int
	JobsWithoutBudget  int
	JobsValidForProfit int
	TotalContract      decimal.Decimal
	TotalBudget        decimal.Decimal
	TotalActual        decimal.Decimal
	TotalBilled        decimal.Decimal
	TotalEarnedRevenue decimal.Decimal
	TotalBacklog       decimal.Decimal
	TotalProfit        decimal.Decimal
	AvgMargin          decimal.Decimal
	AvgCompletion      decimal.Decimal
}

// ByManager aggregates job metrics per project manager, sorted by total
// contract value, largest first. Jobs without a manager are skipped, as are
// managers matching the excluded list (case-insensitive substring, so name
// variants of an internal manager all filter out).
func ByManager(metrics []Metrics, excludedManagers []string) []ManagerSummary {
	acc := make(map[string]*managerAccum)
	for _, m := range metrics {
		name := strings.TrimSpace(m.ProjectManager)
		if name == "" || excludedManager(name, excludedManagers) {
			continue
		}

		p, ok := acc[name]
		if !ok {
			p = &managerAccum{}
			acc[name] = p
		}
		p.totalJobs++
		p.contract = p.contract.Add(m.Contract)
		p.budget = p.budget.Add(m.BudgetCost)
		p.actual = p.actual.Add(m.ActualCost)
		p.billed = p.billed.Add(m.Billed)
		if m.Status == StatusActive {
			p.activeJobs++
		}
		if m.HasBudget {
			p.withBudget++
			p.earned = p.earned.Add(m.EarnedRevenue)
			p.backlog = p.backlog.Add(m.Backlog)
			p.completionSum = p.completionSum.Add(m.PercentComplete)
		}
		if m.ValidForProfit {
			p.validForProfit++
			p.profit = p.profit.Add(m.Profit)
			p.marginSum = p.marginSum.Add(m.Margin)
		}
	}

	out := make([]ManagerSummary, 0, len(acc))
	for name, p := range acc {
		s := ManagerSummary{
			Name:               name,
			TotalJobs:          p.totalJobs,
			ActiveJobs:         p.activeJobs,
			JobsWithBudget:     p.withBudget,
			JobsValidForProfit: p.validForProfit,
			TotalContract:      p.contract,
			TotalBudget:        p.budget,
			TotalActual:        p.actual,
			TotalBilled:        p.billed,
			TotalEarnedRevenue: p.earned,
			TotalBacklog:       p.backlog,
			TotalProfit:        p.profit,
		}
		if p.validForProfit > 0 {
			s.AvgMargin = p.marginSum.DivRound(decimal.NewFromInt(int64(p.validForProfit)), 2)
		}
		if p.withBudget > 0 {
			s.AvgCompletion = p.completionSum.DivRound(decimal.NewFromInt(int64(p.withBudget)), 2)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalContract.Equal(out[j].TotalContract) {
			return out[i].TotalContract.GreaterThan(out[j].TotalContract)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Summarize totals the job position. With activeOnly set, only jobs with
// status "A" count.
func Summarize(metrics []Metrics, activeOnly bool) Summary {
	s := Summary{}
	marginSum := decimal.Zero
	completionSum := decimal.Zero

	for _, m := range metrics {
		if activeOnly && m.Status != StatusActive {
			continue
		}
		s.TotalJobs++
		s.TotalContract = s.TotalContract.Add(m.Contract)
		s.TotalBudget = s.TotalBudget.Add(m.BudgetCost)
		s.TotalActual = s.TotalActual.Add(m.ActualCost)
		s.TotalBilled = s.TotalBilled.Add(m.Billed)
		if m.HasBudget {
			s.JobsWithBudget++
			s.TotalEarnedRevenue = s.TotalEarnedRevenue.Add(m.EarnedRevenue)
			s.TotalBacklog = s.TotalBacklog.Add(m.Backlog)
			completionSum = completionSum.Add(m.PercentComplete)
		}
		if m.ValidForProfit {
			s.JobsValidForProfit++
			s.TotalProfit = s.TotalProfit.Add(m.Profit)
			marginSum = marginSum.Add(m.Margin)
		}
	}
	s.JobsWithoutBudget = s.TotalJobs - s.JobsWithBudget

	if s.JobsValidForProfit > 0 {
		s.AvgMargin = marginSum.DivRound(decimal.NewFromInt(int64(s.JobsValidForProfit)), 2)
	}
	if s.JobsWithBudget > 0 {
		s.AvgCompletion = completionSum.DivRound(decimal.NewFromInt(int64(s.JobsWithBudget)), 2)
	}
	return s
}

type managerAccum struct {
	totalJobs      int
	activeJobs     int
	withBudget     int
	validForProfit int
	contract       decimal.Decimal
	budget         decimal.Decimal
	actual         decimal.Decimal
	billed         decimal.Decimal
	earned         decimal.Decimal
	backlog        decimal.Decimal
	profit         decimal.Decimal
	marginSum      decimal.Decimal
	completionSum  decimal.Decimal
}

func excludedManager(name string, excluded []string) bool {
	lower := strings.ToLower(name)
	for _, e := range excluded {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" && strings.Contains(lower, e) {
			return true
		}
	}
	return false
}
