package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/finboard-dev/finboard/internal/aging"
	"github.com/finboard-dev/finboard/internal/jobs"
	"github.com/finboard-dev/finboard/internal/model"
	"github.com/finboard-dev/finboard/internal/period"
	"github.com/finboard-dev/finboard/internal/statement"
)

type diagJSON struct {
	RowID string `json:"rowId"`
	Label string `json:"label"`
	Error string `json:"error"`
}

type statementResponse struct {
	Type        model.StatementType     `json:"type"`
	Months      []string                `json:"months"`
	Rows        []model.Row             `json:"rows,omitempty"`
	Variance    []statement.VarianceRow `json:"variance,omitempty"`
	Diagnostics []diagJSON              `json:"diagnostics,omitempty"`
}

func parseStatementType(raw string) (model.StatementType, error) {
	switch st := model.StatementType(raw); st {
	case model.StatementIncome, model.StatementBalance, model.StatementCashFlow:
		return st, nil
	default:
		return "", fmt.Errorf("unknown statement type %q", raw)
	}
}

// periodSpec builds a period selection from query parameters. The default
// is the current calendar month.
func (s *Server) periodSpec(r *http.Request) (period.Spec, error) {
	now := s.now()
	spec := period.Spec{
		Type:           period.TypeMonth,
		Value:          period.MonthKey(now.Year(), now.Month()),
		ExcludeCurrent: r.URL.Query().Get("exclude_current") == "true",
	}
	if raw := r.URL.Query().Get("period"); raw != "" {
		switch t := period.Type(raw); t {
		case period.TypeMonth, period.TypeQuarter, period.TypeYear, period.TypeYTD, period.TypeTTM:
			spec.Type = t
		default:
			return spec, fmt.Errorf("unknown period type %q", raw)
		}
	}
	if v := r.URL.Query().Get("value"); v != "" {
		spec.Value = v
	}
	return spec, nil
}

func (s *Server) handleStatement(w http.ResponseWriter, r *http.Request) {
	st, err := parseStatementType(mux.Vars(r)["type"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	spec, err := s.periodSpec(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if detail := r.URL.Query().Get("detail"); detail != "" {
		switch lvl := statement.DetailLevel(detail); lvl {
		case statement.DetailSummary, statement.DetailMedium, statement.DetailFull:
			s.session.ApplyDetail(st, lvl)
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown detail level %q", detail))
			return
		}
	}

	available := s.session.Index().Months()
	months := period.Resolve(spec, available, s.now())
	if len(months) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("period %s %q has no ledger history", spec.Type, spec.Value))
		return
	}

	rows, diags := s.session.Build(st, months)
	resp := statementResponse{Type: st, Months: months, Diagnostics: diagsJSON(diags)}

	switch compare := r.URL.Query().Get("compare"); compare {
	case "":
		resp.Rows = statement.VisibleRows(rows, s.session.Visibility(st))
	case "prior", "year":
		priorMonths := period.ResolvePrior(spec, compare == "year", available, s.now())
		var prior []model.Row
		if len(priorMonths) > 0 {
			prior, _ = s.session.Build(st, priorMonths)
		}
		resp.Variance = visibleVariance(statement.Compare(rows, prior), rows, s.session.Visibility(st))
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown compare mode %q", compare))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func diagsJSON(diags []statement.Diagnostic) []diagJSON {
	out := make([]diagJSON, 0, len(diags))
	for _, d := range diags {
		out = append(out, diagJSON{RowID: d.RowID, Label: d.Label, Error: d.Err.Error()})
	}
	return out
}

// visibleVariance filters variance rows to the currently visible subset.
func visibleVariance(variance []statement.VarianceRow, rows []model.Row, vis *statement.Visibility) []statement.VarianceRow {
	visible := make(map[string]bool, len(rows))
	for _, row := range statement.VisibleRows(rows, vis) {
		visible[row.ID] = true
	}
	out := make([]statement.VarianceRow, 0, len(variance))
	for _, vr := range variance {
		if visible[vr.ID] {
			out = append(out, vr)
		}
	}
	return out
}

type matrixRow struct {
	model.Row
	Values []*decimal.Decimal `json:"values"`
}

type matrixResponse struct {
	Type    model.StatementType `json:"type"`
	Columns []period.Column     `json:"columns"`
	Rows    []matrixRow         `json:"rows"`
}

func (s *Server) handleMatrix(w http.ResponseWriter, r *http.Request) {
	st, err := parseStatementType(mux.Vars(r)["type"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := s.now()
	q := r.URL.Query()
	excl := q.Get("exclude_current") == "true"
	available := s.session.Index().Months()

	year := now.Year()
	if raw := q.Get("year"); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("bad year %q", raw))
			return
		}
	}

	var cols []period.Column
	switch view := q.Get("view"); view {
	case "", "months":
		cols = period.MonthColumns(year, available, now, excl)
	case "quarters":
		cols = period.QuarterColumns(year, available, now, excl)
	case "years":
		from, to := yearRange(q.Get("from"), q.Get("to"), available, year)
		cols = period.YearColumns(from, to, available, now, excl)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown matrix view %q", view))
		return
	}
	if len(cols) == 0 {
		writeError(w, http.StatusBadRequest, "no periods overlap ledger history")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resp := matrixResponse{Type: st, Columns: cols}
	for j, col := range cols {
		rows, _ := s.session.Build(st, col.Months)
		for i, row := range rows {
			if j == 0 {
				skeleton := row
				skeleton.Value = nil
				resp.Rows = append(resp.Rows, matrixRow{Row: skeleton, Values: make([]*decimal.Decimal, len(cols))})
			}
			if i < len(resp.Rows) {
				resp.Rows[i].Values[j] = row.Value
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// yearRange picks the year-matrix bounds, defaulting to the span of ledger
// history.
func yearRange(fromRaw, toRaw string, available []string, fallback int) (int, int) {
	from, to := fallback, fallback
	if len(available) > 0 {
		if y, _, err := period.ParseMonthKey(available[0]); err == nil {
			from = y
		}
		if y, _, err := period.ParseMonthKey(available[len(available)-1]); err == nil {
			to = y
		}
	}
	if y, err := strconv.Atoi(fromRaw); err == nil {
		from = y
	}
	if y, err := strconv.Atoi(toRaw); err == nil {
		to = y
	}
	return from, to
}

type cashAccountJSON struct {
	Name           string          `json:"name"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	LastUpdate     time.Time       `json:"lastUpdate"`
}

type cashResponse struct {
	Accounts []cashAccountJSON                     `json:"accounts"`
	Dates    []string                              `json:"dates"`
	Balances map[string]map[string]decimal.Decimal `json:"balances"`
}

func (s *Server) handleCashPositions(w http.ResponseWriter, r *http.Request) {
	if s.cash == nil {
		writeError(w, http.StatusNotFound, "no cash data loaded")
		return
	}
	resp := cashResponse{
		Accounts: make([]cashAccountJSON, 0, len(s.accounts)),
		Dates:    s.cash.Dates,
		Balances: s.cash.Balances,
	}
	for _, a := range s.accounts {
		resp.Accounts = append(resp.Accounts, cashAccountJSON{
			Name:           a.Name,
			CurrentBalance: a.CurrentBalance,
			LastUpdate:     a.LastUpdate,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type partyJSON struct {
	Name               string                           `json:"name"`
	InvoiceCount       int                              `json:"invoiceCount"`
	TotalDue           decimal.Decimal                  `json:"totalDue"`
	Collectible        decimal.Decimal                  `json:"collectible"`
	Retainage          decimal.Decimal                  `json:"retainage"`
	Buckets            map[aging.Bucket]decimal.Decimal `json:"buckets"`
	AvgDaysOutstanding decimal.Decimal                  `json:"avgDaysOutstanding"`
}

type agingResponse struct {
	Side               string                           `json:"side"`
	InvoiceCount       int                              `json:"invoiceCount"`
	TotalDue           decimal.Decimal                  `json:"totalDue"`
	Collectible        decimal.Decimal                  `json:"collectible"`
	Retainage          decimal.Decimal                  `json:"retainage"`
	Buckets            map[aging.Bucket]decimal.Decimal `json:"buckets"`
	AvgDaysOutstanding decimal.Decimal                  `json:"avgDaysOutstanding"`
	Parties            []partyJSON                      `json:"parties"`
}

func (s *Server) handleAging(w http.ResponseWriter, r *http.Request) {
	var (
		summary aging.Summary
		parties []aging.PartySummary
	)
	side := mux.Vars(r)["side"]
	switch side {
	case "ar":
		summary = aging.SummarizeAR(s.ar)
		parties = aging.ByCustomer(s.ar)
	case "ap":
		summary = aging.SummarizeAP(s.ap)
		parties = aging.ByVendor(s.ap)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown aging side %q", side))
		return
	}

	resp := agingResponse{
		Side:               side,
		InvoiceCount:       summary.InvoiceCount,
		TotalDue:           summary.TotalDue,
		Collectible:        summary.Collectible,
		Retainage:          summary.Retainage,
		Buckets:            summary.Buckets,
		AvgDaysOutstanding: summary.AvgDaysOutstand,
		Parties:            make([]partyJSON, 0, len(parties)),
	}
	for _, p := range parties {
		resp.Parties = append(resp.Parties, partyJSON{
			Name:               p.Name,
			InvoiceCount:       p.InvoiceCount,
			TotalDue:           p.TotalDue,
			Collectible:        p.Collectible,
			Retainage:          p.Retainage,
			Buckets:            p.Buckets,
			AvgDaysOutstanding: p.AvgDaysOutstand,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type managerJSON struct {
	Name               string          `json:"name"`
	TotalJobs          int             `json:"totalJobs"`
	ActiveJobs         int             `json:"activeJobs"`
	JobsWithBudget     int             `json:"jobsWithBudget"`
	JobsValidForProfit int             `json:"jobsValidForProfit"`
	TotalContract      decimal.Decimal `json:"totalContract"`
	TotalBudget        decimal.Decimal `json:"totalBudget"`
	TotalActual        decimal.Decimal `json:"totalActual"`
	TotalBilled        decimal.Decimal `json:"totalBilled"`
	TotalEarnedRevenue decimal.Decimal `json:"totalEarnedRevenue"`
	TotalBacklog       decimal.Decimal `json:"totalBacklog"`
	TotalProfit        decimal.Decimal `json:"totalProfit"`
	AvgMargin          decimal.Decimal `json:"avgMargin"`
	AvgCompletion      decimal.Decimal `json:"avgCompletion"`
}

type jobsResponse struct {
	TotalJobs          int             `json:"totalJobs"`
	JobsWithBudget     int             `json:"jobsWithBudget"`
	JobsWithoutBudget  int             `json:"jobsWithoutBudget"`
	JobsValidForProfit int             `json:"jobsValidForProfit"`
	TotalContract      decimal.Decimal `json:"totalContract"`
	TotalBudget        decimal.Decimal `json:"totalBudget"`
	TotalActual        decimal.Decimal `json:"totalActual"`
	TotalBilled        decimal.Decimal `json:"totalBilled"`
	TotalEarnedRevenue decimal.Decimal `json:"totalEarnedRevenue"`
	TotalBacklog       decimal.Decimal `json:"totalBacklog"`
	TotalProfit        decimal.Decimal `json:"totalProfit"`
	AvgMargin          decimal.Decimal `json:"avgMargin"`
	AvgCompletion      decimal.Decimal `json:"avgCompletion"`
	Managers           []managerJSON   `json:"managers"`
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	if s.jobs == nil {
		writeError(w, http.StatusNotFound, "no job data loaded")
		return
	}
	activeOnly := r.URL.Query().Get("active") == "true"
	summary := jobs.Summarize(s.jobs, activeOnly)
	managers := jobs.ByManager(s.jobs, s.excluded)

	resp := jobsResponse{
		TotalJobs:          summary.TotalJobs,
		JobsWithBudget:     summary.JobsWithBudget,
		JobsWithoutBudget:  summary.JobsWithoutBudget,
		JobsValidForProfit: summary.JobsValidForProfit,
		TotalContract:      summary.TotalContract,
		TotalBudget:        summary.TotalBudget,
		TotalActual:        summary.TotalActual,
		TotalBilled:        summary.TotalBilled,
		TotalEarnedRevenue: summary.TotalEarnedRevenue,
		TotalBacklog:       summary.TotalBacklog,
		TotalProfit:        summary.TotalProfit,
		AvgMargin:          summary.AvgMargin,
		AvgCompletion:      summary.AvgCompletion,
		Managers:           make([]managerJSON, 0, len(managers)),
	}
	for _, m := range managers {
		resp.Managers = append(resp.Managers, managerJSON{
			Name:               m.Name,
			TotalJobs:          m.TotalJobs,
			ActiveJobs:         m.ActiveJobs,
			JobsWithBudget:     m.JobsWithBudget,
			JobsValidForProfit: m.JobsValidForProfit,
			TotalContract:      m.TotalContract,
			TotalBudget:        m.TotalBudget,
			TotalActual:        m.TotalActual,
			TotalBilled:        m.TotalBilled,
			TotalEarnedRevenue: m.TotalEarnedRevenue,
			TotalBacklog:       m.TotalBacklog,
			TotalProfit:        m.TotalProfit,
			AvgMargin:          m.AvgMargin,
			AvgCompletion:      m.AvgCompletion,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	st, err := parseStatementType(vars["type"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := vars["id"]

	s.mu.Lock()
	expanded := s.session.Visibility(st).Toggle(id)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"id": id, "expanded": expanded})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"months": len(s.session.Index().Months()),
		"cash":   s.cash != nil,
		"aging":  len(s.ar) > 0 || len(s.ap) > 0,
		"jobs":   len(s.jobs) > 0,
	})
}
