package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/model"
	"github.com/finboard-dev/finboard/internal/period"
	"github.com/finboard-dev/finboard/internal/statement"
)

func newStatementCommand(configPath *string) *cobra.Command {
	var (
		periodFlag     string
		valueFlag      string
		compareFlag    string
		detailFlag     string
		excludeCurrent bool
	)

	cmd := &cobra.Command{
		Use:   "statement <income_statement|balance_sheet|cash_flow>",
		Short: "Print one financial statement for a period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStatementType(args[0])
			if err != nil {
				return err
			}
			spec, err := parsePeriodFlags(periodFlag, valueFlag, excludeCurrent, time.Now())
			if err != nil {
				return err
			}
			return runStatement(cmd, *configPath, st, spec, compareFlag, detailFlag)
		},
	}

	cmd.Flags().StringVar(&periodFlag, "period", "month", "period type (month, quarter, year, ytd, ttm)")
	cmd.Flags().StringVar(&valueFlag, "value", "", "period value, e.g. 2024-06, 2024-Q2, 2024, 2024-YTD-6, TTM-2024-06")
	cmd.Flags().StringVar(&compareFlag, "compare", "", "comparison period (prior or year)")
	cmd.Flags().StringVar(&detailFlag, "detail", "", "detail preset (summary, medium, full)")
	cmd.Flags().BoolVar(&excludeCurrent, "exclude-current", false, "drop the still-accumulating current month")

	return cmd
}

func runStatement(cmd *cobra.Command, configPath string, st model.StatementType, spec period.Spec, compareFlag, detailFlag string) error {
	_, session, err := loadSession(configPath)
	if err != nil {
		return err
	}

	if detailFlag != "" {
		switch lvl := statement.DetailLevel(detailFlag); lvl {
		case statement.DetailSummary, statement.DetailMedium, statement.DetailFull:
			session.ApplyDetail(st, lvl)
		default:
			return fmt.Errorf("unknown detail level %q", detailFlag)
		}
	}

	available := session.Index().Months()
	months := period.Resolve(spec, available, time.Now())
	if len(months) == 0 {
		return fmt.Errorf("period %s %q has no ledger history", spec.Type, spec.Value)
	}

	rows, diags := session.Build(st, months)
	reportDiagnostics(cmd.ErrOrStderr(), diags)

	switch compareFlag {
	case "":
		printRows(cmd.OutOrStdout(), months, statement.VisibleRows(rows, session.Visibility(st)))
	case "prior", "year":
		priorMonths := period.ResolvePrior(spec, compareFlag == "year", available, time.Now())
		var prior []model.Row
		if len(priorMonths) > 0 {
			prior, _ = session.Build(st, priorMonths)
		}
		printVariance(cmd.OutOrStdout(), months, statement.Compare(rows, prior))
	default:
		return fmt.Errorf("unknown compare mode %q (want prior or year)", compareFlag)
	}
	return nil
}

func reportDiagnostics(w io.Writer, diags []statement.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "warning: %s: %v\n", d.Label, d.Err)
	}
}

func printRows(w io.Writer, months []string, rows []model.Row) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\t\n", periodLabel(months))
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t\n", indent(row), amount(row.Value))
	}
	tw.Flush()
}

func printVariance(w io.Writer, months []string, rows []statement.VarianceRow) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\tCompare\tDiff\tPct\t\n", periodLabel(months))
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			indent(row.Row), amount(row.Value), amount(row.Compare), amount(row.Diff), pct(row))
	}
	tw.Flush()
}

func indent(row model.Row) string {
	return strings.Repeat("  ", row.Level) + row.Label
}

func amount(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return v.StringFixed(2)
}

func pct(row statement.VarianceRow) string {
	if row.PctUnavailable {
		return "N/A"
	}
	if row.Pct == nil {
		return ""
	}
	return row.Pct.StringFixed(1) + "%"
}

// periodLabel names the column: a single month key, or a range.
func periodLabel(months []string) string {
	if len(months) == 1 {
		return months[0]
	}
	return months[0] + ".." + months[len(months)-1]
}
