package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/model"
	"github.com/finboard-dev/finboard/internal/period"
	"github.com/finboard-dev/finboard/internal/statement"
)

func newMatrixCommand(configPath *string) *cobra.Command {
	var (
		viewFlag       string
		yearFlag       int
		fromFlag       int
		toFlag         int
		excludeCurrent bool
	)

	cmd := &cobra.Command{
		Use:   "matrix <income_statement|balance_sheet|cash_flow>",
		Short: "Print one statement across a row of periods",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStatementType(args[0])
			if err != nil {
				return err
			}
			return runMatrix(cmd, *configPath, st, viewFlag, yearFlag, fromFlag, toFlag, excludeCurrent)
		},
	}

	cmd.Flags().StringVar(&viewFlag, "view", "months", "matrix view (months, quarters, years)")
	cmd.Flags().IntVar(&yearFlag, "year", 0, "calendar year for months/quarters views (default: current)")
	cmd.Flags().IntVar(&fromFlag, "from", 0, "first year for the years view (default: oldest in history)")
	cmd.Flags().IntVar(&toFlag, "to", 0, "last year for the years view (default: newest in history)")
	cmd.Flags().BoolVar(&excludeCurrent, "exclude-current", false, "drop the still-accumulating current month")

	return cmd
}

func runMatrix(cmd *cobra.Command, configPath string, st model.StatementType, view string, year, from, to int, excludeCurrent bool) error {
	_, session, err := loadSession(configPath)
	if err != nil {
		return err
	}

	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	available := session.Index().Months()

	var cols []period.Column
	switch view {
	case "months":
		cols = period.MonthColumns(year, available, now, excludeCurrent)
	case "quarters":
		cols = period.QuarterColumns(year, available, now, excludeCurrent)
	case "years":
		if from == 0 || to == 0 {
			histFrom, histTo, err := historyYears(available)
			if err != nil {
				return err
			}
			if from == 0 {
				from = histFrom
			}
			if to == 0 {
				to = histTo
			}
		}
		cols = period.YearColumns(from, to, available, now, excludeCurrent)
	default:
		return fmt.Errorf("unknown matrix view %q (want months, quarters, or years)", view)
	}
	if len(cols) == 0 {
		return fmt.Errorf("no %s periods overlap ledger history", view)
	}

	printMatrix(cmd.OutOrStdout(), session, st, cols)
	return nil
}

func historyYears(available []string) (from, to int, err error) {
	if len(available) == 0 {
		return 0, 0, fmt.Errorf("ledger has no months")
	}
	if from, _, err = period.ParseMonthKey(available[0]); err != nil {
		return 0, 0, err
	}
	if to, _, err = period.ParseMonthKey(available[len(available)-1]); err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

func printMatrix(w io.Writer, session *statement.Session, st model.StatementType, cols []period.Column) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "\t")
	for _, col := range cols {
		label := col.Label
		if col.IsPartial {
			label += "*"
		}
		fmt.Fprintf(tw, "%s\t", label)
	}
	fmt.Fprintln(tw)

	var table [][]string
	var labels []string
	for j, col := range cols {
		rows, _ := session.Build(st, col.Months)
		for i, row := range rows {
			if j == 0 {
				labels = append(labels, indent(row))
				table = append(table, make([]string, len(cols)))
			}
			if i < len(table) {
				table[i][j] = amount(row.Value)
			}
		}
	}
	for i, label := range labels {
		fmt.Fprintf(tw, "%s\t", label)
		for _, cell := range table[i] {
			fmt.Fprintf(tw, "%s\t", cell)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}
