package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/cashpos"
	"github.com/finboard-dev/finboard/internal/config"
	"github.com/finboard-dev/finboard/internal/model"
)

func newCashCommand(configPath *string) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "cash",
		Short: "Print reconstructed daily cash balances per account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			accounts, table, err := loadCash(cfg, time.Now())
			if err != nil {
				return err
			}
			printCash(cmd.OutOrStdout(), accounts, table, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 14, "number of trailing days to print")

	return cmd
}

func printCash(w io.Writer, accounts []model.CashAccount, table *cashpos.Table, days int) {
	dates := table.Dates
	if days > 0 && len(dates) > days {
		dates = dates[len(dates)-days:]
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "Date\t")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%s\t", a.Name)
	}
	fmt.Fprintln(tw, "Total\t")

	for _, date := range dates {
		fmt.Fprintf(tw, "%s\t", date)
		total := decimal.Zero
		for _, a := range accounts {
			bal := table.Balance(date, a.Name)
			total = total.Add(bal)
			fmt.Fprintf(tw, "%s\t", bal.StringFixed(2))
		}
		fmt.Fprintf(tw, "%s\t\n", total.StringFixed(2))
	}
	tw.Flush()
}
