package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/config"
	"github.com/finboard-dev/finboard/internal/jobs"
)

func newJobsCommand(configPath *string) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Print job cost metrics rolled up by project manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			metrics, err := loadJobs(cfg)
			if err != nil {
				return err
			}

			printJobs(cmd.OutOrStdout(),
				jobs.ByManager(metrics, cfg.Jobs.ExcludedManagers),
				jobs.Summarize(metrics, activeOnly))
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "limit the summary to active jobs")

	return cmd
}

func printJobs(w io.Writer, managers []jobs.ManagerSummary, summary jobs.Summary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintln(tw, "Manager\tJobs\tActive\tContract\tEarned\tBacklog\tProfit\tAvg Margin\tAvg Compl\t")
	for _, m := range managers {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s%%\t%s%%\t\n",
			m.Name, m.TotalJobs, m.ActiveJobs,
			m.TotalContract.StringFixed(2),
			m.TotalEarnedRevenue.StringFixed(2),
			m.TotalBacklog.StringFixed(2),
			m.TotalProfit.StringFixed(2),
			m.AvgMargin.StringFixed(2),
			m.AvgCompletion.StringFixed(2))
	}
	tw.Flush()

	fmt.Fprintf(w, "\nJobs: %d (%d budgeted, %d without budget, %d valid for profit)\n",
		summary.TotalJobs, summary.JobsWithBudget, summary.JobsWithoutBudget, summary.JobsValidForProfit)
	fmt.Fprintf(w, "Contract %s  Earned %s  Backlog %s  Profit %s  Avg margin %s%%\n",
		summary.TotalContract.StringFixed(2),
		summary.TotalEarnedRevenue.StringFixed(2),
		summary.TotalBacklog.StringFixed(2),
		summary.TotalProfit.StringFixed(2),
		summary.AvgMargin.StringFixed(2))
}
