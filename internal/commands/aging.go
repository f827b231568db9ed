package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finboard-dev/finboard/internal/aging"
	"github.com/finboard-dev/finboard/internal/config"
)

var bucketOrder = []aging.Bucket{
	aging.BucketCurrent,
	aging.Bucket31to60,
	aging.Bucket61to90,
	aging.Bucket90Plus,
}

var bucketHeaders = map[aging.Bucket]string{
	aging.BucketCurrent: "Current",
	aging.Bucket31to60:  "31-60",
	aging.Bucket61to90:  "61-90",
	aging.Bucket90Plus:  "90+",
}

func newAgingCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aging <ar|ap>",
		Short: "Print invoice aging by customer or vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			ar, ap, err := loadAging(cfg)
			if err != nil {
				return err
			}

			switch args[0] {
			case "ar":
				printAging(cmd.OutOrStdout(), "Customer", aging.SummarizeAR(ar), aging.ByCustomer(ar))
			case "ap":
				printAging(cmd.OutOrStdout(), "Vendor", aging.SummarizeAP(ap), aging.ByVendor(ap))
			default:
				return fmt.Errorf("unknown aging side %q (want ar or ap)", args[0])
			}
			return nil
		},
	}

	return cmd
}

func printAging(w io.Writer, partyHeader string, summary aging.Summary, parties []aging.PartySummary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)

	fmt.Fprintf(tw, "%s\tInvoices\tTotal Due\t", partyHeader)
	for _, b := range bucketOrder {
		fmt.Fprintf(tw, "%s\t", bucketHeaders[b])
	}
	fmt.Fprintln(tw, "Avg Days\t")

	for _, p := range parties {
		fmt.Fprintf(tw, "%s\t%d\t%s\t", p.Name, p.InvoiceCount, p.TotalDue.StringFixed(2))
		for _, b := range bucketOrder {
			fmt.Fprintf(tw, "%s\t", p.Buckets[b].StringFixed(2))
		}
		fmt.Fprintf(tw, "%s\t\n", p.AvgDaysOutstand.StringFixed(1))
	}

	fmt.Fprintf(tw, "Total\t%d\t%s\t", summary.InvoiceCount, summary.TotalDue.StringFixed(2))
	for _, b := range bucketOrder {
		fmt.Fprintf(tw, "%s\t", summary.Buckets[b].StringFixed(2))
	}
	fmt.Fprintf(tw, "%s\t\n", summary.AvgDaysOutstand.StringFixed(1))
	tw.Flush()
}
