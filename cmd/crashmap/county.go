package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/crash-map/internal/domain"
)

var countyCmd = &cobra.Command{
	Use:   "county <id>",
	Short: "Show one county's crashes per year",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		years, err := yearsFlag(cmd)
		if err != nil {
			return err
		}
		v, err := buildViewer()
		if err != nil {
			return err
		}

		d, err := v.Detail(domain.FeatureID(args[0]), years)
		if err != nil {
			return fmt.Errorf("county %s: %w", args[0], err)
		}
		formatDetail(cmd.OutOrStdout(), d)
		return nil
	},
}

// formatDetail writes the per-year breakdown, marking years outside the filter.
func formatDetail(out io.Writer, d domain.Detail) {
	_, _ = fmt.Fprintln(out, d.Label)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, yc := range d.Years {
		mark := ""
		if !yc.Selected {
			mark = "(excluded)"
		}
		_, _ = fmt.Fprintf(w, "  %s\t%d\t%s\n", yc.Year, yc.Count, mark)
	}
	_, _ = fmt.Fprintf(w, "  Total\t%d\t\n", d.Total)
	_ = w.Flush()
}

func init() {
	addYearsFlag(countyCmd)
	rootCmd.AddCommand(countyCmd)
}
