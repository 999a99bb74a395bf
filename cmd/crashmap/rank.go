package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/crash-map/internal/domain"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank counties by crash count",
	Long:  "Sums each county's crashes over the selected years and lists the counties with at least one crash, highest first.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		years, err := yearsFlag(cmd)
		if err != nil {
			return err
		}
		v, err := buildViewer()
		if err != nil {
			return err
		}

		ranking, err := v.Ranking(years)
		if err != nil {
			return fmt.Errorf("rank: %w", err)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(ranking)
		}
		formatRanking(cmd.OutOrStdout(), ranking.Entities)
		return nil
	},
}

// formatRanking writes a tabular ranking to out.
func formatRanking(out io.Writer, entities []domain.AggregatedEntity) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "RANK\tID\tCOUNTY\tCRASHES")
	_, _ = fmt.Fprintln(w, "----\t--\t------\t-------")
	for i, e := range entities {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, e.ID, e.Name, e.CrashCount)
	}
	_ = w.Flush()
}

func init() {
	addYearsFlag(rankCmd)
	rankCmd.Flags().Bool("json", false, "print the ranking as JSON")
	rootCmd.AddCommand(rankCmd)
}
