package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/pkg/gateway"
)

func newStatsCmd() *cobra.Command {
	var modelIdentifier, date, startDate, endDate string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-model request statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := client.ModelStatistics(cmd.Context(), gateway.ModelStatisticsQuery{
				ModelIdentifier: modelIdentifier,
				Date:            date,
				StartDate:       startDate,
				EndDate:         endDate,
			})
			if err != nil {
				return fmt.Errorf("fetch statistics: %w", err)
			}

			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No statistics found.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%-24s  %-12s  %-10s  %-10s  %s\n",
				"MODEL", "DATE", "REQUESTS", "SUCCESS", "FAILED")
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s  %-12s  %-10d  %-10d  %d\n",
					it.ModelIdentifier, it.StatDate, it.TotalRequests, it.SuccessCount, it.FailureCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modelIdentifier, "model", "", "Filter by model identifier")
	cmd.Flags().StringVar(&date, "date", "", "Single statistics day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&startDate, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "to", "", "Range end (YYYY-MM-DD)")
	return routed(cmd, "UsageLogs")
}
