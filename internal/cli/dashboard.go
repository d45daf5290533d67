package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/internal/nav"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show an account overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := sess.FetchProfile(cmd.Context(), client)
			if err != nil {
				return fmt.Errorf("fetch profile: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account: %s (%s)\n", profile.Username, profile.Role)
			fmt.Fprintf(cmd.OutOrStdout(), "Balance: %.4f\n", profile.Balance)

			logs, err := client.MyUsageLogs(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch usage: %w", err)
			}
			var cost float64
			var failures int
			for _, l := range logs {
				cost += l.Cost
				if !l.IsSuccess {
					failures++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Usage:   %d calls, %d failed, %.4f spent\n", len(logs), failures, cost)
			return nil
		},
	}
	return routed(cmd, nav.RouteDashboard)
}
