package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/internal/nav"
)

func newWhoamiCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := sess.Profile()
			if refresh || profile == nil {
				p, err := sess.FetchProfile(cmd.Context(), client)
				if err != nil {
					return fmt.Errorf("fetch profile: %w", err)
				}
				profile = &p
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Username: %s\n", profile.Username)
			fmt.Fprintf(cmd.OutOrStdout(), "Role:     %s\n", profile.Role)
			if profile.Email != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Email:    %s\n", profile.Email)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Balance:  %.4f\n", profile.Balance)
			if profile.CreatedAt != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Created:  %s\n", profile.CreatedAt)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Refetch the profile from the gateway")
	return routed(cmd, nav.RouteDashboard)
}
