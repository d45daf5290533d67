package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/internal/nav"
	"github.com/me/llmctl/pkg/gateway"
)

func newPasswdCmd() *cobra.Command {
	var oldPassword, newPassword string

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if oldPassword == "" {
				if oldPassword, err = prompt(cmd, "Current password: "); err != nil {
					return err
				}
			}
			if newPassword == "" {
				if newPassword, err = prompt(cmd, "New password: "); err != nil {
					return err
				}
			}
			if oldPassword == "" || newPassword == "" {
				return fmt.Errorf("both passwords are required")
			}

			err = sess.UpdatePassword(cmd.Context(), client, gateway.ChangePasswordRequest{
				OldPassword: oldPassword,
				NewPassword: newPassword,
			})
			if err != nil {
				return fmt.Errorf("change password: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&oldPassword, "old", "", "Current password (prompted if omitted)")
	cmd.Flags().StringVar(&newPassword, "new", "", "New password (prompted if omitted)")
	return routed(cmd, nav.RouteDashboard)
}
