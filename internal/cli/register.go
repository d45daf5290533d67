package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/internal/nav"
	"github.com/me/llmctl/pkg/gateway"
)

func newRegisterCmd() *cobra.Command {
	var username, password, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long:  "Register an account on the gateway. Registration does not log in; run 'llmctl login' afterwards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if username == "" {
				if username, err = prompt(cmd, "Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt(cmd, "Password: "); err != nil {
					return err
				}
			}
			if username == "" || password == "" {
				return fmt.Errorf("username and password are required")
			}

			err = sess.Register(cmd.Context(), client, gateway.RegisterRequest{
				Username: username,
				Password: password,
				Email:    email,
			})
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Account %s created. Run 'llmctl login' to sign in.\n", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username (prompted if omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted if omitted)")
	cmd.Flags().StringVar(&email, "email", "", "Contact email (optional)")
	return routed(cmd, nav.RouteRegister)
}
