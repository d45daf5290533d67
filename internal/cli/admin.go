package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/pkg/gateway"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations",
	}
	cmd.AddCommand(
		newAdminUsersCmd(),
		newAdminOrdersCmd(),
		newAdminAssignRoleCmd(),
		newAdminModelsCmd(),
		newAdminProvidersCmd(),
	)
	return cmd
}

func newAdminUsersCmd() *cobra.Command {
	var pageNum, pageSize int

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := client.ListUsers(cmd.Context(), gateway.PageQuery{PageNum: pageNum, PageSize: pageSize})
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%-8s  %-20s  %-20s  %-10s  %s\n",
				"ID", "USERNAME", "ROLE", "BALANCE", "CREATED")
			for _, u := range page.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8d  %-20s  %-20s  %-10.2f  %s\n",
					u.ID, u.Username, u.Role, u.Balance, u.CreatedAt)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&pageNum, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Page size")
	return routed(cmd, "AdminUsers")
}

func newAdminOrdersCmd() *cobra.Command {
	var status string
	var pageNum, pageSize int

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List all orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := client.ListOrders(cmd.Context(),
				gateway.PageQuery{PageNum: pageNum, PageSize: pageSize},
				gateway.OrderStatus(status))
			if err != nil {
				return fmt.Errorf("list orders: %w", err)
			}
			printOrders(cmd, page)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	cmd.Flags().IntVar(&pageNum, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Page size")
	return routed(cmd, "AdminOrders")
}

func newAdminAssignRoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign-role <user_id> <role>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			role := gateway.Role(args[1])
			switch role {
			case gateway.RoleRootAdmin, gateway.RoleModelAdmin, gateway.RoleUser:
			default:
				return fmt.Errorf("unknown role %q", args[1])
			}

			err = client.AssignRole(cmd.Context(), gateway.AssignRoleRequest{UserID: userID, Role: role})
			if err != nil {
				return fmt.Errorf("assign role: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User %d is now %s\n", userID, role)
			return nil
		},
	}
	return routed(cmd, "AdminUsers")
}
