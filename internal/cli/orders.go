package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/pkg/gateway"
)

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage billing orders",
	}
	cmd.AddCommand(newOrdersListCmd(), newOrdersCreateCmd(), newOrdersCancelCmd())
	return cmd
}

func printOrders(cmd *cobra.Command, page gateway.PageResult[gateway.Order]) {
	if len(page.Items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No orders found.")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%-12s  %-10s  %-10s  %s\n", "ORDER", "AMOUNT", "STATUS", "CREATED")
	for _, o := range page.Items {
		fmt.Fprintf(cmd.OutOrStdout(), "%-12s  %-10.2f  %-10s  %s\n", o.OrderNo, o.Amount, o.Status, o.CreatedAt)
	}
	if page.Total > int64(len(page.Items)) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d shown)\n", len(page.Items), page.Total)
	}
}

func newOrdersListCmd() *cobra.Command {
	var status string
	var pageNum, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List my orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := client.ListMyOrders(cmd.Context(),
				gateway.PageQuery{PageNum: pageNum, PageSize: pageSize},
				gateway.OrderStatus(status))
			if err != nil {
				return fmt.Errorf("list orders: %w", err)
			}
			printOrders(cmd, page)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (PENDING, COMPLETED, FAILED, CANCELLED)")
	cmd.Flags().IntVar(&pageNum, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Page size")
	return routed(cmd, "Orders")
}

func newOrdersCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <amount>",
		Short: "Place a top-up order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil || amount <= 0 {
				return fmt.Errorf("invalid amount %q", args[0])
			}

			profile := sess.Profile()
			if profile == nil {
				p, err := sess.FetchProfile(cmd.Context(), client)
				if err != nil {
					return fmt.Errorf("fetch profile: %w", err)
				}
				profile = &p
			}

			order, err := client.CreateOrder(cmd.Context(), gateway.CreateOrderRequest{
				UserID: profile.ID,
				Amount: amount,
			})
			if err != nil {
				return fmt.Errorf("create order: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s created: %.2f (%s)\n", order.OrderNo, order.Amount, order.Status)
			return nil
		},
	}
	return routed(cmd, "Orders")
}

func newOrdersCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <order_no>",
		Short: "Cancel a pending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := client.CancelOrder(cmd.Context(), gateway.CancelOrderRequest{OrderNo: args[0]})
			if err != nil {
				return fmt.Errorf("cancel order: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s is now %s\n", order.OrderNo, order.Status)
			return nil
		},
	}
	return routed(cmd, "Orders")
}
