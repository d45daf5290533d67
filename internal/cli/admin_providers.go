package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/pkg/gateway"
)

func newAdminProvidersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Manage upstream providers",
	}
	cmd.AddCommand(
		newAdminProvidersListCmd(),
		newAdminProvidersCreateCmd(),
		newAdminProvidersUpdateCmd(),
		newAdminProvidersDeleteCmd(),
	)
	return cmd
}

func parseProviderID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid provider id %q", arg)
	}
	return id, nil
}

func newAdminProvidersListCmd() *cobra.Command {
	var pageNum, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upstream providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := client.ListProviders(cmd.Context(), gateway.PageQuery{PageNum: pageNum, PageSize: pageSize})
			if err != nil {
				return fmt.Errorf("list providers: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%-8s  %-20s  %s\n", "ID", "NAME", "URL")
			for _, p := range page.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8d  %-20s  %s\n", p.ID, p.Name, p.URLBase)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&pageNum, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Page size")
	return routed(cmd, "AdminProviders")
}

func newAdminProvidersCreateCmd() *cobra.Command {
	var name, urlBase string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register an upstream provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}
			p, err := client.CreateProvider(cmd.Context(), gateway.ProviderRequest{Name: name, URLBase: urlBase})
			if err != nil {
				return fmt.Errorf("create provider: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created provider %d (%s)\n", p.ID, p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Provider name")
	cmd.Flags().StringVar(&urlBase, "url", "", "Provider base URL")
	return routed(cmd, "AdminProviders")
}

func newAdminProvidersUpdateCmd() *cobra.Command {
	var name, urlBase string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an upstream provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProviderID(args[0])
			if err != nil {
				return err
			}
			p, err := client.UpdateProvider(cmd.Context(), id, gateway.ProviderRequest{Name: name, URLBase: urlBase})
			if err != nil {
				return fmt.Errorf("update provider: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated provider %d\n", p.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Provider name")
	cmd.Flags().StringVar(&urlBase, "url", "", "Provider base URL")
	return routed(cmd, "AdminProviders")
}

func newAdminProvidersDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an upstream provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProviderID(args[0])
			if err != nil {
				return err
			}
			if err := client.DeleteProvider(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete provider: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted provider %d\n", id)
			return nil
		},
	}
	return routed(cmd, "AdminProviders")
}
