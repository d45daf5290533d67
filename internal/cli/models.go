package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/pkg/gateway"
)

func newModelsCmd() *cobra.Command {
	var status, capability, sortBy, sortOrder string
	var pageNum, pageSize int

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List available models",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := client.ListModels(cmd.Context(), gateway.ListModelsQuery{
				Page:       gateway.PageQuery{PageNum: pageNum, PageSize: pageSize},
				Status:     status,
				Capability: gateway.ModelCapability(capability),
				SortBy:     sortBy,
				SortOrder:  sortOrder,
			})
			if err != nil {
				return fmt.Errorf("list models: %w", err)
			}

			if len(page.Items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No models found.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%-8s  %-24s  %-24s  %-8s  %-16s  %s\n",
				"ID", "NAME", "IDENTIFIER", "ONLINE", "PROVIDER", "CAPABILITIES")
			for _, m := range page.Items {
				caps := make([]string, len(m.Capabilities))
				for i, c := range m.Capabilities {
					caps[i] = string(c)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8d  %-24s  %-24s  %-8t  %-16s  %s\n",
					m.ID, m.DisplayName, m.ModelIdentifier, m.Status == gateway.ModelOnline,
					m.ProviderName, strings.Join(caps, ","))
			}
			if page.Total > int64(len(page.Items)) {
				fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d shown)\n", len(page.Items), page.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (0 offline, 1 online)")
	cmd.Flags().StringVar(&capability, "capability", "", "Filter by capability (text-to-text, text-to-image, ...)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort by priority, name, or createdAt")
	cmd.Flags().StringVar(&sortOrder, "order", "", "Sort order (asc, desc)")
	cmd.Flags().IntVar(&pageNum, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Page size")
	return routed(cmd, "Models")
}
