package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show my proxy usage logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			logs, err := client.MyUsageLogs(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch usage logs: %w", err)
			}

			if len(logs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No usage recorded.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%-24s  %-8s  %-8s  %-10s  %-6s  %s\n",
				"MODEL", "PROMPT", "COMPL", "COST", "OK", "TIME")
			for _, l := range logs {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s  %-8d  %-8d  %-10.4f  %-6t  %s\n",
					l.ModelIdentifier, l.PromptTokens, l.CompletionTokens, l.Cost, l.IsSuccess, l.CreateTime)
			}
			return nil
		},
	}
	return routed(cmd, "UsageLogs")
}
