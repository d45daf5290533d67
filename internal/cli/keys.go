package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage proxy access keys",
	}
	cmd.AddCommand(newKeysListCmd(), newKeysCreateCmd(), newKeysDeleteCmd(), newKeysUseCmd())
	return cmd
}

func newKeysListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List access keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := client.ListAccessKeys(cmd.Context())
			if err != nil {
				return fmt.Errorf("list access keys: %w", err)
			}

			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No access keys.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%-8s  %-24s  %-8s  %s\n", "ID", "KEY", "ACTIVE", "CREATED")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8d  %-24s  %-8t  %s\n", k.ID, k.MaskedKeyValue, k.IsActive, k.CreatedAt)
			}
			return nil
		},
	}
	return routed(cmd, "AccessKeys")
}

func newKeysCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an access key",
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := client.CreateAccessKey(cmd.Context())
			if err != nil {
				return fmt.Errorf("create access key: %w", err)
			}

			// The plaintext is shown exactly once; listings only mask.
			fmt.Fprintf(cmd.OutOrStdout(), "Created key %d: %s\n", created.ID, created.KeyValue)
			fmt.Fprintln(cmd.OutOrStdout(), "Store it now; it cannot be recovered later.")
			return nil
		},
	}
	return routed(cmd, "AccessKeys")
}

func newKeysDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Revoke an access key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid key id %q", args[0])
			}
			if err := client.DeleteAccessKey(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete access key: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted key %d\n", id)
			return nil
		},
	}
	return routed(cmd, "AccessKeys")
}

func newKeysUseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <key>",
		Short: "Show how to select an access key for this shell session",
		Long:  "The session access key is never stored on disk; chat, image, and conversation commands read it per invocation from --access-key or LLMCTL_ACCESS_KEY.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "export LLMCTL_ACCESS_KEY=%s\n", args[0])
			return nil
		},
	}
	return routed(cmd, "AccessKeys")
}
