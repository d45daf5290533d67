package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/pkg/gateway"
)

func newConversationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "conversations",
		Aliases: []string{"conv"},
		Short:   "Browse conversation history for the session access key",
	}
	cmd.AddCommand(newConvListCmd(), newConvMessagesCmd())
	return cmd
}

// requireAccessKey checks that a session access key was supplied for the
// commands whose history is scoped by it.
func requireAccessKey() error {
	if sess.SessionAccessKey() == "" {
		return fmt.Errorf("a session access key is required: pass --access-key or set LLMCTL_ACCESS_KEY")
	}
	return nil
}

func newConvListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent conversations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccessKey(); err != nil {
				return err
			}
			items, err := client.RecentConversations(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list conversations: %w", err)
			}

			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No conversations found.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%-36s  %-30s  %-8s  %s\n", "ID", "TITLE", "MSGS", "LAST ACTIVE")
			for _, c := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%-36s  %-30s  %-8d  %s\n",
					c.ConversationID, c.Title, c.MessageCount, c.LastActiveAt)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum conversations to list")
	return routed(cmd, "Conversations")
}

func newConvMessagesCmd() *cobra.Command {
	var limit int
	var before string

	cmd := &cobra.Command{
		Use:   "messages <conversation_id>",
		Short: "Show the messages of a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccessKey(); err != nil {
				return err
			}
			msgs, err := client.ConversationMessages(cmd.Context(), args[0], gateway.ConversationMessagesQuery{
				Limit:  limit,
				Before: before,
			})
			if err != nil {
				return fmt.Errorf("fetch messages: %w", err)
			}

			for _, m := range msgs {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", m.Role, m.Content)
				if m.Cost > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "        (%d+%d tokens, %.4f)\n",
						m.PromptTokens, m.CompletionTokens, m.Cost)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum messages to show")
	cmd.Flags().StringVar(&before, "before", "", "Page backwards from this message id")
	return routed(cmd, "Conversations")
}
