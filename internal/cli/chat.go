package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/pkg/gateway"
)

func newChatCmd() *cobra.Command {
	var model, system string
	var maxTokens int
	var temperature float64

	cmd := &cobra.Command{
		Use:   "chat <message...>",
		Short: "Send a chat message through the proxy",
		Long:  "Send one non-streaming chat completion through the gateway's raw chat endpoint, authenticated with the session access key.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccessKey(); err != nil {
				return err
			}

			messages := []gateway.ChatMessage{}
			if system != "" {
				messages = append(messages, gateway.ChatMessage{Role: "system", Content: system})
			}
			messages = append(messages, gateway.ChatMessage{Role: "user", Content: strings.Join(args, " ")})

			resp, err := client.ChatCompletion(cmd.Context(), gateway.ChatCompletionRequest{
				Model:       model,
				Messages:    messages,
				Temperature: temperature,
				MaxTokens:   maxTokens,
			}, sess.SessionAccessKey())
			if err != nil {
				return fmt.Errorf("chat: %w", err)
			}

			if len(resp.Choices) == 0 {
				return fmt.Errorf("no completion returned")
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Choices[0].Message.Content)
			fmt.Fprintf(cmd.ErrOrStderr(), "(%s, %d tokens)\n", resp.Model, resp.Usage.TotalTokens)
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Model identifier (required)")
	cmd.Flags().StringVar(&system, "system", "", "System prompt")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "Completion token limit")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "Sampling temperature")
	cmd.MarkFlagRequired("model")
	return routed(cmd, "Chat")
}
