package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/pkg/gateway"
)

func newImageCmd() *cobra.Command {
	var model, size string
	var count int

	cmd := &cobra.Command{
		Use:   "image <prompt...>",
		Short: "Generate images through the proxy",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAccessKey(); err != nil {
				return err
			}

			opts := map[string]any{}
			if size != "" {
				opts["size"] = size
			}
			if count > 0 {
				opts["n"] = count
			}

			resp, err := client.GenerateImage(cmd.Context(), gateway.ImageGenerationRequest{
				Prompt:          strings.Join(args, " "),
				ModelIdentifier: model,
				Options:         opts,
			}, sess.SessionAccessKey())
			if err != nil {
				return fmt.Errorf("generate image: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Model:  %s\n", resp.UsedModelIdentifier)
			fmt.Fprintf(cmd.OutOrStdout(), "Prompt: %s\n", resp.ActualPrompt)
			for _, u := range resp.ImageURLs {
				fmt.Fprintln(cmd.OutOrStdout(), u)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "Model identifier (gateway default if omitted)")
	cmd.Flags().StringVar(&size, "size", "", "Image size, e.g. 1024x1024")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of images")
	return routed(cmd, "Image")
}
