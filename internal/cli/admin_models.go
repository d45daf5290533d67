package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/pkg/gateway"
)

func newAdminModelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Manage the model catalog",
	}
	cmd.AddCommand(
		newAdminModelsCreateCmd(),
		newAdminModelsUpdateCmd(),
		newAdminModelsDeleteCmd(),
		newAdminModelsStatusCmd(),
	)
	return cmd
}

func parseModelID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid model id %q", arg)
	}
	return id, nil
}

func parseCapabilities(s string) []gateway.ModelCapability {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	caps := make([]gateway.ModelCapability, 0, len(parts))
	for _, p := range parts {
		caps = append(caps, gateway.ModelCapability(strings.TrimSpace(p)))
	}
	return caps
}

func newAdminModelsCreateCmd() *cobra.Command {
	var name, identifier, providerID, capabilities string
	var priority int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a model to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || identifier == "" {
				return fmt.Errorf("--name and --identifier are required")
			}
			m, err := client.CreateModel(cmd.Context(), gateway.Model{
				DisplayName:     name,
				ModelIdentifier: identifier,
				ProviderID:      providerID,
				Capabilities:    parseCapabilities(capabilities),
				Priority:        priority,
			})
			if err != nil {
				return fmt.Errorf("create model: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created model %d (%s)\n", m.ID, m.ModelIdentifier)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&identifier, "identifier", "", "Model identifier routed by the proxy")
	cmd.Flags().StringVar(&providerID, "provider", "", "Provider id")
	cmd.Flags().StringVar(&capabilities, "capabilities", "", "Comma-separated capabilities")
	cmd.Flags().IntVar(&priority, "priority", 0, "Routing priority")
	return routed(cmd, "AdminModels")
}

func newAdminModelsUpdateCmd() *cobra.Command {
	var name, identifier, capabilities string
	var priority int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseModelID(args[0])
			if err != nil {
				return err
			}
			m, err := client.UpdateModel(cmd.Context(), id, gateway.Model{
				DisplayName:     name,
				ModelIdentifier: identifier,
				Capabilities:    parseCapabilities(capabilities),
				Priority:        priority,
			})
			if err != nil {
				return fmt.Errorf("update model: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated model %d\n", m.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&identifier, "identifier", "", "Model identifier")
	cmd.Flags().StringVar(&capabilities, "capabilities", "", "Comma-separated capabilities")
	cmd.Flags().IntVar(&priority, "priority", 0, "Routing priority")
	return routed(cmd, "AdminModels")
}

func newAdminModelsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseModelID(args[0])
			if err != nil {
				return err
			}
			if err := client.DeleteModel(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete model: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted model %d\n", id)
			return nil
		},
	}
	return routed(cmd, "AdminModels")
}

func newAdminModelsStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <id> <0|1>",
		Short: "Take a model offline (0) or online (1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseModelID(args[0])
			if err != nil {
				return err
			}
			status, err := strconv.Atoi(args[1])
			if err != nil || (status != gateway.ModelOffline && status != gateway.ModelOnline) {
				return fmt.Errorf("status must be 0 or 1")
			}
			m, err := client.SetModelStatus(cmd.Context(), id, status)
			if err != nil {
				return fmt.Errorf("set model status: %w", err)
			}
			state := "offline"
			if m.Status == gateway.ModelOnline {
				state = "online"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Model %d is now %s\n", m.ID, state)
			return nil
		},
	}
	return routed(cmd, "AdminModels")
}
