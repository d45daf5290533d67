// Package cli implements the llmctl console commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/me/llmctl/internal/config"
	"github.com/me/llmctl/internal/logging"
	"github.com/me/llmctl/internal/nav"
	"github.com/me/llmctl/internal/notify"
	"github.com/me/llmctl/internal/session"
	"github.com/me/llmctl/internal/store"
	"github.com/me/llmctl/pkg/gateway"
)

// routeAnnotation maps a command to its route descriptor for the guard.
const routeAnnotation = "route"

var (
	flagServer    string
	flagConfig    string
	flagAccessKey string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	cfg      config.Config
	logger   *slog.Logger
	notifier notify.Notifier
	db       *store.SQLiteStore
	sess     *session.Store
	client   *gateway.Client
)

// NewRootCmd creates the root cobra command for the llmctl console.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "llmctl",
		Short: "llmctl - console for the LLM proxy billing platform",
		Long:  "llmctl manages access keys, orders, and models on an LLM proxy gateway, and chats or generates images through it.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if db != nil {
				db.Close()
				db = nil
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", "", "Gateway API URL (or LLMCTL_SERVER env)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default ~/.llmctl/config.yaml)")
	root.PersistentFlags().StringVar(&flagAccessKey, "access-key", os.Getenv("LLMCTL_ACCESS_KEY"), "Session access key for chat, image, and conversation commands")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")

	root.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newPasswdCmd(),
		newDashboardCmd(),
		newKeysCmd(),
		newOrdersCmd(),
		newModelsCmd(),
		newLogsCmd(),
		newStatsCmd(),
		newConversationsCmd(),
		newChatCmd(),
		newImageCmd(),
		newAdminCmd(),
	)

	return root
}

// setup builds the whole client stack for one invocation: config, logger,
// local state, session, gateway client, and finally the route guard for the
// invoked command.
func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagServer != "" {
		cfg.ServerURL = flagServer
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFormat != "" {
		cfg.LogFormat = flagLogFormat
	}
	if flagDebug {
		cfg.LogLevel = "debug"
	}

	logger = logging.New(cfg.LogLevel, cfg.LogFormat)
	notifier = notify.NewStderr()

	if cfg.StateDB != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.StateDB), 0700); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}
	db, err = store.NewSQLiteStore(cfg.StateDB, logger)
	if err != nil {
		return err
	}
	if err := db.Migrate(cmd.Context()); err != nil {
		return err
	}

	sess, err = session.NewStore(cmd.Context(), db, notifier, logger)
	if err != nil {
		return err
	}
	if flagAccessKey != "" {
		sess.SetSessionAccessKey(flagAccessKey)
	}

	client = gateway.NewClient(cfg.GatewayConfig(), sess, logger,
		gateway.WithNotifier(notifier),
		gateway.WithAuthFailureHandler(func() {
			sess.Invalidate()
			fmt.Fprintln(cmd.ErrOrStderr(), "session expired: please run 'llmctl login'")
		}),
	)

	return guardCommand(cmd)
}

// guardCommand evaluates the invoked command's route against the session
// and renders redirects the way a console can: as errors or messages.
func guardCommand(cmd *cobra.Command) error {
	name, ok := cmd.Annotations[routeAnnotation]
	if !ok {
		return nil
	}
	route := nav.Lookup(name)

	decision := nav.Evaluate(route, sess)
	if decision.Allowed {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", nav.PageTitle(route, cfg.AppTitle))
		return nil
	}

	switch decision.Target {
	case nav.RouteLogin:
		return fmt.Errorf("authentication required: run 'llmctl login' (redirect=%s)", decision.Query["redirect"])
	case nav.RouteDashboard:
		return fmt.Errorf("already logged in as %s: run 'llmctl logout' first", sess.Username())
	case nav.RouteForbidden:
		return fmt.Errorf("forbidden: your role does not allow %s", route.Path)
	default:
		return fmt.Errorf("navigation to %s denied", route.Path)
	}
}

// routed attaches the guard route annotation to a command.
func routed(cmd *cobra.Command, routeName string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[routeAnnotation] = routeName
	return cmd
}
