package cmd

import (
	"context"
	"log/slog"

	"github.com/gaze-network/node-rewards/internal/config"
	"github.com/gaze-network/node-rewards/pkg/logger"
	"github.com/gaze-network/node-rewards/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

var cmd = &cobra.Command{
	Use:   "noderewards",
	Long:  `Node rewards service: node types, node ledger, reward accounting and fee distribution`,
	Short: "Node rewards service",
}

func init() {
	var configFile string

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g.  `./config.yaml`")

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		// Initialize configuration
		config := config.Parse(configFile)

		// Initialize logger
		if err := logger.Init(config.Logger); err != nil {
			logger.Panic("Failed to initialize logger", slogx.Error(err), slog.Any("config", config.Logger))
		}
	})
}

func Execute(ctx context.Context) {
	// Register sub-commands
	cmd.AddCommand(
		NewVersionCommand(),
		NewRunCommand(),
		NewMigrateCommand(),
	)

	// Execute command
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.PanicContext(ctx, "Failed to execute root command", slogx.Error(err))
	}
}
