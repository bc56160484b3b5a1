package cmd

import (
	"github.com/gaze-network/node-rewards/cmd/migrate"
	"github.com/spf13/cobra"
)

func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate database schema",
	}
	cmd.AddCommand(
		migrate.NewMigrateUpCommand(),
		migrate.NewMigrateDownCommand(),
	)
	return cmd
}
