package commands

import (
	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_engine/internal/handlers"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "ledger",
		Short:   "Double-entry ledger engine for small businesses",
		Version: handlers.Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newGroupsCommand(),
		newOpeningPositionCommand(),
		newReportCommand(),
	)

	return rootCmd
}
