package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/rostersync/pkg/logging"
)

// Execute runs the rostersync CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	// Create root command with app context
	rootCmd := a.createRootCommand()

	// Set arguments
	rootCmd.SetArgs(args)

	// Execute with context
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "rostersync",
		Short:   "Training-program reconciliation CLI",
		Version: a.version,
		Long: `Rostersync reconciles training-program attendance exports against a
relational master dataset and generates idempotent MySQL insert scripts
for whatever is missing.

It runs three pipelines, each covering one stage of the dataset:

1. programs - classify new program names and insert missing programs
2. schedules - match export rows to programs and insert missing schedules
3. participants - match attendance rows and insert missing participants

Every run reads a fresh snapshot of the master data in one read-only
transaction, so re-running a pipeline after its script has been applied
generates an empty script. The master database itself is never written.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "pipelines",
		Title: "Pipeline Commands:",
	})

	// Add global flags. Current config values serve as flag defaults so
	// config file and environment settings survive when a flag is not set.
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.rostersync.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "output", "o", a.config.Format, "report format: table, json, yaml, markdown")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// Customize version output to match version subcommand
	rootCmd.SetVersionTemplate("rostersync {{.Version}}\n")

	// Register all commands
	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	// An explicit --config replaces the file discovered at startup.
	// Flags the user set still win over the reloaded file.
	if cmd.Flags().Changed("config") {
		if err := a.config.LoadFile(mustGetString(cmd, "config")); err != nil {
			return err
		}
		if cmd.Flags().Changed("output") {
			a.config.Format = mustGetString(cmd, "output")
		}
		if cmd.Flags().Changed("log-level") {
			a.config.LogLevel = mustGetString(cmd, "log-level")
		}
	}

	// Reinitialize logger with updated config
	logger := NewLogger(a.config)
	a.logger = &logger

	// Run-scoped logging helpers derive from the default logger
	logging.SetDefault(*a.logger)

	return nil
}

// registerCommands registers all subcommands with the root command.
// This is where we wire up all the command handlers.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Pipeline commands
	rootCmd.AddCommand(a.CreateProgramsCommand())
	rootCmd.AddCommand(a.CreateSchedulesCommand())
	rootCmd.AddCommand(a.CreateParticipantsCommand())

	// Utility commands
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
