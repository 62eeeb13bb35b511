package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/rostersync/cmd/rostersync/cmd/participants"
	"github.com/agentstation/rostersync/cmd/rostersync/cmd/programs"
	"github.com/agentstation/rostersync/cmd/rostersync/cmd/schedules"
)

// CreateProgramsCommand creates the programs command with app dependencies.
func (a *App) CreateProgramsCommand() *cobra.Command {
	return programs.NewCommand(a)
}

// CreateSchedulesCommand creates the schedules command with app dependencies.
func (a *App) CreateSchedulesCommand() *cobra.Command {
	return schedules.NewCommand(a)
}

// CreateParticipantsCommand creates the participants command with app dependencies.
func (a *App) CreateParticipantsCommand() *cobra.Command {
	return participants.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("rostersync %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
