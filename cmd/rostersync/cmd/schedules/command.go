// Package schedules implements the schedules reconciliation command.
package schedules

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/rostersync"
	"github.com/agentstation/rostersync/internal/appcontext"
	"github.com/agentstation/rostersync/internal/cmd/cmdutil"
)

// NewCommand creates the schedules command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *cmdutil.PipelineFlags

	cmd := &cobra.Command{
		Use:     "schedules",
		GroupID: "pipelines",
		Short:   "Reconcile schedules from an attendance export",
		Long: `Schedules reconciles the schedule rows of an attendance export against
the master dataset.

Each export row is matched to a program by normalized name, and its start
and certificate dates are parsed from the Indonesian day-month-year form.
The resulting program and start date pair is checked against the
snapshot, and missing schedules produce INSERT statements in the
generated script.`,
		Example: `  rostersync schedules                      # Reconcile the configured export
  rostersync schedules --input export.csv   # Reconcile a specific export
  rostersync schedules --dry-run -o json    # Preview decisions as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmdutil.Run(cmd, app, flags, func(ctx context.Context, client rostersync.Client) (*rostersync.Result, error) {
				return client.Schedules(ctx, flags.ExportPath(app))
			})
		},
	}

	// Add pipeline flags including the export input
	flags = cmdutil.AddPipelineFlags(cmd, true)

	return cmd
}
