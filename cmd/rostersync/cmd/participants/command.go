// Package participants implements the participants reconciliation command.
package participants

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/rostersync"
	"github.com/agentstation/rostersync/internal/appcontext"
	"github.com/agentstation/rostersync/internal/cmd/cmdutil"
)

// NewCommand creates the participants command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *cmdutil.PipelineFlags

	cmd := &cobra.Command{
		Use:     "participants",
		GroupID: "pipelines",
		Short:   "Reconcile participants from an attendance export",
		Long: `Participants reconciles the attendance rows of an export against the
master dataset.

Each row is matched to a program and schedule by normalized name and
start date. The schedule and participant name pair is then checked
against the snapshot, and missing participants produce INSERT statements
carrying the certificate reference when the export has one.`,
		Example: `  rostersync participants                     # Reconcile the configured export
  rostersync participants --input export.csv  # Reconcile a specific export
  rostersync participants --upload            # Upload the script over SFTP`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmdutil.Run(cmd, app, flags, func(ctx context.Context, client rostersync.Client) (*rostersync.Result, error) {
				return client.Participants(ctx, flags.ExportPath(app))
			})
		},
	}

	// Add pipeline flags including the export input
	flags = cmdutil.AddPipelineFlags(cmd, true)

	return cmd
}
