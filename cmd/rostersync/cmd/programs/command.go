// Package programs implements the programs reconciliation command.
package programs

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/rostersync"
	"github.com/agentstation/rostersync/internal/appcontext"
	"github.com/agentstation/rostersync/internal/cmd/cmdutil"
)

// NewCommand creates the programs command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *cmdutil.PipelineFlags

	cmd := &cobra.Command{
		Use:     "programs",
		GroupID: "pipelines",
		Short:   "Reconcile the new-program worklist",
		Long: `Programs reconciles the curated worklist of upcoming program names
against the master dataset.

Each candidate name is normalized and classified into a category using
the keyword rules, then checked against the programs already present in
the snapshot. Missing programs produce INSERT statements in the
generated script; names already on file are skipped.`,
		Example: `  rostersync programs                      # Generate insert_programs.sql
  rostersync programs --dry-run            # Preview decisions without writing
  rostersync programs --rules rules.yaml   # Use custom classification rules`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmdutil.Run(cmd, app, flags, func(ctx context.Context, client rostersync.Client) (*rostersync.Result, error) {
				return client.Programs(ctx)
			})
		},
	}

	// The worklist comes from the rules file, not an export
	flags = cmdutil.AddPipelineFlags(cmd, false)

	return cmd
}
