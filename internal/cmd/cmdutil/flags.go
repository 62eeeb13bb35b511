// Package cmdutil provides shared flags and run helpers for rostersync commands.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/rostersync/internal/appcontext"
)

// PipelineFlags holds flags shared by the reconciliation commands.
type PipelineFlags struct {
	Input  string
	Rules  string
	Out    string
	DryRun bool
	Upload bool
}

// AddPipelineFlags adds the shared reconciliation flags to a command.
// The input flag is only registered for commands that read an export file.
func AddPipelineFlags(cmd *cobra.Command, withInput bool) *PipelineFlags {
	flags := &PipelineFlags{}

	if withInput {
		cmd.Flags().StringVarP(&flags.Input, "input", "i", "",
			"Attendance export to reconcile (defaults to the configured input file)")
	}
	cmd.Flags().StringVar(&flags.Rules, "rules", "",
		"Classification rules file (defaults to the embedded rules)")
	cmd.Flags().StringVar(&flags.Out, "out", "",
		"Directory for generated scripts (defaults to the configured output dir)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Render the decision report without writing a script")
	cmd.Flags().BoolVar(&flags.Upload, "upload", false,
		"Upload the generated script over SFTP")

	return flags
}

// ExportPath returns the attendance export the run should read, falling
// back to the configured input file when no --input flag was given.
func (f *PipelineFlags) ExportPath(app appcontext.Interface) string {
	if f.Input != "" {
		return f.Input
	}
	return app.InputFile()
}
