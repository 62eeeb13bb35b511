package cmdutil

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/rostersync"
	"github.com/agentstation/rostersync/internal/appcontext"
	"github.com/agentstation/rostersync/internal/cmd/output"
)

// Run executes a reconciliation pipeline and renders its report.
// The run callback receives a client configured from the pipeline flags.
func Run(cmd *cobra.Command, app appcontext.Interface, flags *PipelineFlags,
	run func(ctx context.Context, client rostersync.Client) (*rostersync.Result, error)) error {
	ctx := cmd.Context()

	if flags.DryRun && flags.Upload {
		app.Logger().Warn().Msg("--upload has no effect with --dry-run")
	}

	opts, err := ClientOptions(app, flags)
	if err != nil {
		return err
	}

	client, err := app.Client(ctx, opts...)
	if err != nil {
		return err
	}

	result, err := run(ctx, client)
	if err != nil {
		return err
	}

	return renderReport(cmd, app, flags, result)
}

// ClientOptions converts pipeline flags into client options. The options
// are applied on top of the configured defaults, so only flags the user
// set are returned.
func ClientOptions(app appcontext.Interface, flags *PipelineFlags) ([]rostersync.Option, error) {
	var opts []rostersync.Option

	if flags.Rules != "" {
		opts = append(opts, rostersync.WithRulesFile(flags.Rules))
	}
	if flags.Out != "" {
		opts = append(opts, rostersync.WithOutputDir(flags.Out))
	}
	if flags.DryRun {
		// An empty output dir disables script writing
		opts = append(opts, rostersync.WithOutputDir(""))
	}
	if flags.Upload && !flags.DryRun {
		publisher, err := app.Publisher()
		if err != nil {
			return nil, err
		}
		opts = append(opts, rostersync.WithPublisher(publisher))
	}

	return opts, nil
}

// renderReport writes the decision report for a dry run. Normal runs
// report through the run log instead.
func renderReport(cmd *cobra.Command, app appcontext.Interface, flags *PipelineFlags, result *rostersync.Result) error {
	if !flags.DryRun {
		return nil
	}

	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	if format == "" {
		format = output.DetectFormat("")
	}

	w := cmd.OutOrStdout()
	switch result.Stage {
	case rostersync.StagePrograms:
		return output.WriteProgramReport(w, format, result.Programs)
	case rostersync.StageSchedules:
		return output.WriteScheduleReport(w, format, result.Schedules)
	case rostersync.StageParticipants:
		return output.WriteParticipantReport(w, format, result.Participants)
	}
	return nil
}
