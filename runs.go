package rostersync

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/agentstation/rostersync/internal/source"
	"github.com/agentstation/rostersync/pkg/constants"
	"github.com/agentstation/rostersync/pkg/errors"
	"github.com/agentstation/rostersync/pkg/logging"
	"github.com/agentstation/rostersync/pkg/reconcile"
	"github.com/agentstation/rostersync/pkg/sqlgen"
)

// Stage identifies one reconciliation pipeline.
type Stage string

// Reconciliation stages.
const (
	StagePrograms     Stage = "programs"
	StageSchedules    Stage = "schedules"
	StageParticipants Stage = "participants"
)

// ScriptFile returns the script file name generated for the stage.
func (s Stage) ScriptFile() string {
	switch s {
	case StagePrograms:
		return constants.ProgramsScriptFile
	case StageSchedules:
		return constants.SchedulesScriptFile
	case StageParticipants:
		return constants.ParticipantsScriptFile
	}
	return ""
}

// Result is the outcome of a single reconciliation run. Exactly one of
// the decision slices is populated, matching Stage.
type Result struct {
	Stage Stage
	RunID string

	Programs     []reconcile.ProgramDecision
	Schedules    []reconcile.ScheduleDecision
	Participants []reconcile.ParticipantDecision

	Totals reconcile.Totals

	// Script is the full mutation script, envelope included even when
	// the run produced no insert units.
	Script string

	// Units is the number of insert units in Script.
	Units int

	// Path is where the script was written, empty when nothing was.
	Path string
}

// Programs reconciles the candidate program list from the reference data
// against the master program list.
func (c *client) Programs(ctx context.Context) (*Result, error) {
	ctx, runID := c.startRun(ctx, StagePrograms)

	snap, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	decisions := c.programs.Reconcile(c.refdata.NewPrograms, snap)
	result := &Result{
		Stage:    StagePrograms,
		RunID:    runID,
		Programs: decisions,
		Totals:   reconcile.ProgramTotals(decisions),
	}
	result.Script, result.Units = c.builder(runID).Programs(decisions, StagePrograms.ScriptFile())

	return c.finishRun(ctx, result)
}

// Schedules reconciles the schedule rows of an attendance export against
// the master schedule table.
func (c *client) Schedules(ctx context.Context, exportPath string) (*Result, error) {
	ctx, runID := c.startRun(ctx, StageSchedules)

	rows, err := source.ScheduleRows(exportPath)
	if err != nil {
		return nil, err
	}
	snap, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	decisions := c.schedules.Reconcile(rows, snap)
	result := &Result{
		Stage:     StageSchedules,
		RunID:     runID,
		Schedules: decisions,
		Totals:    reconcile.ScheduleTotals(decisions),
	}
	result.Script, result.Units = c.builder(runID).Schedules(decisions, StageSchedules.ScriptFile())

	return c.finishRun(ctx, result)
}

// Participants reconciles the participant rows of an attendance export
// against master schedules and enrollments.
func (c *client) Participants(ctx context.Context, exportPath string) (*Result, error) {
	ctx, runID := c.startRun(ctx, StageParticipants)

	rows, err := source.ParticipantRows(exportPath)
	if err != nil {
		return nil, err
	}
	snap, err := c.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	decisions := c.participants.Reconcile(rows, snap)
	result := &Result{
		Stage:        StageParticipants,
		RunID:        runID,
		Participants: decisions,
		Totals:       reconcile.ParticipantTotals(decisions),
	}
	result.Script, result.Units = c.builder(runID).Participants(decisions, StageParticipants.ScriptFile())

	return c.finishRun(ctx, result)
}

// startRun assigns the run identifier and binds it, with the stage name,
// to the context logger.
func (c *client) startRun(ctx context.Context, stage Stage) (context.Context, string) {
	runID := c.options.runID
	if runID == "" {
		runID = uuid.NewString()
	}

	ctx = logging.WithRunID(ctx, runID)
	ctx = logging.WithPipeline(ctx, string(stage))
	logging.Ctx(ctx).Info().Msg("Reconciliation run started")

	return ctx, runID
}

// snapshot loads the master-data snapshot the run reconciles against.
func (c *client) snapshot(ctx context.Context) (*reconcile.Snapshot, error) {
	snap, err := c.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	names, programs, schedules, participants := snap.Counts()
	logging.Ctx(ctx).Debug().
		Int("program_names", names).
		Int("programs", programs).
		Int("schedules", schedules).
		Int("participants", participants).
		Msg("Master-data snapshot loaded")

	return snap, nil
}

func (c *client) builder(runID string) *sqlgen.Builder {
	return sqlgen.New(
		sqlgen.WithVersion(c.options.version),
		sqlgen.WithRunID(runID),
	)
}

// finishRun persists the script and logs the run summary.
func (c *client) finishRun(ctx context.Context, result *Result) (*Result, error) {
	if err := c.writeScript(ctx, result); err != nil {
		return nil, err
	}

	event := logging.Ctx(ctx).Info().
		Int("processed", result.Totals.Processed).
		Int("units", result.Units).
		Str("summary", result.Totals.Summary())
	if result.Path != "" {
		event = event.Str("script", result.Path)
	}
	event.Msg("Reconciliation run finished")

	return result, nil
}

// writeScript writes the script file and hands it to the publisher. Runs
// without insert units, or without a configured output directory, leave
// the filesystem untouched.
func (c *client) writeScript(ctx context.Context, result *Result) error {
	if result.Units == 0 || c.options.outputDir == "" {
		return nil
	}

	if err := os.MkdirAll(c.options.outputDir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", c.options.outputDir, err)
	}

	path := filepath.Join(c.options.outputDir, result.Stage.ScriptFile())
	if err := os.WriteFile(path, []byte(result.Script+"\n"), constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	result.Path = path
	logging.Ctx(ctx).Debug().Str("script", path).Int("units", result.Units).Msg("Mutation script written")

	if c.options.publisher != nil {
		if err := c.options.publisher.Upload(ctx, path); err != nil {
			return err
		}
	}

	return nil
}
