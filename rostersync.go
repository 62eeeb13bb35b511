// Package rostersync reconciles training-program attendance exports against
// the relational master dataset and turns the differences into reviewable
// MySQL mutation scripts.
//
// The package wraps three reconciliation pipelines behind a single client:
//   - Programs: candidate program names against the master program list
//   - Schedules: attendance rows against the master schedule table
//   - Participants: attendance rows against schedules and enrollments
//
// Each run loads a fresh master-data snapshot inside one read-only
// transaction, reconciles in input order, and produces decision records
// plus an idempotent INSERT script. The tool never writes to the master
// database; the generated scripts are its only mutation output, and
// re-running against a refreshed snapshot skips everything a previously
// applied script inserted.
//
// Example usage:
//
//	st, err := store.Open(ctx, store.Config{Host: "localhost", Port: 33061})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
//	client, err := rostersync.New(
//	    rostersync.WithStore(st),
//	    rostersync.WithOutputDir("output_data"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Participants(ctx, "data/data.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Totals.Summary())
package rostersync

import (
	"context"

	"github.com/agentstation/rostersync/pkg/dates"
	"github.com/agentstation/rostersync/pkg/errors"
	"github.com/agentstation/rostersync/pkg/reconcile"
	"github.com/agentstation/rostersync/pkg/refdata"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client runs the reconciliation pipelines.
type Client interface {
	// Programs reconciles the candidate program list from the reference
	// data against the master program list.
	Programs(ctx context.Context) (*Result, error)

	// Schedules reconciles the schedule rows of an attendance export
	// against the master schedule table.
	Schedules(ctx context.Context, exportPath string) (*Result, error)

	// Participants reconciles the participant rows of an attendance
	// export against master schedules and enrollments.
	Participants(ctx context.Context, exportPath string) (*Result, error)
}

// SnapshotSource loads master-data snapshots. internal/store implements
// this against MySQL; tests substitute an in-memory source.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*reconcile.Snapshot, error)
}

// Publisher delivers generated script files to an external drop.
type Publisher interface {
	Upload(ctx context.Context, paths ...string) error
}

// client is the internal implementation of the Client interface.
type client struct {

	// options are the configured options for the client
	options *options

	// refdata is the reference data document driving the run
	refdata *refdata.Set

	// snapshots loads the master-data snapshot each run starts from
	snapshots SnapshotSource

	// pipeline stages
	programs     *reconcile.ProgramReconciler
	schedules    *reconcile.ScheduleReconciler
	participants *reconcile.ParticipantReconciler
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	if options.snapshots == nil {
		return nil, errors.NewConfigError("store", "a master-data store is required", nil)
	}

	// use the injected reference data or load it from the configured
	// file, falling back to the embedded defaults
	set := options.refdata
	if set == nil {
		if set, err = refdata.Load(options.rulesFile); err != nil {
			return nil, err
		}
	}

	classifier, err := set.Classifier()
	if err != nil {
		return nil, err
	}
	normalizer := dates.NewNormalizer(set.MonthTable())

	return &client{
		options:      options,
		refdata:      set,
		snapshots:    options.snapshots,
		programs:     reconcile.NewProgramReconciler(classifier),
		schedules:    reconcile.NewScheduleReconciler(normalizer),
		participants: reconcile.NewParticipantReconciler(normalizer),
	}, nil
}
