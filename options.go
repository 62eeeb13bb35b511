package rostersync

import (
	"github.com/agentstation/rostersync/pkg/errors"
	"github.com/agentstation/rostersync/pkg/refdata"
)

// options configures a client.
type options struct {
	snapshots SnapshotSource
	refdata   *refdata.Set
	rulesFile string
	outputDir string
	publisher Publisher
	version   string
	runID     string
}

func defaultOptions() *options {
	return &options{
		version: "dev",
	}
}

// Option is a function that configures a Client.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns client options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithStore sets the master-data store that runs load their snapshot from.
func WithStore(source SnapshotSource) Option {
	return func(o *options) error {
		if source == nil {
			return &errors.ValidationError{
				Field:   "store",
				Message: "cannot be nil",
			}
		}
		o.snapshots = source
		return nil
	}
}

// WithRefData sets an already parsed reference data document, bypassing
// file loading. Takes precedence over WithRulesFile.
func WithRefData(set *refdata.Set) Option {
	return func(o *options) error {
		if set == nil {
			return &errors.ValidationError{
				Field:   "refdata",
				Message: "cannot be nil",
			}
		}
		o.refdata = set
		return nil
	}
}

// WithRulesFile selects the reference data file to load. An empty path
// keeps the embedded defaults.
func WithRulesFile(path string) Option {
	return func(o *options) error {
		o.rulesFile = path
		return nil
	}
}

// WithOutputDir sets the directory scripts are written into, created on
// first write. An empty directory disables script writing; runs still
// return the script text in their Result.
func WithOutputDir(dir string) Option {
	return func(o *options) error {
		o.outputDir = dir
		return nil
	}
}

// WithPublisher sets the publisher that receives every written script.
func WithPublisher(p Publisher) Option {
	return func(o *options) error {
		o.publisher = p
		return nil
	}
}

// WithVersion stamps the tool version into script headers.
func WithVersion(version string) Option {
	return func(o *options) error {
		if version != "" {
			o.version = version
		}
		return nil
	}
}

// WithRunID pins the run identifier instead of generating a fresh one
// per run. Intended for tests and replayed runs.
func WithRunID(id string) Option {
	return func(o *options) error {
		o.runID = id
		return nil
	}
}
