// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/rostersync"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/rostersync/app automatically implements this
// interface, providing dependency injection for commands while maintaining
// testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Interface interface {
	// Client creates a reconciliation client from the tool configuration.
	// Additional options override the configured defaults, so commands can
	// pass per-invocation overrides (e.g. --rules or --out).
	Client(ctx context.Context, opts ...rostersync.Option) (rostersync.Client, error)

	// Publisher builds the script publisher from the tool configuration.
	// Commands only call this when --upload is requested.
	Publisher() (rostersync.Publisher, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured report format (table, json, yaml, markdown).
	// Commands that render reports should use this.
	OutputFormat() string

	// InputFile returns the configured attendance export path, used when a
	// command is run without --input.
	InputFile() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
