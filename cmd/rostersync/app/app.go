// Package app provides the application context and dependency management
// for the rostersync CLI. It follows idiomatic Go patterns for CLI
// applications by centralizing configuration, dependency injection, and
// lifecycle management.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/rostersync"
	"github.com/agentstation/rostersync/internal/publish"
	"github.com/agentstation/rostersync/internal/store"
	"github.com/agentstation/rostersync/pkg/errors"
)

// App represents the rostersync application with all its dependencies.
// It provides a centralized place for configuration, logging, and the
// master-data connection, following the dependency injection pattern.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Master-data store (lazy-initialized, shared by all commands)
	mu    sync.RWMutex
	store store.Store
}

// New creates a new App instance with the given version information.
// The app is initialized with default configuration that can be
// customized using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	// Initialize logger
	logger := NewLogger(config)
	app.logger = &logger

	// Apply any custom options
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured report format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// InputFile returns the configured attendance export path.
func (a *App) InputFile() string {
	return a.config.InputFile
}

// Client creates a reconciliation client from the tool configuration.
// Additional options override the configured defaults, so commands can
// layer per-invocation flags on top.
func (a *App) Client(ctx context.Context, opts ...rostersync.Option) (rostersync.Client, error) {
	st, err := a.Store(ctx)
	if err != nil {
		return nil, err
	}

	options := []rostersync.Option{
		rostersync.WithStore(st),
		rostersync.WithVersion(a.version),
		rostersync.WithRulesFile(a.config.RulesFile),
		rostersync.WithOutputDir(a.config.OutputDir),
	}
	options = append(options, opts...)

	client, err := rostersync.New(options...)
	if err != nil {
		return nil, errors.WrapResource("create", "reconciliation client", "", err)
	}
	return client, nil
}

// Store returns the master-data store, opening the connection lazily.
// This is thread-safe and ensures only one connection pool is created.
func (a *App) Store(ctx context.Context) (store.Store, error) {
	a.mu.RLock()
	if a.store != nil {
		st := a.store
		a.mu.RUnlock()
		return st, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.store != nil {
		return a.store, nil
	}

	st, err := store.Open(ctx, a.config.StoreConfig())
	if err != nil {
		return nil, err
	}
	a.store = st
	return st, nil
}

// Publisher builds the script publisher from the tool configuration.
func (a *App) Publisher() (rostersync.Publisher, error) {
	uploader, err := publish.NewUploader(a.config.SFTPConfig())
	if err != nil {
		return nil, err
	}
	return uploader, nil
}

// Shutdown performs graceful shutdown of the application. It closes the
// master-data connection if one was opened.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.store == nil {
		return nil
	}

	err := a.store.Close()
	a.store = nil
	if err != nil {
		return errors.WrapResource("close", "master-data store", "", err)
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore sets a custom store instance (useful for testing).
func WithStore(st store.Store) Option {
	return func(a *App) error {
		a.store = st
		return nil
	}
}
