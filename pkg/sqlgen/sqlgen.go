// Package sqlgen renders decision lists into MySQL batch scripts. A
// script is a single transaction: header comments, START TRANSACTION,
// zero or more mutation units, COMMIT. Parent-then-child statement
// order inside a unit is load-bearing where the child row references
// the parent's generated key through a session variable.
package sqlgen

import (
	"strings"

	"github.com/agentstation/utc"
)

// Option configures a Builder.
type Option func(*Builder)

// WithVersion stamps the generator version into script headers.
func WithVersion(version string) Option {
	return func(b *Builder) {
		if version != "" {
			b.version = version
		}
	}
}

// WithRunID adds a run identifier line to script headers so a script
// on disk can be traced back to its log stream.
func WithRunID(id string) Option {
	return func(b *Builder) {
		b.runID = id
	}
}

// WithClock replaces the header timestamp source.
func WithClock(now func() utc.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// Builder renders scripts. Construct with New.
type Builder struct {
	version string
	runID   string
	now     func() utc.Time
}

// New returns a Builder with the default clock and a "dev" version
// stamp.
func New(opts ...Option) *Builder {
	b := &Builder{
		version: "dev",
		now:     utc.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// header emits the comment preamble and opens the transaction. The
// trailing empty string separates the preamble from the first unit.
func (b *Builder) header(target string) []string {
	lines := []string{
		"-- Generated by rostersync " + b.version,
		"-- Date: " + b.now().Format("2006-01-02 15:04:05"),
	}
	if b.runID != "" {
		lines = append(lines, "-- Run: "+b.runID)
	}
	return append(lines,
		"-- Output target: "+target,
		"START TRANSACTION;",
		"",
	)
}

// quote renders a single-quoted MySQL string literal, doubling any
// embedded quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
