// Package store provides read-only access to the master dataset the
// reconciliation pipelines compare against. The canonical
// implementation is MySQL; the engine depends on the Store interface
// so tests can substitute canned lookups.
package store

import (
	"context"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/agentstation/rostersync/pkg/reconcile"
)

// Store is the master-data surface a reconciliation run needs. All
// fetches are read-only and each is called at most once per run;
// Snapshot bundles them into a single consistent view.
type Store interface {
	// ProgramNames returns the set of known program names, lowered.
	ProgramNames(ctx context.Context) (map[string]struct{}, error)

	// Programs maps lowered program names to their master identities.
	Programs(ctx context.Context) (map[string]reconcile.ProgramRef, error)

	// ScheduleKeys returns the set of known (program, canonical start
	// date) schedule keys.
	ScheduleKeys(ctx context.Context) (map[reconcile.ScheduleKey]struct{}, error)

	// ScheduleIDs maps (program, canonical start date) keys to
	// schedule primary keys.
	ScheduleIDs(ctx context.Context) (map[reconcile.ScheduleKey]int, error)

	// ParticipantKeys returns the set of known (schedule, lowered
	// name) pairs.
	ParticipantKeys(ctx context.Context) (map[reconcile.ParticipantKey]struct{}, error)

	// Snapshot loads every lookup at one consistent point in time.
	Snapshot(ctx context.Context) (*reconcile.Snapshot, error)

	// Close releases the underlying handle.
	Close() error
}

// Config holds MySQL connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// DSN renders the config as a go-sql-driver DSN.
func (c Config) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Database
	return mc.FormatDSN()
}
