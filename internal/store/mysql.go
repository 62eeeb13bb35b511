package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/agentstation/rostersync/pkg/constants"
	"github.com/agentstation/rostersync/pkg/dates"
	pkgerrors "github.com/agentstation/rostersync/pkg/errors"
	"github.com/agentstation/rostersync/pkg/reconcile"
)

// MySQL reads master data from the application database.
type MySQL struct {
	db *sql.DB
}

var _ Store = (*MySQL)(nil)

// New wraps an existing handle. The caller keeps ownership decisions
// simple: Close closes the handle either way.
func New(db *sql.DB) *MySQL {
	return &MySQL{db: db}
}

// Open connects to MySQL and verifies the connection before
// returning.
func Open(ctx context.Context, cfg Config) (*MySQL, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, pkgerrors.NewConfigError("store", "invalid database configuration", err)
	}
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	pingCtx, cancel := context.WithTimeout(ctx, constants.DialTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, pkgerrors.WrapResource("connect to", "database", cfg.Database, err)
	}
	return &MySQL{db: db}, nil
}

// Close closes the database handle.
func (s *MySQL) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ProgramNames returns every translated program name, lowered.
func (s *MySQL) ProgramNames(ctx context.Context) (map[string]struct{}, error) {
	return fetchProgramNames(ctx, s.db)
}

// Programs returns the lowered-name to identity mapping.
func (s *MySQL) Programs(ctx context.Context) (map[string]reconcile.ProgramRef, error) {
	return fetchPrograms(ctx, s.db)
}

// ScheduleKeys returns the set of schedule composite keys.
func (s *MySQL) ScheduleKeys(ctx context.Context) (map[reconcile.ScheduleKey]struct{}, error) {
	return fetchScheduleKeys(ctx, s.db)
}

// ScheduleIDs returns the composite-key to schedule-id mapping.
func (s *MySQL) ScheduleIDs(ctx context.Context) (map[reconcile.ScheduleKey]int, error) {
	return fetchScheduleIDs(ctx, s.db)
}

// ParticipantKeys returns the set of (schedule, lowered name) pairs.
func (s *MySQL) ParticipantKeys(ctx context.Context) (map[reconcile.ParticipantKey]struct{}, error) {
	return fetchParticipantKeys(ctx, s.db)
}

// Snapshot loads all five lookups inside one read-only repeatable-read
// transaction so the pipelines see a single point in time even while
// the application keeps writing.
func (s *MySQL) Snapshot(ctx context.Context) (*reconcile.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.SnapshotTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, pkgerrors.WrapResource("begin", "snapshot transaction", "", err)
	}
	defer func() { _ = tx.Rollback() }()

	names, err := fetchProgramNames(ctx, tx)
	if err != nil {
		return nil, err
	}
	programs, err := fetchPrograms(ctx, tx)
	if err != nil {
		return nil, err
	}
	scheduleKeys, err := fetchScheduleKeys(ctx, tx)
	if err != nil {
		return nil, err
	}
	scheduleIDs, err := fetchScheduleIDs(ctx, tx)
	if err != nil {
		return nil, err
	}
	participants, err := fetchParticipantKeys(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, pkgerrors.WrapResource("commit", "snapshot transaction", "", err)
	}

	return reconcile.NewSnapshot(reconcile.SnapshotData{
		ProgramNames:    names,
		Programs:        programs,
		ScheduleKeys:    scheduleKeys,
		ScheduleIDs:     scheduleIDs,
		ParticipantKeys: participants,
	}), nil
}

// querier lets the fetch helpers run against either the pooled handle
// or an open transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func fetchProgramNames(ctx context.Context, q querier) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.QueryTimeout)
	defer cancel()

	rows, err := q.QueryContext(ctx, `SELECT name FROM program_translations`)
	if err != nil {
		return nil, pkgerrors.WrapResource("fetch", "program names", "", err)
	}
	defer rows.Close()

	names := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, pkgerrors.WrapResource("scan", "program names", "", err)
		}
		names[strings.ToLower(name)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.WrapResource("fetch", "program names", "", err)
	}
	return names, nil
}

func fetchPrograms(ctx context.Context, q querier) (map[string]reconcile.ProgramRef, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.QueryTimeout)
	defer cancel()

	rows, err := q.QueryContext(ctx, `
		SELECT p.id, pt.name, p.id_category
		FROM programs p
		JOIN program_translations pt ON p.id = pt.id_program`)
	if err != nil {
		return nil, pkgerrors.WrapResource("fetch", "programs", "", err)
	}
	defer rows.Close()

	programs := make(map[string]reconcile.ProgramRef)
	for rows.Next() {
		var (
			id         int
			name       string
			categoryID int
		)
		if err := rows.Scan(&id, &name, &categoryID); err != nil {
			return nil, pkgerrors.WrapResource("scan", "programs", "", err)
		}
		programs[strings.ToLower(name)] = reconcile.ProgramRef{ID: id, CategoryID: categoryID}
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.WrapResource("fetch", "programs", "", err)
	}
	return programs, nil
}

func fetchScheduleKeys(ctx context.Context, q querier) (map[reconcile.ScheduleKey]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.QueryTimeout)
	defer cancel()

	rows, err := q.QueryContext(ctx, `SELECT id_program, date_start FROM schedules`)
	if err != nil {
		return nil, pkgerrors.WrapResource("fetch", "schedule keys", "", err)
	}
	defer rows.Close()

	keys := make(map[reconcile.ScheduleKey]struct{})
	for rows.Next() {
		var (
			programID int
			dateStart string
		)
		if err := rows.Scan(&programID, &dateStart); err != nil {
			return nil, pkgerrors.WrapResource("scan", "schedule keys", "", err)
		}
		keys[reconcile.ScheduleKey{ProgramID: programID, StartDate: dates.Canonical(dateStart)}] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.WrapResource("fetch", "schedule keys", "", err)
	}
	return keys, nil
}

func fetchScheduleIDs(ctx context.Context, q querier) (map[reconcile.ScheduleKey]int, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.QueryTimeout)
	defer cancel()

	rows, err := q.QueryContext(ctx, `SELECT id, id_program, date_start FROM schedules`)
	if err != nil {
		return nil, pkgerrors.WrapResource("fetch", "schedules", "", err)
	}
	defer rows.Close()

	// date_start is a DATE column; scanned as a string it is already
	// in canonical YYYY-MM-DD form.
	schedules := make(map[reconcile.ScheduleKey]int)
	for rows.Next() {
		var (
			id        int
			programID int
			dateStart string
		)
		if err := rows.Scan(&id, &programID, &dateStart); err != nil {
			return nil, pkgerrors.WrapResource("scan", "schedules", "", err)
		}
		key := reconcile.ScheduleKey{ProgramID: programID, StartDate: dates.Canonical(dateStart)}
		schedules[key] = id
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.WrapResource("fetch", "schedules", "", err)
	}
	return schedules, nil
}

func fetchParticipantKeys(ctx context.Context, q querier) (map[reconcile.ParticipantKey]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.QueryTimeout)
	defer cancel()

	rows, err := q.QueryContext(ctx, `SELECT id_schedule, name FROM participants`)
	if err != nil {
		return nil, pkgerrors.WrapResource("fetch", "participants", "", err)
	}
	defer rows.Close()

	participants := make(map[reconcile.ParticipantKey]struct{})
	for rows.Next() {
		var (
			scheduleID int
			name       string
		)
		if err := rows.Scan(&scheduleID, &name); err != nil {
			return nil, pkgerrors.WrapResource("scan", "participants", "", err)
		}
		key := reconcile.ParticipantKey{ScheduleID: scheduleID, Name: strings.ToLower(name)}
		participants[key] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, pkgerrors.WrapResource("fetch", "participants", "", err)
	}
	return participants, nil
}
