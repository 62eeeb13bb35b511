package store

import (
	"context"

	"github.com/agentstation/rostersync/pkg/reconcile"
)

// Mock is a canned Store for tests. Set the value fields for happy
// paths or Err to force every method to fail.
type Mock struct {
	ProgramNamesValue    map[string]struct{}
	ProgramsValue        map[string]reconcile.ProgramRef
	ScheduleIDsValue     map[reconcile.ScheduleKey]int
	ParticipantKeysValue map[reconcile.ParticipantKey]struct{}
	Err                  error
	Closed               bool
}

var _ Store = (*Mock)(nil)

// ProgramNames returns the canned name set.
func (m *Mock) ProgramNames(_ context.Context) (map[string]struct{}, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ProgramNamesValue, nil
}

// Programs returns the canned program mapping.
func (m *Mock) Programs(_ context.Context) (map[string]reconcile.ProgramRef, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ProgramsValue, nil
}

// ScheduleKeys returns the key set of the canned schedule mapping.
func (m *Mock) ScheduleKeys(_ context.Context) (map[reconcile.ScheduleKey]struct{}, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	keys := make(map[reconcile.ScheduleKey]struct{}, len(m.ScheduleIDsValue))
	for key := range m.ScheduleIDsValue {
		keys[key] = struct{}{}
	}
	return keys, nil
}

// ScheduleIDs returns the canned schedule mapping.
func (m *Mock) ScheduleIDs(_ context.Context) (map[reconcile.ScheduleKey]int, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ScheduleIDsValue, nil
}

// ParticipantKeys returns the canned participant set.
func (m *Mock) ParticipantKeys(_ context.Context) (map[reconcile.ParticipantKey]struct{}, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ParticipantKeysValue, nil
}

// Snapshot assembles the canned lookups into a Snapshot.
func (m *Mock) Snapshot(_ context.Context) (*reconcile.Snapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return reconcile.NewSnapshot(reconcile.SnapshotData{
		ProgramNames:    m.ProgramNamesValue,
		Programs:        m.ProgramsValue,
		ScheduleIDs:     m.ScheduleIDsValue,
		ParticipantKeys: m.ParticipantKeysValue,
	}), nil
}

// Close marks the mock closed.
func (m *Mock) Close() error {
	m.Closed = true
	return nil
}
