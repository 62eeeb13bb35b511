package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/rostersync/pkg/reconcile"
)

func TestNewSnapshotEmpty(t *testing.T) {
	snap := reconcile.NewSnapshot(reconcile.SnapshotData{})

	assert.False(t, snap.HasProgramName("anything"))
	_, ok := snap.Program("anything")
	assert.False(t, ok)
	assert.False(t, snap.HasSchedule(reconcile.ScheduleKey{ProgramID: 1, StartDate: "2024-01-01"}))
	assert.False(t, snap.HasParticipant(1, "anyone"))

	names, programs, schedules, participants := snap.Counts()
	assert.Zero(t, names)
	assert.Zero(t, programs)
	assert.Zero(t, schedules)
	assert.Zero(t, participants)
}

func TestSnapshotLookupsNormalize(t *testing.T) {
	snap := reconcile.NewSnapshot(reconcile.SnapshotData{
		ProgramNames: map[string]struct{}{"training cma": {}},
		Programs: map[string]reconcile.ProgramRef{
			"training cma": {ID: 5, CategoryID: 2},
		},
		ScheduleIDs: map[reconcile.ScheduleKey]int{
			{ProgramID: 5, StartDate: "2024-12-31"}: 77,
		},
		ParticipantKeys: map[reconcile.ParticipantKey]struct{}{
			{ScheduleID: 77, Name: "budi santoso"}: {},
		},
	})

	assert.True(t, snap.HasProgramName("  Training CMA  "))

	ref, ok := snap.Program("TRAINING CMA")
	assert.True(t, ok)
	assert.Equal(t, 5, ref.ID)

	key := reconcile.ScheduleKey{ProgramID: 5, StartDate: "2024-12-31"}
	assert.True(t, snap.HasSchedule(key), "existence set derives from the id map")
	id, ok := snap.ScheduleID(key)
	assert.True(t, ok)
	assert.Equal(t, 77, id)

	assert.True(t, snap.HasParticipant(77, "Budi Santoso "))
}

func TestSnapshotExplicitScheduleKeys(t *testing.T) {
	key := reconcile.ScheduleKey{ProgramID: 5, StartDate: "2024-12-31"}
	snap := reconcile.NewSnapshot(reconcile.SnapshotData{
		ScheduleKeys: map[reconcile.ScheduleKey]struct{}{key: {}},
	})

	assert.True(t, snap.HasSchedule(key))
	_, ok := snap.ScheduleID(key)
	assert.False(t, ok, "the key set does not imply an id mapping")
}
