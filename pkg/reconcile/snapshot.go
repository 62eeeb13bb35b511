package reconcile

import "github.com/agentstation/rostersync/pkg/dates"

// ProgramRef is the master-data identity of a program: its primary key
// and the category it belongs to.
type ProgramRef struct {
	ID         int
	CategoryID int
}

// ScheduleKey is the composite identity of a schedule: the owning
// program and the canonical start date. Two schedules of the same
// program never share a start date in the master dataset.
type ScheduleKey struct {
	ProgramID int
	StartDate dates.Canonical
}

// ParticipantKey is the composite identity of a participant within a
// schedule. Name holds the NormalizeName form.
type ParticipantKey struct {
	ScheduleID int
	Name       string
}

// Snapshot is a point-in-time copy of the master-data lookups used by
// all three pipelines. It is loaded once per run and read-only after
// construction; the pipelines never mutate it, which keeps every
// decision a pure function of the initial state.
type Snapshot struct {
	programNames    map[string]struct{}
	programs        map[string]ProgramRef
	scheduleKeys    map[ScheduleKey]struct{}
	scheduleIDs     map[ScheduleKey]int
	participantKeys map[ParticipantKey]struct{}
}

// SnapshotData carries the raw lookup sets a store produces. Name keys
// must already be in NormalizeName form; the constructor does not
// re-normalize them.
type SnapshotData struct {
	// ProgramNames is the set of known program names.
	ProgramNames map[string]struct{}

	// Programs maps program names to their master identities.
	Programs map[string]ProgramRef

	// ScheduleKeys is the set of known schedule composite keys. Nil
	// derives the set from ScheduleIDs.
	ScheduleKeys map[ScheduleKey]struct{}

	// ScheduleIDs maps schedule composite keys to schedule primary keys.
	ScheduleIDs map[ScheduleKey]int

	// ParticipantKeys is the set of known (schedule, name) pairs.
	ParticipantKeys map[ParticipantKey]struct{}
}

// NewSnapshot builds a Snapshot from store lookups. Nil maps are
// replaced with empty ones so lookups on a sparse snapshot stay safe.
func NewSnapshot(data SnapshotData) *Snapshot {
	s := &Snapshot{
		programNames:    data.ProgramNames,
		programs:        data.Programs,
		scheduleKeys:    data.ScheduleKeys,
		scheduleIDs:     data.ScheduleIDs,
		participantKeys: data.ParticipantKeys,
	}
	if s.programNames == nil {
		s.programNames = make(map[string]struct{})
	}
	if s.programs == nil {
		s.programs = make(map[string]ProgramRef)
	}
	if s.scheduleIDs == nil {
		s.scheduleIDs = make(map[ScheduleKey]int)
	}
	if s.participantKeys == nil {
		s.participantKeys = make(map[ParticipantKey]struct{})
	}
	if s.scheduleKeys == nil {
		s.scheduleKeys = make(map[ScheduleKey]struct{}, len(s.scheduleIDs))
		for key := range s.scheduleIDs {
			s.scheduleKeys[key] = struct{}{}
		}
	}
	return s
}

// HasProgramName reports whether a program name is known. The name is
// normalized before lookup.
func (s *Snapshot) HasProgramName(name string) bool {
	_, ok := s.programNames[NormalizeName(name)]
	return ok
}

// Program resolves a program name to its master identity. The name is
// normalized before lookup.
func (s *Snapshot) Program(name string) (ProgramRef, bool) {
	ref, ok := s.programs[NormalizeName(name)]
	return ref, ok
}

// HasSchedule reports whether a (program, start date) schedule exists.
func (s *Snapshot) HasSchedule(key ScheduleKey) bool {
	_, ok := s.scheduleKeys[key]
	return ok
}

// ScheduleID resolves a schedule composite key to its primary key.
func (s *Snapshot) ScheduleID(key ScheduleKey) (int, bool) {
	id, ok := s.scheduleIDs[key]
	return id, ok
}

// HasParticipant reports whether a (schedule, name) pair exists. The
// name is normalized before lookup.
func (s *Snapshot) HasParticipant(scheduleID int, name string) bool {
	_, ok := s.participantKeys[ParticipantKey{ScheduleID: scheduleID, Name: NormalizeName(name)}]
	return ok
}

// Counts returns the sizes of the snapshot lookups, in the order
// program names, programs, schedules, participants. Used for run
// logging.
func (s *Snapshot) Counts() (names, programs, schedules, participants int) {
	return len(s.programNames), len(s.programs), len(s.scheduleIDs), len(s.participantKeys)
}
