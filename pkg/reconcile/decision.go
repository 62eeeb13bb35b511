package reconcile

import "github.com/agentstation/rostersync/pkg/dates"

// Action tells the script builder what to do with a reconciled unit.
type Action string

// Actions attached to decisions.
const (
	ActionInsert Action = "Insert"
	ActionSkip   Action = "Skip"
)

// Status classifies the outcome of reconciling one unit. The program
// and schedule pipelines share Exists/New; schedules add the two
// resolution failures; participants use the Skipped/NotFound/ToInsert
// trio.
type Status string

const (
	// StatusExists marks a unit already present in the snapshot.
	StatusExists Status = "Exists"

	// StatusNew marks a unit absent from the snapshot that should be
	// created.
	StatusNew Status = "New"

	// StatusInvalidDate marks a schedule group whose start or end date
	// could not be normalized.
	StatusInvalidDate Status = "Invalid Date"

	// StatusProgramNotFound marks a schedule group whose program name
	// has no master record.
	StatusProgramNotFound Status = "Program Not Found"

	// StatusSkipped marks an attendance row dropped without touching
	// master data: a bad start date or a duplicate participant.
	StatusSkipped Status = "Skipped"

	// StatusNotFound marks an attendance row whose program or schedule
	// could not be resolved against the snapshot.
	StatusNotFound Status = "Not Found"

	// StatusToInsert marks an attendance row that yields a participant
	// and certificate pair.
	StatusToInsert Status = "To Be Inserted"
)

// Reasons attached to participant decisions. Reports surface these
// verbatim so operators can tell duplicates from resolution misses.
const (
	ReasonInvalidStartDate     = "Invalid schedule start date"
	ReasonProgramNotFound      = "Program not found in master data"
	ReasonScheduleNotFound     = "Schedule not found for this program and date"
	ReasonDuplicateParticipant = "Participant already exists for this schedule"
	ReasonRecordsGenerated     = "Participant and Certificate records generated"
)

// CategoryNotApplicable is the category shown for programs that
// already exist and therefore skip prediction.
const CategoryNotApplicable = "N/A"

// ProgramDecision is the outcome of reconciling one candidate program
// name against the snapshot.
type ProgramDecision struct {
	// Name is the candidate name as given, trimmed.
	Name string `json:"name" yaml:"name"`

	// Slug is the URL-safe identifier derived from Name. Collisions
	// between two new candidates in the same run are not resolved.
	Slug string `json:"slug" yaml:"slug"`

	// Category is the predicted category name, Uncategorized when no
	// rule matched, or "N/A" for existing programs.
	Category string `json:"category" yaml:"category"`

	// CategoryID is the predicted category's primary key; nil for
	// existing or uncategorized programs.
	CategoryID *int `json:"category_id" yaml:"category_id"`

	Status Status `json:"status" yaml:"status"`
	Action Action `json:"action" yaml:"action"`
}

// Insertable reports whether the decision yields a mutation unit. New
// programs without a category prediction are excluded because the
// parent row requires a category foreign key.
func (d ProgramDecision) Insertable() bool {
	return d.Action == ActionInsert && d.CategoryID != nil
}

// ScheduleDecision is the outcome of reconciling one (program, start
// date) group against the snapshot.
type ScheduleDecision struct {
	// ProgramName is the group's program name as given, trimmed.
	ProgramName string `json:"program_name" yaml:"program_name"`

	// StartDate and EndDate are canonical dates, zero when the raw
	// value did not parse.
	StartDate dates.Canonical `json:"start_date" yaml:"start_date"`
	EndDate   dates.Canonical `json:"end_date" yaml:"end_date"`

	// ProgramID and CategoryID are the resolved master identifiers,
	// nil until the program lookup succeeds.
	ProgramID  *int `json:"program_id" yaml:"program_id"`
	CategoryID *int `json:"category_id" yaml:"category_id"`

	Status Status `json:"status" yaml:"status"`
	Action Action `json:"action" yaml:"action"`
}

// Insertable reports whether the decision yields a mutation unit.
func (d ScheduleDecision) Insertable() bool {
	return d.Action == ActionInsert && d.ProgramID != nil && d.CategoryID != nil
}

// ParticipantDecision is the outcome of reconciling one attendance row
// against the snapshot.
type ParticipantDecision struct {
	// Name is the participant name as given, trimmed.
	Name string `json:"name" yaml:"name"`

	// Program is the program name as given, trimmed. Certificate
	// records denormalize it.
	Program string `json:"program" yaml:"program"`

	// StartDate is the canonical schedule start date, zero when the
	// raw value did not parse.
	StartDate dates.Canonical `json:"start_date" yaml:"start_date"`

	// CertificateRef is the assembled certificate reference number.
	CertificateRef string `json:"certificate_ref" yaml:"certificate_ref"`

	// IssuedAt is the canonical certificate issue date, zero when the
	// raw value did not parse. A zero value becomes NULL in scripts.
	IssuedAt dates.Canonical `json:"issued_at" yaml:"issued_at"`

	// ScheduleID, ProgramID and CategoryID are the resolved master
	// identifiers, nil until the corresponding lookup succeeds.
	ScheduleID *int `json:"schedule_id" yaml:"schedule_id"`
	ProgramID  *int `json:"program_id" yaml:"program_id"`
	CategoryID *int `json:"category_id" yaml:"category_id"`

	Status Status `json:"status" yaml:"status"`
	Action Action `json:"action" yaml:"action"`

	// Reason explains the status in operator terms.
	Reason string `json:"reason" yaml:"reason"`
}

// Insertable reports whether the decision yields a mutation unit.
func (d ParticipantDecision) Insertable() bool {
	return d.Status == StatusToInsert && d.ScheduleID != nil && d.ProgramID != nil && d.CategoryID != nil
}
