package reconcile

import (
	"strings"

	"github.com/agentstation/rostersync/pkg/dates"
)

// ParticipantReconciler decides which attendance rows yield a
// participant and certificate pair.
type ParticipantReconciler struct {
	dates *dates.Normalizer
}

// NewParticipantReconciler builds a participant reconciler. A nil
// normalizer falls back to the default Indonesian month table.
func NewParticipantReconciler(normalizer *dates.Normalizer) *ParticipantReconciler {
	if normalizer == nil {
		normalizer = dates.NewNormalizer(nil)
	}
	return &ParticipantReconciler{dates: normalizer}
}

// Reconcile walks the rows in order, one decision per row, no
// grouping. Resolution runs start date, then program, then schedule,
// then the duplicate check against the snapshot's (schedule, name)
// set; the first failure decides the row. Because the snapshot is
// never updated mid-run, a row inserted by a previous run flips to
// Skipped only once the snapshot is reloaded.
func (r *ParticipantReconciler) Reconcile(rows []Row, snap *Snapshot) []ParticipantDecision {
	decisions := make([]ParticipantDecision, 0, len(rows))
	for _, row := range rows {
		decisions = append(decisions, r.reconcileRow(row, snap))
	}
	return decisions
}

func (r *ParticipantReconciler) reconcileRow(row Row, snap *Snapshot) ParticipantDecision {
	d := ParticipantDecision{
		Name:           strings.TrimSpace(row.Name),
		Program:        strings.TrimSpace(row.Program),
		CertificateRef: certificateRef(strings.TrimSpace(row.Serial), strings.TrimSpace(row.Note)),
		Action:         ActionSkip,
	}

	// An unparseable issue date is not an error, the certificate is
	// just recorded without one.
	if issued, err := r.dates.Normalize(row.CertificateDate); err == nil {
		d.IssuedAt = issued
	}

	start, err := r.dates.Normalize(row.StartDate)
	if err != nil {
		d.Status = StatusSkipped
		d.Reason = ReasonInvalidStartDate
		return d
	}
	d.StartDate = start

	ref, ok := snap.Program(d.Program)
	if !ok {
		d.Status = StatusNotFound
		d.Reason = ReasonProgramNotFound
		return d
	}
	programID, categoryID := ref.ID, ref.CategoryID
	d.ProgramID = &programID
	d.CategoryID = &categoryID

	scheduleID, ok := snap.ScheduleID(ScheduleKey{ProgramID: ref.ID, StartDate: start})
	if !ok {
		d.Status = StatusNotFound
		d.Reason = ReasonScheduleNotFound
		return d
	}
	d.ScheduleID = &scheduleID

	if snap.HasParticipant(scheduleID, d.Name) {
		d.Status = StatusSkipped
		d.Reason = ReasonDuplicateParticipant
		return d
	}

	d.Status = StatusToInsert
	d.Action = ActionInsert
	d.Reason = ReasonRecordsGenerated
	return d
}

// certificateRef assembles the reference number from the serial and
// note fragments. Both present concatenates them in that order; one
// present uses it alone.
func certificateRef(serial, note string) string {
	if serial != "" && note != "" {
		return serial + note
	}
	if note != "" {
		return note
	}
	return serial
}
