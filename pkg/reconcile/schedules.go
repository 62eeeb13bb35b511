package reconcile

import (
	"strings"

	"github.com/agentstation/rostersync/pkg/dates"
)

// rawScheduleKey groups export rows by their program name and start
// date exactly as written, before any normalization.
type rawScheduleKey struct {
	program   string
	startDate string
}

// ScheduleReconciler decides which (program, start date) groups from
// an attendance export need schedule records.
type ScheduleReconciler struct {
	dates *dates.Normalizer
}

// NewScheduleReconciler builds a schedule reconciler. A nil normalizer
// falls back to the default Indonesian month table.
func NewScheduleReconciler(normalizer *dates.Normalizer) *ScheduleReconciler {
	if normalizer == nil {
		normalizer = dates.NewNormalizer(nil)
	}
	return &ScheduleReconciler{dates: normalizer}
}

// Reconcile collapses rows into groups keyed by the raw (program,
// start date) pair, first occurrence per key wins, then decides each
// group in first-seen order. Rows missing a program, start date or end
// date are dropped before grouping. Later rows absorbed into a group
// contribute nothing, including their end dates.
//
// A group whose dates both normalize and whose program resolves is
// Exists when the (program, canonical start) schedule key is already
// in the snapshot, otherwise New/Insert.
func (r *ScheduleReconciler) Reconcile(rows []Row, snap *Snapshot) []ScheduleDecision {
	groups, order := groupSchedules(rows)

	decisions := make([]ScheduleDecision, 0, len(order))
	for _, key := range order {
		row := groups[key]
		d := ScheduleDecision{
			ProgramName: row.Program,
			Action:      ActionSkip,
		}

		start, startErr := r.dates.Normalize(row.StartDate)
		end, endErr := r.dates.Normalize(row.CertificateDate)
		if startErr == nil {
			d.StartDate = start
		}
		if endErr == nil {
			d.EndDate = end
		}

		if startErr != nil || endErr != nil {
			d.Status = StatusInvalidDate
		} else if ref, ok := snap.Program(row.Program); !ok {
			d.Status = StatusProgramNotFound
		} else {
			programID, categoryID := ref.ID, ref.CategoryID
			d.ProgramID = &programID
			d.CategoryID = &categoryID
			if snap.HasSchedule(ScheduleKey{ProgramID: ref.ID, StartDate: start}) {
				d.Status = StatusExists
			} else {
				d.Status = StatusNew
				d.Action = ActionInsert
			}
		}

		decisions = append(decisions, d)
	}
	return decisions
}

// groupSchedules drops incomplete rows, then keeps the first row seen
// per raw key. The returned order preserves first appearance so
// decision lists stay stable across runs over the same export.
func groupSchedules(rows []Row) (map[rawScheduleKey]Row, []rawScheduleKey) {
	groups := make(map[rawScheduleKey]Row, len(rows))
	order := make([]rawScheduleKey, 0, len(rows))
	for _, row := range rows {
		program := strings.TrimSpace(row.Program)
		start := strings.TrimSpace(row.StartDate)
		end := strings.TrimSpace(row.CertificateDate)
		if program == "" || start == "" || end == "" {
			continue
		}
		key := rawScheduleKey{program: program, startDate: start}
		if _, ok := groups[key]; ok {
			continue
		}
		groups[key] = Row{Program: program, StartDate: start, CertificateDate: end}
		order = append(order, key)
	}
	return groups, order
}
