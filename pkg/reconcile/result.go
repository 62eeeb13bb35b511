package reconcile

import (
	"fmt"
	"strings"
)

// Totals aggregates a decision list into run-level counters for logs
// and report footers. Not every pipeline uses every counter.
type Totals struct {
	// Processed is the number of decisions made.
	Processed int `json:"processed" yaml:"processed"`

	// ToInsert counts decisions that yield mutation units.
	ToInsert int `json:"to_insert" yaml:"to_insert"`

	// Existing counts units already present in the snapshot.
	Existing int `json:"existing" yaml:"existing"`

	// Skipped counts attendance rows dropped without master-data
	// changes (bad start date or duplicate participant).
	Skipped int `json:"skipped" yaml:"skipped"`

	// NotFound counts resolution misses against the snapshot.
	NotFound int `json:"not_found" yaml:"not_found"`

	// Invalid counts schedule groups with unparseable dates.
	Invalid int `json:"invalid" yaml:"invalid"`

	// Uncategorized counts new programs no rule matched; they are
	// reported but excluded from the script.
	Uncategorized int `json:"uncategorized" yaml:"uncategorized"`
}

// HasInserts reports whether the run produced any mutation units.
func (t Totals) HasInserts() bool {
	return t.ToInsert > 0
}

// Summary renders the counters as one line, omitting zero counters
// other than the processed count.
func (t Totals) Summary() string {
	parts := []string{fmt.Sprintf("%d processed", t.Processed)}
	for _, c := range []struct {
		n     int
		label string
	}{
		{t.ToInsert, "to insert"},
		{t.Existing, "existing"},
		{t.Skipped, "skipped"},
		{t.NotFound, "not found"},
		{t.Invalid, "invalid"},
		{t.Uncategorized, "uncategorized"},
	} {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.label))
		}
	}
	return strings.Join(parts, ", ")
}

// ProgramTotals tallies program decisions. New programs without a
// category prediction count as Uncategorized rather than ToInsert
// since the script builder excludes them.
func ProgramTotals(decisions []ProgramDecision) Totals {
	t := Totals{Processed: len(decisions)}
	for _, d := range decisions {
		switch {
		case d.Status == StatusExists:
			t.Existing++
		case d.Insertable():
			t.ToInsert++
		default:
			t.Uncategorized++
		}
	}
	return t
}

// ScheduleTotals tallies schedule decisions.
func ScheduleTotals(decisions []ScheduleDecision) Totals {
	t := Totals{Processed: len(decisions)}
	for _, d := range decisions {
		switch d.Status {
		case StatusExists:
			t.Existing++
		case StatusNew:
			t.ToInsert++
		case StatusInvalidDate:
			t.Invalid++
		case StatusProgramNotFound:
			t.NotFound++
		}
	}
	return t
}

// ParticipantTotals tallies participant decisions. Invalid start
// dates count as Skipped, matching how reports present them.
func ParticipantTotals(decisions []ParticipantDecision) Totals {
	t := Totals{Processed: len(decisions)}
	for _, d := range decisions {
		switch d.Status {
		case StatusToInsert:
			t.ToInsert++
		case StatusSkipped:
			t.Skipped++
		case StatusNotFound:
			t.NotFound++
		}
	}
	return t
}
