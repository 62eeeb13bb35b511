package output

import (
	"io"
	"sort"
	"strconv"

	"github.com/agentstation/rostersync/pkg/dates"
	"github.com/agentstation/rostersync/pkg/reconcile"
)

// ProgramReport shapes program decisions into a review table. Insert
// decisions sort to the top so the new programs are the first thing an
// operator sees.
func ProgramReport(decisions []reconcile.ProgramDecision) Data {
	sorted := make([]reconcile.ProgramDecision, len(decisions))
	copy(sorted, decisions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Action < sorted[j].Action
	})

	rows := make([][]string, 0, len(sorted))
	for _, d := range sorted {
		rows = append(rows, []string{
			d.Name,
			d.Category,
			naInt(d.CategoryID),
			string(d.Action),
		})
	}
	return Data{
		Headers: []string{"Program Name", "Predicted Category", "Predicted Category ID", "Action"},
		Rows:    rows,
	}
}

// ScheduleReport shapes schedule decisions into a review table, insert
// decisions first. Dates that failed to normalize render empty.
func ScheduleReport(decisions []reconcile.ScheduleDecision) Data {
	sorted := make([]reconcile.ScheduleDecision, len(decisions))
	copy(sorted, decisions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Action < sorted[j].Action
	})

	rows := make([][]string, 0, len(sorted))
	for _, d := range sorted {
		rows = append(rows, []string{
			d.ProgramName,
			d.StartDate.String(),
			d.EndDate.String(),
			naInt(d.ProgramID),
			naInt(d.CategoryID),
			string(d.Status),
			string(d.Action),
		})
	}
	return Data{
		Headers: []string{"Program Name", "Start Date", "End Date", "Program ID", "Category ID", "Status", "Action"},
		Rows:    rows,
	}
}

// ParticipantReport shapes participant decisions into a review table.
// Row order follows the export so operators can line the report up
// against the source file; the Action column carries the decision
// reason.
func ParticipantReport(decisions []reconcile.ParticipantDecision) Data {
	rows := make([][]string, 0, len(decisions))
	for _, d := range decisions {
		rows = append(rows, []string{
			d.Name,
			d.Program,
			dateOrNA(d.StartDate),
			string(d.Status),
			d.Reason,
			d.CertificateRef,
			dateOrNA(d.IssuedAt),
		})
	}
	return Data{
		Headers: []string{"Participant Name", "Program", "Schedule Start", "Status", "Action", "Cert. Ref.", "Cert. Issue Date"},
		Rows:    rows,
	}
}

// WriteProgramReport renders program decisions. Tabular formats use
// the report shape; JSON and YAML emit the decisions themselves.
func WriteProgramReport(w io.Writer, format Format, decisions []reconcile.ProgramDecision) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, decisions)
	default:
		return NewFormatter(format).Format(w, ProgramReport(decisions))
	}
}

// WriteScheduleReport renders schedule decisions.
func WriteScheduleReport(w io.Writer, format Format, decisions []reconcile.ScheduleDecision) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, decisions)
	default:
		return NewFormatter(format).Format(w, ScheduleReport(decisions))
	}
}

// WriteParticipantReport renders participant decisions.
func WriteParticipantReport(w io.Writer, format Format, decisions []reconcile.ParticipantDecision) error {
	switch format {
	case FormatJSON, FormatYAML:
		return NewFormatter(format).Format(w, decisions)
	default:
		return NewFormatter(format).Format(w, ParticipantReport(decisions))
	}
}

func naInt(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}

func dateOrNA(d dates.Canonical) string {
	if d.IsZero() {
		return "N/A"
	}
	return d.String()
}
