package sqlgen

import (
	"fmt"
	"strings"

	"github.com/agentstation/rostersync/pkg/reconcile"
)

// Programs renders a script creating master records for new,
// categorized programs. Each unit inserts the parent row, captures its
// generated key, then inserts the translation row. Decisions that are
// not insertable (existing or uncategorized programs) contribute
// nothing. Returns the script and the number of units it contains.
func (b *Builder) Programs(decisions []reconcile.ProgramDecision, target string) (string, int) {
	lines := b.header(target)
	units := 0
	for _, d := range decisions {
		if !d.Insertable() {
			continue
		}
		lines = append(lines,
			fmt.Sprintf("-- New Program: %s (%s)", d.Name, d.Category),
			fmt.Sprintf("INSERT INTO programs (id_category, created_at, updated_at) VALUES (%d, NOW(), NOW());", *d.CategoryID),
			"SET @last_prog_id = LAST_INSERT_ID();",
			fmt.Sprintf("INSERT INTO program_translations (id_program, language_code, name, slug, description, created_at, updated_at) VALUES (@last_prog_id, 'id', %s, %s, '-', NOW(), NOW());", quote(d.Name), quote(d.Slug)),
			"",
		)
		units++
	}
	lines = append(lines, "COMMIT;")
	return strings.Join(lines, "\n"), units
}

// Schedules renders a script creating schedule records for new
// (program, start date) groups. Times are left NULL, the exports do
// not carry them.
func (b *Builder) Schedules(decisions []reconcile.ScheduleDecision, target string) (string, int) {
	lines := b.header(target)
	units := 0
	for _, d := range decisions {
		if !d.Insertable() {
			continue
		}
		lines = append(lines,
			fmt.Sprintf("-- New Schedule: %s (%s to %s)", d.ProgramName, d.StartDate, d.EndDate),
			fmt.Sprintf("INSERT INTO schedules (id_program, id_category, date_start, date_end, time_start, time_end, created_at, updated_at) VALUES (%d, %d, '%s', '%s', NULL, NULL, NOW(), NOW());", *d.ProgramID, *d.CategoryID, d.StartDate, d.EndDate),
			"",
		)
		units++
	}
	lines = append(lines, "COMMIT;")
	return strings.Join(lines, "\n"), units
}

// Participants renders a script creating participant and certificate
// pairs. The certificate row references the participant's generated
// key; a certificate without a parseable issue date is stored with a
// NULL issued_at.
func (b *Builder) Participants(decisions []reconcile.ParticipantDecision, target string) (string, int) {
	lines := b.header(target)
	units := 0
	for _, d := range decisions {
		if !d.Insertable() {
			continue
		}
		issuedAt := "NULL"
		if !d.IssuedAt.IsZero() {
			issuedAt = "'" + d.IssuedAt.String() + "'"
		}
		lines = append(lines,
			fmt.Sprintf("-- New Participant: %s (%s)", d.Name, d.Program),
			fmt.Sprintf("INSERT INTO participants (id_schedule, id_program, id_category, name, created_at) VALUES (%d, %d, %d, %s, NOW());", *d.ScheduleID, *d.ProgramID, *d.CategoryID, quote(d.Name)),
			"SET @last_part_id = LAST_INSERT_ID();",
			fmt.Sprintf("INSERT INTO certificates (id_participant, reference_number, nama_program, issued_at, created_at) VALUES (@last_part_id, %s, %s, %s, NOW());", quote(d.CertificateRef), quote(d.Program), issuedAt),
			"",
		)
		units++
	}
	lines = append(lines, "COMMIT;")
	return strings.Join(lines, "\n"), units
}
