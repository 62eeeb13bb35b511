// Package reconcile implements the three reconciliation pipelines that
// compare attendance exports against the master dataset: candidate
// program names, schedule groups, and participant rows. Each pipeline
// is a sequential pass over an immutable Snapshot loaded once at the
// start of a run; outcomes are returned as decision lists that carry
// the resolved identifiers and the action to take. Business-level
// mismatches (unparseable dates, unresolved names, duplicates) never
// abort a run, they surface as statuses on the affected decision.
package reconcile

import "strings"

// Row is a single record from an attendance export after column
// validation. Fields hold raw cell values with surrounding whitespace
// trimmed; an empty string marks an absent cell.
type Row struct {
	// Name is the participant's full name as written in the export.
	Name string

	// Program is the program name as written in the export.
	Program string

	// StartDate is the schedule start date, typically in Indonesian
	// long form such as "18 Januari 2025".
	StartDate string

	// CertificateDate is the certificate issue date. Schedule
	// reconciliation reuses it as the schedule end date, which is how
	// the exports encode that value.
	CertificateDate string

	// Serial is the certificate serial fragment.
	Serial string

	// Note is the certificate note fragment.
	Note string
}

// NormalizeName lowers and trims a free-text name for comparison
// against snapshot keys. Every snapshot lookup uses this form.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
