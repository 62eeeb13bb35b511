// Package dates normalizes the "D Month YYYY" date strings found in
// attendance exports into canonical YYYY-MM-DD values. Month names may be
// localized; the normalizer carries a translation table mapping lower-cased
// local month names to English ones and falls back to treating unknown
// tokens as English month names directly.
package dates

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/rostersync/pkg/errors"
)

// Canonical is a date in YYYY-MM-DD form. The zero value means absent.
type Canonical string

// canonicalLayout is the wire format shared with the master schema.
const canonicalLayout = "2006-01-02"

// inputLayout matches the attendance export format, e.g. "31 December 2024".
const inputLayout = "2 January 2006"

// String returns the canonical date string.
func (c Canonical) String() string { return string(c) }

// IsZero reports whether the date is absent.
func (c Canonical) IsZero() bool { return c == "" }

// Time converts the canonical date back to a time.Time in UTC.
// Absent or malformed values return the zero time.
func (c Canonical) Time() time.Time {
	t, err := time.Parse(canonicalLayout, string(c))
	if err != nil {
		return time.Time{}
	}
	return t
}

// IndonesianMonths returns the default month translation table used by
// attendance exports.
func IndonesianMonths() map[string]string {
	return map[string]string{
		"januari":   "January",
		"februari":  "February",
		"maret":     "March",
		"april":     "April",
		"mei":       "May",
		"juni":      "June",
		"juli":      "July",
		"agustus":   "August",
		"september": "September",
		"oktober":   "October",
		"november":  "November",
		"desember":  "December",
	}
}

// Normalizer converts attendance date strings to Canonical values.
type Normalizer struct {
	months map[string]string
}

// NewNormalizer creates a Normalizer with the given month translation
// table. A nil table selects the Indonesian defaults.
func NewNormalizer(months map[string]string) *Normalizer {
	if months == nil {
		months = IndonesianMonths()
	}
	normalized := make(map[string]string, len(months))
	for local, english := range months {
		normalized[strings.ToLower(strings.TrimSpace(local))] = strings.TrimSpace(english)
	}
	return &Normalizer{months: normalized}
}

// Normalize converts a raw "D Month YYYY" string into a Canonical date.
// Input is trimmed and lower-cased first; values already in YYYY-MM-DD form
// pass through unchanged, which makes Normalize idempotent. The month token
// is translated through the table, with unknown tokens tried as English
// month names. Impossible calendar dates are rejected.
func (n *Normalizer) Normalize(raw string) (Canonical, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.NewParseError("date", raw, "empty date string")
	}

	// Canonical input round-trips untouched.
	if t, err := time.Parse(canonicalLayout, s); err == nil {
		return Canonical(t.Format(canonicalLayout)), nil
	}

	fields := strings.Fields(s)
	if len(fields) != 3 {
		return "", errors.NewParseError("date", raw, "expected day, month and year")
	}

	month := fields[1]
	if english, ok := n.months[month]; ok {
		month = english
	} else {
		month = cases.Title(language.English).String(month)
	}

	t, err := time.Parse(inputLayout, fields[0]+" "+month+" "+fields[2])
	if err != nil {
		return "", &errors.ParseError{
			Format:  "date",
			Input:   raw,
			Message: "not a valid calendar date",
			Err:     err,
		}
	}

	return Canonical(t.Format(canonicalLayout)), nil
}
