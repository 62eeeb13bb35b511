// Package source reads attendance exports. The exports are CSV files
// with Indonesian column headers; the same file feeds both the
// schedule and participant pipelines, they just require different
// columns. Column presence is validated once here so the pipelines
// never see a missing field.
package source

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	pkgerrors "github.com/agentstation/rostersync/pkg/errors"
	"github.com/agentstation/rostersync/pkg/reconcile"
)

// Export column headers.
const (
	ColumnSerial          = "No"
	ColumnName            = "Nama"
	ColumnProgram         = "Program"
	ColumnStartDate       = "Tanggal Mulai"
	ColumnNote            = "ket"
	ColumnCertificateDate = "Tanggal Sertifikat"
)

// scheduleColumns must be present to reconcile schedules.
var scheduleColumns = []string{ColumnProgram, ColumnStartDate, ColumnCertificateDate}

// participantColumns must be present to reconcile participants. The
// serial column is optional, older exports do not carry it.
var participantColumns = []string{ColumnName, ColumnProgram, ColumnStartDate, ColumnNote, ColumnCertificateDate}

// ScheduleRows reads an export for the schedule pipeline.
func ScheduleRows(path string) ([]reconcile.Row, error) {
	return readRows(path, scheduleColumns)
}

// ParticipantRows reads an export for the participant pipeline.
func ParticipantRows(path string) ([]reconcile.Row, error) {
	return readRows(path, participantColumns)
}

func readRows(path string, required []string) ([]reconcile.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.WrapIO("open", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, pkgerrors.WrapParse("csv", path, pkgerrors.New("missing header row"))
	}
	if err != nil {
		return nil, pkgerrors.WrapParse("csv", path, err)
	}

	index := columnIndex(header)
	if missing := missingColumns(index, required); len(missing) > 0 {
		return nil, pkgerrors.NewValidationError(
			"columns", missing, "export is missing required columns: "+strings.Join(missing, ", "))
	}

	var rows []reconcile.Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, pkgerrors.WrapParse("csv", path, err)
		}
		rows = append(rows, reconcile.Row{
			Serial:          cell(record, index, ColumnSerial),
			Name:            cell(record, index, ColumnName),
			Program:         cell(record, index, ColumnProgram),
			StartDate:       cell(record, index, ColumnStartDate),
			Note:            cell(record, index, ColumnNote),
			CertificateDate: cell(record, index, ColumnCertificateDate),
		})
	}
	return rows, nil
}

// columnIndex maps header names to field positions. The first header
// cell is cleaned of a UTF-8 byte order mark, spreadsheet exports
// often start with one.
func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		index[strings.TrimSpace(name)] = i
	}
	return index
}

func missingColumns(index map[string]int, required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// cell returns the trimmed value of a named column, or "" when the
// column is absent from this export.
func cell(record []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
