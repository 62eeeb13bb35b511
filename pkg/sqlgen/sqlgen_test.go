package sqlgen_test

import (
	"strings"
	"testing"
	"time"

	"github.com/agentstation/utc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rostersync/pkg/reconcile"
	"github.com/agentstation/rostersync/pkg/sqlgen"
)

func fixedClock() utc.Time {
	return utc.Time{Time: time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)}
}

func intPtr(i int) *int { return &i }

func TestBuilderEnvelope(t *testing.T) {
	b := sqlgen.New(sqlgen.WithClock(fixedClock))

	script, units := b.Programs(nil, "out.sql")
	assert.Zero(t, units)

	want := strings.Join([]string{
		"-- Generated by rostersync dev",
		"-- Date: 2025-01-02 15:04:05",
		"-- Output target: out.sql",
		"START TRANSACTION;",
		"",
		"COMMIT;",
	}, "\n")
	assert.Equal(t, want, script)
}

func TestBuilderHeaderStamps(t *testing.T) {
	b := sqlgen.New(
		sqlgen.WithClock(fixedClock),
		sqlgen.WithVersion("v1.2.0"),
		sqlgen.WithRunID("8a6f2c1d"),
	)

	script, _ := b.Schedules(nil, "output_data/insert_schedules.sql")
	lines := strings.Split(script, "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Equal(t, "-- Generated by rostersync v1.2.0", lines[0])
	assert.Equal(t, "-- Date: 2025-01-02 15:04:05", lines[1])
	assert.Equal(t, "-- Run: 8a6f2c1d", lines[2])
	assert.Equal(t, "-- Output target: output_data/insert_schedules.sql", lines[3])
	assert.Equal(t, "START TRANSACTION;", lines[4])
	assert.Equal(t, "COMMIT;", lines[len(lines)-1])
}

func TestBuilderPrograms(t *testing.T) {
	b := sqlgen.New(sqlgen.WithClock(fixedClock))

	decisions := []reconcile.ProgramDecision{
		{
			Name:     "Training CMA",
			Slug:     "training-cma",
			Category: reconcile.CategoryNotApplicable,
			Status:   reconcile.StatusExists,
			Action:   reconcile.ActionSkip,
		},
		{
			Name:       "Training Ms. Excel 'Advanced'",
			Slug:       "training-ms-excel-advanced",
			Category:   "IT",
			CategoryID: intPtr(5),
			Status:     reconcile.StatusNew,
			Action:     reconcile.ActionInsert,
		},
		{
			Name:     "Workshop Fotografi",
			Slug:     "workshop-fotografi",
			Category: "Uncategorized",
			Status:   reconcile.StatusNew,
			Action:   reconcile.ActionInsert,
		},
	}

	script, units := b.Programs(decisions, "out.sql")
	assert.Equal(t, 1, units)

	assert.Contains(t, script, "-- New Program: Training Ms. Excel 'Advanced' (IT)")
	assert.Contains(t, script, "INSERT INTO programs (id_category, created_at, updated_at) VALUES (5, NOW(), NOW());")
	assert.Contains(t, script, "SET @last_prog_id = LAST_INSERT_ID();")
	assert.Contains(t, script,
		"INSERT INTO program_translations (id_program, language_code, name, slug, description, created_at, updated_at) "+
			"VALUES (@last_prog_id, 'id', 'Training Ms. Excel ''Advanced''', 'training-ms-excel-advanced', '-', NOW(), NOW());")

	assert.NotContains(t, script, "Training CMA", "existing programs stay out of the script")
	assert.NotContains(t, script, "Workshop Fotografi", "uncategorized programs stay out of the script")
}

func TestBuilderSchedules(t *testing.T) {
	b := sqlgen.New(sqlgen.WithClock(fixedClock))

	decisions := []reconcile.ScheduleDecision{
		{
			ProgramName: "Training CMA",
			StartDate:   "2025-01-01",
			EndDate:     "2025-01-03",
			ProgramID:   intPtr(5),
			CategoryID:  intPtr(2),
			Status:      reconcile.StatusNew,
			Action:      reconcile.ActionInsert,
		},
		{
			ProgramName: "Training CMA",
			StartDate:   "2024-12-31",
			EndDate:     "2025-01-02",
			ProgramID:   intPtr(5),
			CategoryID:  intPtr(2),
			Status:      reconcile.StatusExists,
			Action:      reconcile.ActionSkip,
		},
	}

	script, units := b.Schedules(decisions, "out.sql")
	assert.Equal(t, 1, units)

	assert.Contains(t, script, "-- New Schedule: Training CMA (2025-01-01 to 2025-01-03)")
	assert.Contains(t, script,
		"INSERT INTO schedules (id_program, id_category, date_start, date_end, time_start, time_end, created_at, updated_at) "+
			"VALUES (5, 2, '2025-01-01', '2025-01-03', NULL, NULL, NOW(), NOW());")
	assert.NotContains(t, script, "2024-12-31")
}

func TestBuilderParticipants(t *testing.T) {
	b := sqlgen.New(sqlgen.WithClock(fixedClock))

	t.Run("unit chains certificate to participant", func(t *testing.T) {
		decisions := []reconcile.ParticipantDecision{{
			Name:           "Siti Rahayu",
			Program:        "Training CMA",
			StartDate:      "2024-12-31",
			CertificateRef: "021/CERT/XII/2024",
			IssuedAt:       "2025-01-02",
			ScheduleID:     intPtr(77),
			ProgramID:      intPtr(5),
			CategoryID:     intPtr(2),
			Status:         reconcile.StatusToInsert,
			Action:         reconcile.ActionInsert,
		}}

		script, units := b.Participants(decisions, "out.sql")
		assert.Equal(t, 1, units)

		assert.Contains(t, script, "-- New Participant: Siti Rahayu (Training CMA)")
		assert.Contains(t, script,
			"INSERT INTO participants (id_schedule, id_program, id_category, name, created_at) "+
				"VALUES (77, 5, 2, 'Siti Rahayu', NOW());")
		assert.Contains(t, script, "SET @last_part_id = LAST_INSERT_ID();")
		assert.Contains(t, script,
			"INSERT INTO certificates (id_participant, reference_number, nama_program, issued_at, created_at) "+
				"VALUES (@last_part_id, '021/CERT/XII/2024', 'Training CMA', '2025-01-02', NOW());")

		participantIdx := strings.Index(script, "INSERT INTO participants")
		certificateIdx := strings.Index(script, "INSERT INTO certificates")
		assert.Less(t, participantIdx, certificateIdx)
	})

	t.Run("missing issue date becomes NULL", func(t *testing.T) {
		decisions := []reconcile.ParticipantDecision{{
			Name:           "Budi Santoso",
			Program:        "Training CMA",
			StartDate:      "2024-12-31",
			CertificateRef: "022/CERT/XII/2024",
			ScheduleID:     intPtr(77),
			ProgramID:      intPtr(5),
			CategoryID:     intPtr(2),
			Status:         reconcile.StatusToInsert,
			Action:         reconcile.ActionInsert,
		}}

		script, _ := b.Participants(decisions, "out.sql")
		assert.Contains(t, script, "'022/CERT/XII/2024', 'Training CMA', NULL, NOW());")
	})

	t.Run("quotes in names are doubled", func(t *testing.T) {
		decisions := []reconcile.ParticipantDecision{{
			Name:           "D'Angelo Sitorus",
			Program:        "Training CMA",
			StartDate:      "2024-12-31",
			CertificateRef: "023/CERT/XII/2024",
			ScheduleID:     intPtr(77),
			ProgramID:      intPtr(5),
			CategoryID:     intPtr(2),
			Status:         reconcile.StatusToInsert,
			Action:         reconcile.ActionInsert,
		}}

		script, _ := b.Participants(decisions, "out.sql")
		assert.Contains(t, script, "'D''Angelo Sitorus'")
	})
}
