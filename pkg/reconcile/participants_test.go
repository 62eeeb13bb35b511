package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rostersync/pkg/dates"
	"github.com/agentstation/rostersync/pkg/reconcile"
)

func participantSnapshot() *reconcile.Snapshot {
	return reconcile.NewSnapshot(reconcile.SnapshotData{
		Programs: map[string]reconcile.ProgramRef{
			"training cma": {ID: 5, CategoryID: 2},
		},
		ScheduleIDs: map[reconcile.ScheduleKey]int{
			{ProgramID: 5, StartDate: "2024-12-31"}: 77,
		},
		ParticipantKeys: map[reconcile.ParticipantKey]struct{}{
			{ScheduleID: 77, Name: "budi santoso"}: {},
		},
	})
}

func TestParticipantReconcilerReconcile(t *testing.T) {
	r := reconcile.NewParticipantReconciler(nil)
	snap := participantSnapshot()

	t.Run("fresh row generates both records", func(t *testing.T) {
		rows := []reconcile.Row{{
			Name:            "Siti Rahayu",
			Program:         "Training CMA",
			StartDate:       "31 Desember 2024",
			CertificateDate: "2 Januari 2025",
			Serial:          "021",
			Note:            "/CERT/XII/2024",
		}}
		decisions := r.Reconcile(rows, snap)
		require.Len(t, decisions, 1)

		d := decisions[0]
		assert.Equal(t, reconcile.StatusToInsert, d.Status)
		assert.Equal(t, reconcile.ActionInsert, d.Action)
		assert.Equal(t, reconcile.ReasonRecordsGenerated, d.Reason)
		assert.Equal(t, dates.Canonical("2024-12-31"), d.StartDate)
		assert.Equal(t, dates.Canonical("2025-01-02"), d.IssuedAt)
		assert.Equal(t, "021/CERT/XII/2024", d.CertificateRef)
		require.NotNil(t, d.ScheduleID)
		require.NotNil(t, d.ProgramID)
		require.NotNil(t, d.CategoryID)
		assert.Equal(t, 77, *d.ScheduleID)
		assert.Equal(t, 5, *d.ProgramID)
		assert.Equal(t, 2, *d.CategoryID)
		assert.True(t, d.Insertable())
	})

	t.Run("invalid start date skips the row", func(t *testing.T) {
		rows := []reconcile.Row{{
			Name:      "Siti Rahayu",
			Program:   "Training CMA",
			StartDate: "31 Bulananeh 2024",
		}}
		decisions := r.Reconcile(rows, snap)
		require.Len(t, decisions, 1)

		d := decisions[0]
		assert.Equal(t, reconcile.StatusSkipped, d.Status)
		assert.Equal(t, reconcile.ActionSkip, d.Action)
		assert.Equal(t, reconcile.ReasonInvalidStartDate, d.Reason)
		assert.True(t, d.StartDate.IsZero())
		assert.Nil(t, d.ScheduleID)
	})

	t.Run("unknown program is reported", func(t *testing.T) {
		rows := []reconcile.Row{{
			Name:      "Siti Rahayu",
			Program:   "Pelatihan Misterius",
			StartDate: "31 Desember 2024",
		}}
		decisions := r.Reconcile(rows, snap)
		require.Len(t, decisions, 1)

		d := decisions[0]
		assert.Equal(t, reconcile.StatusNotFound, d.Status)
		assert.Equal(t, reconcile.ReasonProgramNotFound, d.Reason)
		assert.Nil(t, d.ProgramID)
	})

	t.Run("unknown schedule is reported with the program resolved", func(t *testing.T) {
		rows := []reconcile.Row{{
			Name:      "Siti Rahayu",
			Program:   "Training CMA",
			StartDate: "15 Juni 2024",
		}}
		decisions := r.Reconcile(rows, snap)
		require.Len(t, decisions, 1)

		d := decisions[0]
		assert.Equal(t, reconcile.StatusNotFound, d.Status)
		assert.Equal(t, reconcile.ReasonScheduleNotFound, d.Reason)
		require.NotNil(t, d.ProgramID)
		assert.Equal(t, 5, *d.ProgramID)
		assert.Nil(t, d.ScheduleID)
	})

	t.Run("duplicate participant is skipped case-insensitively", func(t *testing.T) {
		rows := []reconcile.Row{{
			Name:      "BUDI SANTOSO",
			Program:   "Training CMA",
			StartDate: "31 Desember 2024",
		}}
		decisions := r.Reconcile(rows, snap)
		require.Len(t, decisions, 1)

		d := decisions[0]
		assert.Equal(t, reconcile.StatusSkipped, d.Status)
		assert.Equal(t, reconcile.ReasonDuplicateParticipant, d.Reason)
		assert.False(t, d.Insertable())
	})

	t.Run("unparseable issue date still inserts", func(t *testing.T) {
		rows := []reconcile.Row{{
			Name:            "Siti Rahayu",
			Program:         "Training CMA",
			StartDate:       "31 Desember 2024",
			CertificateDate: "segera",
			Note:            "/CERT/XII/2024",
		}}
		decisions := r.Reconcile(rows, snap)
		require.Len(t, decisions, 1)

		d := decisions[0]
		assert.Equal(t, reconcile.StatusToInsert, d.Status)
		assert.True(t, d.IssuedAt.IsZero())
	})
}

func TestParticipantReconcilerCertificateRef(t *testing.T) {
	r := reconcile.NewParticipantReconciler(nil)
	snap := participantSnapshot()

	tests := []struct {
		name   string
		serial string
		note   string
		want   string
	}{
		{name: "serial and note concatenate", serial: "021", note: "/CERT/XII/2024", want: "021/CERT/XII/2024"},
		{name: "note alone", serial: "", note: "/CERT/XII/2024", want: "/CERT/XII/2024"},
		{name: "serial alone", serial: "021", note: "", want: "021"},
		{name: "neither present", serial: "", note: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := []reconcile.Row{{
				Name:      "Siti Rahayu",
				Program:   "Training CMA",
				StartDate: "31 Desember 2024",
				Serial:    tt.serial,
				Note:      tt.note,
			}}
			decisions := r.Reconcile(rows, snap)
			require.Len(t, decisions, 1)
			assert.Equal(t, tt.want, decisions[0].CertificateRef)
		})
	}
}

// A row inserted by a previous run must flip to Skipped once the
// snapshot reflects that insert. This is what makes repeated runs of
// the same export safe.
func TestParticipantReconcilerRerunIdempotence(t *testing.T) {
	r := reconcile.NewParticipantReconciler(nil)
	rows := []reconcile.Row{{
		Name:      "Siti Rahayu",
		Program:   "Training CMA",
		StartDate: "31 Desember 2024",
	}}

	first := r.Reconcile(rows, participantSnapshot())
	require.Len(t, first, 1)
	require.Equal(t, reconcile.StatusToInsert, first[0].Status)

	refreshed := reconcile.NewSnapshot(reconcile.SnapshotData{
		Programs: map[string]reconcile.ProgramRef{
			"training cma": {ID: 5, CategoryID: 2},
		},
		ScheduleIDs: map[reconcile.ScheduleKey]int{
			{ProgramID: 5, StartDate: "2024-12-31"}: 77,
		},
		ParticipantKeys: map[reconcile.ParticipantKey]struct{}{
			{ScheduleID: 77, Name: "budi santoso"}: {},
			{ScheduleID: 77, Name: "siti rahayu"}:  {},
		},
	})

	second := r.Reconcile(rows, refreshed)
	require.Len(t, second, 1)
	assert.Equal(t, reconcile.StatusSkipped, second[0].Status)
	assert.Equal(t, reconcile.ReasonDuplicateParticipant, second[0].Reason)
}

func TestParticipantTotals(t *testing.T) {
	r := reconcile.NewParticipantReconciler(nil)
	rows := []reconcile.Row{
		{Name: "Siti Rahayu", Program: "Training CMA", StartDate: "31 Desember 2024"},
		{Name: "Budi Santoso", Program: "Training CMA", StartDate: "31 Desember 2024"},
		{Name: "Andi Wijaya", Program: "Training CMA", StartDate: "31 Bulananeh 2024"},
		{Name: "Dewi Lestari", Program: "Pelatihan Misterius", StartDate: "31 Desember 2024"},
		{Name: "Rina Kusuma", Program: "Training CMA", StartDate: "15 Juni 2024"},
	}

	totals := reconcile.ParticipantTotals(r.Reconcile(rows, participantSnapshot()))
	assert.Equal(t, 5, totals.Processed)
	assert.Equal(t, 1, totals.ToInsert)
	assert.Equal(t, 2, totals.Skipped)
	assert.Equal(t, 2, totals.NotFound)
	assert.True(t, totals.HasInserts())
	assert.Equal(t, "5 processed, 1 to insert, 2 skipped, 2 not found", totals.Summary())
}
