package participants_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rostersync"
	"github.com/agentstation/rostersync/cmd/rostersync/cmd/participants"
	"github.com/agentstation/rostersync/internal/appcontext"
	"github.com/agentstation/rostersync/internal/store"
	"github.com/agentstation/rostersync/pkg/reconcile"
	"github.com/agentstation/rostersync/pkg/refdata"
)

func testStore() *store.Mock {
	return &store.Mock{
		ProgramsValue: map[string]reconcile.ProgramRef{
			"training cma batch 9": {ID: 5, CategoryID: 2},
		},
		ScheduleIDsValue: map[reconcile.ScheduleKey]int{
			{ProgramID: 5, StartDate: "2024-12-31"}: 77,
		},
	}
}

func newMockApp(st *store.Mock, input string) *appcontext.Mock {
	return &appcontext.Mock{
		ClientFunc: func(_ context.Context, opts ...rostersync.Option) (rostersync.Client, error) {
			base := []rostersync.Option{
				rostersync.WithStore(st),
				rostersync.WithRefData(&refdata.Set{}),
				rostersync.WithRunID("cmd-test"),
			}
			return rostersync.New(append(base, opts...)...)
		},
		OutputFormatFunc: func() string { return "json" },
		InputFileFunc:    func() string { return input },
	}
}

func writeExport(t *testing.T, rows ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.csv")
	content := "No,Nama,Program,Tanggal Mulai,ket,Tanggal Sertifikat\n"
	for _, row := range rows {
		content += row + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCommandDryRunRendersReport(t *testing.T) {
	export := writeExport(t,
		"1,Siti Rahayu,Training CMA Batch 9,31 Desember 2024,CERT-10,2 Januari 2025")

	cmd := participants.NewCommand(newMockApp(testStore(), ""))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--input", export, "--dry-run"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), `"name": "Siti Rahayu"`)
	assert.Contains(t, buf.String(), `"status": "To Be Inserted"`)
}

func TestCommandWritesScript(t *testing.T) {
	export := writeExport(t,
		"1,Siti Rahayu,Training CMA Batch 9,31 Desember 2024,CERT-10,2 Januari 2025")
	outDir := t.TempDir()

	cmd := participants.NewCommand(newMockApp(testStore(), export))
	cmd.SetArgs([]string{"--out", outDir})

	require.NoError(t, cmd.Execute())

	written, err := os.ReadFile(filepath.Join(outDir, "insert_participants.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(written), "INSERT INTO participants")
	assert.Contains(t, string(written), "'Siti Rahayu'")
}
