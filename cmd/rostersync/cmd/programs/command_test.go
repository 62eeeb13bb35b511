package programs_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/rostersync"
	"github.com/agentstation/rostersync/cmd/rostersync/cmd/programs"
	"github.com/agentstation/rostersync/internal/appcontext"
	"github.com/agentstation/rostersync/internal/store"
	"github.com/agentstation/rostersync/pkg/refdata"
)

func newMockApp(set *refdata.Set, st *store.Mock) *appcontext.Mock {
	return &appcontext.Mock{
		ClientFunc: func(_ context.Context, opts ...rostersync.Option) (rostersync.Client, error) {
			base := []rostersync.Option{
				rostersync.WithStore(st),
				rostersync.WithRefData(set),
				rostersync.WithRunID("cmd-test"),
			}
			return rostersync.New(append(base, opts...)...)
		},
		OutputFormatFunc: func() string { return "json" },
	}
}

func TestCommandDryRunRendersReport(t *testing.T) {
	set := &refdata.Set{
		Categories:  []refdata.Category{{Name: "IT", ID: 5}},
		Rules:       []refdata.Rule{{Category: "IT", Keywords: []string{"excel"}}},
		NewPrograms: []string{"Training Microsoft Excel Level Basic"},
	}

	cmd := programs.NewCommand(newMockApp(set, &store.Mock{}))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--dry-run"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "Training Microsoft Excel Level Basic")
	assert.Contains(t, buf.String(), `"status": "New"`)
	assert.Contains(t, buf.String(), `"action": "Insert"`)
}

func TestCommandWritesScript(t *testing.T) {
	set := &refdata.Set{
		Categories:  []refdata.Category{{Name: "IT", ID: 5}},
		Rules:       []refdata.Rule{{Category: "IT", Keywords: []string{"excel"}}},
		NewPrograms: []string{"Training Microsoft Excel Level Basic"},
	}

	outDir := t.TempDir()
	cmd := programs.NewCommand(newMockApp(set, &store.Mock{}))
	cmd.SetArgs([]string{"--out", outDir})

	require.NoError(t, cmd.Execute())

	assert.FileExists(t, filepath.Join(outDir, "insert_programs.sql"))
}

func TestCommandUploadPublisherError(t *testing.T) {
	set := &refdata.Set{
		Categories: []refdata.Category{{Name: "IT", ID: 5}},
		Rules:      []refdata.Rule{{Category: "IT", Keywords: []string{"excel"}}},
	}

	app := newMockApp(set, &store.Mock{})
	app.PublisherFunc = func() (rostersync.Publisher, error) {
		return nil, assert.AnError
	}

	cmd := programs.NewCommand(app)
	cmd.SetArgs([]string{"--upload"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))

	require.ErrorIs(t, cmd.Execute(), assert.AnError)
}
