package dump

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/fairsched/model/proc"
)

func TestFormat(t *testing.T) {
	p := proc.Process{PID: 2, Parent: 1, State: proc.StateRunnable, Nice: -20, Weight: 88761, Timeslice: 100, VRuntime: 1.5}
	assert.Equal(t,
		"pid: 2, parent: 1 state: RUNNABLE nice: -20 weight: 88761 timeslice: 100.000000 vruntime: 1.500000",
		Format(p))
	assert.Contains(t, Format(proc.Process{PID: 3, State: proc.StateEmbryo}), "state: EMBRYO")
}

func TestDiff(t *testing.T) {
	before := []string{"pid: 1", "pid: 2"}
	after := []string{"pid: 1", "pid: 2", "pid: 3"}

	patch, err := Diff(before, before, 0)
	assert.Nil(t, err)
	assert.Equal(t, "", patch)

	patch, err = Diff(before, after, 0)
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(patch, "--- before\n+++ after\n"))
	assert.Contains(t, patch, "+pid: 3\n")
	assert.NotContains(t, patch, "-pid: 2")
}

func TestUpload(t *testing.T) {
	fs := afs.New()
	ctx := context.Background()
	URL := filepath.Join(t.TempDir(), "procdump.txt")
	lines := Lines([]proc.Process{
		{PID: 1, State: proc.StateRunning},
		{PID: 2, Parent: 1, State: proc.StateRunnable, Weight: 1024},
	})
	assert.Nil(t, Upload(ctx, fs, URL, lines))
	data, err := fs.DownloadWithURL(ctx, URL)
	assert.Nil(t, err)
	assert.Equal(t, strings.Join(lines, "\n")+"\n", string(data))
}
