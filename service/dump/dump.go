// Package dump renders the process table in the console listing format and
// compares two listings.
package dump

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/fairsched/model/proc"
)

// Format renders one process line.
func Format(p proc.Process) string {
	return fmt.Sprintf("pid: %d, parent: %d state: %s nice: %d weight: %d timeslice: %f vruntime: %f",
		p.PID, p.Parent, p.State, p.Nice, p.Weight, p.Timeslice, p.VRuntime)
}

// Lines renders every process in order.
func Lines(processes []proc.Process) []string {
	ret := make([]string, 0, len(processes))
	for _, p := range processes {
		ret = append(ret, Format(p))
	}
	return ret
}

// Diff returns a unified diff between two listings, or an empty string when
// they are equal.
func Diff(before, after []string, contextLines int) (string, error) {
	if contextLines <= 0 {
		contextLines = 1
	}
	oldContent := join(before)
	newContent := join(after)
	if oldContent == newContent {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldContent),
		B:        difflib.SplitLines(newContent),
		FromFile: "before",
		ToFile:   "after",
		Context:  contextLines,
	}
	return difflib.GetUnifiedDiffString(ud)
}

// Upload writes the listing to URL, any scheme supported by afs.
func Upload(ctx context.Context, fs afs.Service, URL string, lines []string) error {
	if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader([]byte(join(lines)))); err != nil {
		return fmt.Errorf("dump: failed to upload %s: %w", URL, err)
	}
	return nil
}

func join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
