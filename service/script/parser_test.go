package script

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

func TestParse(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      []*Command
		expectErr   error
	}{
		{
			description: "basic script",
			input:       "init\nfork 1\nnice 2 -20\n",
			expect: []*Command{
				{Name: NameInit, Line: 1},
				{Name: NameFork, Args: []int{1}, Line: 2},
				{Name: NameNice, Args: []int{2, -20}, Line: 3},
			},
		},
		{
			description: "comments blanks and alias",
			input:       "# boot\n\n  init   # root\n\tWAKE 3\r\nsleep 2 7",
			expect: []*Command{
				{Name: NameInit, Line: 3},
				{Name: NameWakeup, Args: []int{3}, Line: 4},
				{Name: NameSleep, Args: []int{2, 7}, Line: 5},
			},
		},
		{
			description: "empty",
			input:       "\n# nothing\n",
		},
		{
			description: "unknown command",
			input:       "init\nspawn 1\n",
			expectErr:   ErrUnknownCommand,
		},
		{
			description: "missing argument",
			input:       "sleep 2\n",
			expectErr:   ErrArguments,
		},
		{
			description: "extra argument",
			input:       "fork 1 2\n",
			expectErr:   ErrArguments,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := Parse(testCase.input)
			if testCase.expectErr != nil {
				assert.True(t, errors.Is(err, testCase.expectErr), err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestCommand_String(t *testing.T) {
	assert.Equal(t, "nice 2 -20", (&Command{Name: NameNice, Args: []int{2, -20}}).String())
	assert.Equal(t, "schedule", (&Command{Name: NameSchedule}).String())
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := filepath.Join(t.TempDir(), "lab.txt")
	assert.Nil(t, fs.Upload(ctx, URL, file.DefaultFileOsMode, strings.NewReader("init\nfork 1\n")))

	commands, err := Load(ctx, fs, URL)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(commands))

	_, err = Load(ctx, fs, filepath.Join(t.TempDir(), "missing.txt"))
	assert.NotNil(t, err)
}
