package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/fairsched/model/proc"
)

func TestTable_Allocate(t *testing.T) {
	aTable := New(3)
	assert.Equal(t, 3, aTable.Capacity())
	assert.Equal(t, 1, aTable.NextPID())

	for expectPID := 1; expectPID <= 3; expectPID++ {
		p, err := aTable.Allocate()
		assert.NoError(t, err)
		assert.Equal(t, expectPID, p.PID)
		assert.Equal(t, proc.StateEmbryo, p.State)
		if assert.NotNil(t, p.Context) {
			assert.Equal(t, proc.EntryForkRet, p.Context.PC)
			assert.Equal(t, proc.EntryTrapRet, p.Context.LR)
		}
	}

	_, err := aTable.Allocate()
	assert.True(t, errors.Is(err, ErrExhausted))
	assert.Equal(t, 4, aTable.NextPID())
}

func TestTable_Find(t *testing.T) {
	aTable := New(4)
	root, err := aTable.InitializeRoot()
	assert.NoError(t, err)

	found, err := aTable.Find(1)
	assert.NoError(t, err)
	assert.Same(t, root, found)

	testCases := []struct {
		name string
		pid  int
	}{
		{name: "unknown pid", pid: 9},
		{name: "sentinel pid", pid: 0},
		{name: "negative pid", pid: -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := aTable.Find(tc.pid)
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestTable_InitializeRoot(t *testing.T) {
	aTable := New(2)
	root, err := aTable.InitializeRoot()
	assert.NoError(t, err)
	assert.Equal(t, RootPID, root.PID)
	assert.Equal(t, proc.StateRunning, root.State)
	assert.Equal(t, proc.PageSize, root.Size)
	assert.Equal(t, "/", root.Cwd)
	assert.Equal(t, "userinit", root.Name)
	assert.Same(t, root, aTable.Root())
	assert.Same(t, root, aTable.Current())
	assert.True(t, aTable.IsRoot(root))

	_, err = aTable.InitializeRoot()
	assert.True(t, errors.Is(err, ErrAlreadyInitialized))
}

func TestTable_WithContextInitializer(t *testing.T) {
	aTable := New(1, WithContextInitializer(func(ctx *proc.Context) {
		ctx.PC = "entry"
	}))
	p, err := aTable.Allocate()
	assert.NoError(t, err)
	assert.Equal(t, "entry", p.Context.PC)
	assert.Equal(t, "", p.Context.LR)
}

func TestTable_Release(t *testing.T) {
	aTable := New(4)
	_, err := aTable.InitializeRoot()
	assert.NoError(t, err)

	child, err := aTable.Allocate()
	assert.NoError(t, err)
	child.Parent = RootPID
	assert.NoError(t, child.TransitionTo(proc.StateRunnable))

	err = aTable.Release(child.PID)
	assert.True(t, errors.Is(err, ErrNotZombie))

	grandChild, err := aTable.Allocate()
	assert.NoError(t, err)
	grandChild.Parent = child.PID

	assert.NoError(t, child.TransitionTo(proc.StateZombie))
	err = aTable.Release(child.PID)
	assert.True(t, errors.Is(err, ErrHasChildren))

	grandChild.Parent = RootPID
	assert.NoError(t, aTable.Release(child.PID))
	assert.Equal(t, proc.Process{}, *child)

	err = aTable.Release(child.PID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, 4, aTable.NextPID())
}

func TestTable_Children(t *testing.T) {
	aTable := New(5)
	_, _ = aTable.InitializeRoot()
	for i := 0; i < 3; i++ {
		p, err := aTable.Allocate()
		assert.NoError(t, err)
		p.Parent = RootPID
	}
	children := aTable.Children(RootPID)
	assert.Len(t, children, 3)
	assert.Equal(t, []int{2, 3, 4}, []int{children[0].PID, children[1].PID, children[2].PID})
	assert.Len(t, aTable.Active(), 4)

	visited := 0
	aTable.Each(func(p *proc.Process) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}
