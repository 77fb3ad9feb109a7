package proc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_String(t *testing.T) {
	testCases := []struct {
		state    State
		expected string
	}{
		{state: StateUnused, expected: "UNUSED"},
		{state: StateEmbryo, expected: "EMBRYO"},
		{state: StateSleeping, expected: "SLEEPING"},
		{state: StateRunnable, expected: "RUNNABLE"},
		{state: StateRunning, expected: "RUNNING"},
		{state: StateZombie, expected: "ZOMBIE"},
		{state: State(42), expected: "State(42)"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.state.String())
		})
	}
}

func TestParseState(t *testing.T) {
	state, err := ParseState("runnable")
	assert.NoError(t, err)
	assert.Equal(t, StateRunnable, state)

	_, err = ParseState("stopped")
	assert.Error(t, err)
}

func TestIsValidTransition(t *testing.T) {
	testCases := []struct {
		name     string
		from, to State
		expected bool
	}{
		{name: "allocate", from: StateUnused, to: StateEmbryo, expected: true},
		{name: "fork", from: StateEmbryo, to: StateRunnable, expected: true},
		{name: "root init", from: StateEmbryo, to: StateRunning, expected: true},
		{name: "dispatch", from: StateRunnable, to: StateRunning, expected: true},
		{name: "preempt", from: StateRunning, to: StateRunnable, expected: true},
		{name: "sleep runnable", from: StateRunnable, to: StateSleeping, expected: true},
		{name: "wake", from: StateSleeping, to: StateRunnable, expected: true},
		{name: "exit sleeping", from: StateSleeping, to: StateZombie, expected: true},
		{name: "reap", from: StateZombie, to: StateUnused, expected: true},
		{name: "sleeping cannot run", from: StateSleeping, to: StateRunning, expected: false},
		{name: "zombie cannot run", from: StateZombie, to: StateRunnable, expected: false},
		{name: "unused cannot die", from: StateUnused, to: StateZombie, expected: false},
		{name: "embryo cannot exit", from: StateEmbryo, to: StateZombie, expected: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsValidTransition(tc.from, tc.to))
		})
	}
}

func TestProcess_TransitionTo(t *testing.T) {
	p := &Process{PID: 3, State: StateSleeping}
	err := p.TransitionTo(StateRunning)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, StateSleeping, p.State)

	assert.NoError(t, p.TransitionTo(StateRunnable))
	assert.Equal(t, StateRunnable, p.State)
}

func TestProcess_Clone(t *testing.T) {
	p := &Process{PID: 2, Name: "sh", Context: &Context{}}
	DefaultContextInitializer(p.Context)

	clone := p.Clone()
	clone.Context.PC = "elsewhere"
	clone.Name = "changed"

	assert.Equal(t, EntryForkRet, p.Context.PC)
	assert.Equal(t, "sh", p.Name)
}

func TestProcess_Reset(t *testing.T) {
	p := &Process{PID: 7, Parent: 1, State: StateZombie, Nice: 3, Weight: 526, VRuntime: 12.5, Killed: true, Context: &Context{}}
	p.Reset()
	assert.Equal(t, Process{}, *p)
	assert.False(t, p.IsActive())
}
