package proc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTransition is returned when a process is asked to move to a state
// it cannot reach from its current one.
var ErrInvalidTransition = errors.New("proc: invalid state transition")

// State represents the life-cycle state of a process slot.
type State int

// Process state constants
const (
	StateUnused State = iota
	StateEmbryo
	StateSleeping
	StateRunnable
	StateRunning
	StateZombie
)

var stateNames = [...]string{"UNUSED", "EMBRYO", "SLEEPING", "RUNNABLE", "RUNNING", "ZOMBIE"}

// String returns the upper case state name used by the process dump.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// ParseState converts a state name (case insensitive) into a State.
func ParseState(name string) (State, error) {
	for i, candidate := range stateNames {
		if strings.EqualFold(candidate, name) {
			return State(i), nil
		}
	}
	return StateUnused, fmt.Errorf("proc: unknown state %q", name)
}

// Transition represents a legal state change.
type Transition struct {
	From State
	To   State
}

// ValidTransitions lists every legal state change.
var ValidTransitions = []Transition{
	// allocate
	{From: StateUnused, To: StateEmbryo},
	// fork completes
	{From: StateEmbryo, To: StateRunnable},
	// root init
	{From: StateEmbryo, To: StateRunning},
	// dispatch
	{From: StateRunnable, To: StateRunning},
	// preempt
	{From: StateRunning, To: StateRunnable},
	// sleep
	{From: StateRunning, To: StateSleeping},
	{From: StateRunnable, To: StateSleeping},
	// wake or kill
	{From: StateSleeping, To: StateRunnable},
	// exit
	{From: StateRunning, To: StateZombie},
	{From: StateRunnable, To: StateZombie},
	{From: StateSleeping, To: StateZombie},
	// reap
	{From: StateZombie, To: StateUnused},
}

// IsValidTransition checks if a state transition is legal.
func IsValidTransition(from, to State) bool {
	for _, t := range ValidTransitions {
		if t.From == from && t.To == to {
			return true
		}
	}
	return false
}
