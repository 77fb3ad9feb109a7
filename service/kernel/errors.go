package kernel

import (
	"errors"

	"github.com/viant/fairsched/service/table"
)

// Kernel errors. Table errors are re-exported so callers only need this package.

var (
	// ErrNotFound is returned when the referenced pid is not in the table.
	ErrNotFound = table.ErrNotFound

	// ErrExhausted is returned when fork finds no free slot.
	ErrExhausted = table.ErrExhausted

	// ErrNotInitialized is returned by every operation before Init.
	ErrNotInitialized = table.ErrNotInitialized

	// ErrAlreadyInitialized is returned by a second Init.
	ErrAlreadyInitialized = table.ErrAlreadyInitialized

	// ErrPrecondition wraps every refused operation that leaves the table untouched.
	ErrPrecondition = errors.New("kernel: precondition violation")

	// ErrRootExit is returned when the root process is asked to exit.
	ErrRootExit = errors.New("kernel: initproc exiting")

	// ErrNoChildren is returned by Wait when there is nothing to wait for or the caller was killed.
	ErrNoChildren = errors.New("kernel: no children")

	// ErrStillRunning is returned by Wait when children exist but none has exited;
	// the caller sleeps on its own pid and must call Wait again once woken.
	ErrStillRunning = errors.New("kernel: children still running")

	// ErrInvalidNice is returned by SetNice for values outside [-20, 20].
	ErrInvalidNice = errors.New("kernel: nice value out of range")
)
