package table

import "errors"

// Common process table errors. Callers detect conditions via errors.Is.

var (
	// ErrNotFound is returned when no active slot carries the requested pid.
	ErrNotFound = errors.New("table: process not found")

	// ErrExhausted is returned when every slot is in use.
	ErrExhausted = errors.New("table: no free process slot")

	// ErrNotZombie is returned when releasing a slot that is not a zombie.
	ErrNotZombie = errors.New("table: process is not a zombie")

	// ErrHasChildren is returned when releasing a process that still owns children.
	ErrHasChildren = errors.New("table: process still has children")

	// ErrNotInitialized is returned when the root process has not been created.
	ErrNotInitialized = errors.New("table: root process not initialized")

	// ErrAlreadyInitialized is returned on a second root initialization.
	ErrAlreadyInitialized = errors.New("table: root process already initialized")
)
