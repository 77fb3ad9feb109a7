// Package lock provides the process table lock abstraction. A single-threaded
// kernel uses the no-op implementation; a table shared across goroutines uses
// a real mutex. The choice is made by configuration.
package lock

import (
	"fmt"
	"sync"
)

// Kind names a Locker implementation.
type Kind string

const (
	// KindNone selects the no-op lock.
	KindNone Kind = "none"
	// KindMutex selects a sync.Mutex backed lock.
	KindMutex Kind = "mutex"
)

// Locker guards multi-entry scans of the process table.
type Locker interface {
	Lock()
	Unlock()
}

// Nop is a Locker that does nothing.
type Nop struct{}

func (Nop) Lock()   {}
func (Nop) Unlock() {}

// New returns the Locker for kind; an empty kind means KindNone.
func New(kind Kind) (Locker, error) {
	switch kind {
	case "", KindNone:
		return Nop{}, nil
	case KindMutex:
		return &sync.Mutex{}, nil
	}
	return nil, fmt.Errorf("lock: unsupported kind %q", kind)
}
