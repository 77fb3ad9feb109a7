// Package stats keeps aggregated scheduling counters for one kernel instance.
// The kernel applies a Delta after every lifecycle operation; an optional
// callback observes every change.
package stats

import (
	"sync"
	"time"
)

// Delta represents an incremental counter change.
type Delta struct {
	Forks      int
	Exits      int
	Abandoned  int
	Reaps      int
	Sleeps     int
	Wakeups    int
	Kills      int
	Renices    int
	Dispatches int
	Preempts   int
	Idle       int
}

// Counters is a point-in-time copy of the aggregated counters.
type Counters struct {
	BootID    string
	StartedAt time.Time

	Forks      int
	Exits      int
	Abandoned  int
	Reaps      int
	Sleeps     int
	Wakeups    int
	Kills      int
	Renices    int
	Dispatches int
	Preempts   int
	Idle       int
}

// Tracker keeps aggregated counters. It is safe for concurrent use.
type Tracker struct {
	counters Counters
	mux      sync.Mutex
	onChange func(Counters)
}

// New creates a tracker for a boot.
func New(bootID string, startedAt time.Time) *Tracker {
	return &Tracker{counters: Counters{BootID: bootID, StartedAt: startedAt}}
}

// Update applies the supplied delta. The onChange callback, if any, receives
// a copy outside the critical section.
func (t *Tracker) Update(d Delta) {
	if t == nil {
		return
	}
	t.mux.Lock()
	c := &t.counters
	c.Forks += d.Forks
	c.Exits += d.Exits
	c.Abandoned += d.Abandoned
	c.Reaps += d.Reaps
	c.Sleeps += d.Sleeps
	c.Wakeups += d.Wakeups
	c.Kills += d.Kills
	c.Renices += d.Renices
	c.Dispatches += d.Dispatches
	c.Preempts += d.Preempts
	c.Idle += d.Idle
	snapshot := t.counters
	cb := t.onChange
	t.mux.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the counters.
func (t *Tracker) Snapshot() Counters {
	if t == nil {
		return Counters{}
	}
	t.mux.Lock()
	defer t.mux.Unlock()
	return t.counters
}

// OnChange registers a callback invoked after every Update; nil disables it.
func (t *Tracker) OnChange(cb func(Counters)) {
	if t == nil {
		return
	}
	t.mux.Lock()
	t.onChange = cb
	t.mux.Unlock()
}
