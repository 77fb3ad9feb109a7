package event

import (
	"time"

	"github.com/viant/fairsched/model/proc"
)

// Kind identifies a lifecycle change.
type Kind string

const (
	KindForked     Kind = "forked"
	KindExited     Kind = "exited"
	KindAbandoned  Kind = "abandoned"
	KindReaped     Kind = "reaped"
	KindSlept      Kind = "slept"
	KindWoken      Kind = "woken"
	KindKilled     Kind = "killed"
	KindReniced    Kind = "reniced"
	KindDispatched Kind = "dispatched"
	KindPreempted  Kind = "preempted"
	KindIdle       Kind = "idle"
)

// Event records one process state change.
type Event struct {
	ID        string     `json:"id"`
	BootID    string     `json:"bootId"`
	Kind      Kind       `json:"kind"`
	PID       int        `json:"pid"`
	Parent    int        `json:"parent,omitempty"`
	From      proc.State `json:"from"`
	To        proc.State `json:"to"`
	Chan      int        `json:"chan,omitempty"`
	Nice      int        `json:"nice"`
	VRuntime  float64    `json:"vruntime"`
	CreatedAt time.Time  `json:"createdAt"`
}

// New creates an event describing p after it moved from the given state.
func New(kind Kind, p *proc.Process, from proc.State) *Event {
	return &Event{
		Kind:     kind,
		PID:      p.PID,
		Parent:   p.Parent,
		From:     from,
		To:       p.State,
		Chan:     p.Chan,
		Nice:     p.Nice,
		VRuntime: p.VRuntime,
	}
}
