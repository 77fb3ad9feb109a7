package proc

import "fmt"

// PageSize is the memory size assigned to the root process.
const PageSize = 4096

// Entry points used by the default continuation initializer.
const (
	EntryForkRet = "forkret"
	EntryTrapRet = "trapret"
)

// Context is the execution continuation record of a process. Its content is
// owned by the context switch mechanism; the scheduler only requires that a
// fresh, zeroed record exists for every allocated process.
type Context struct {
	PC string `json:"pc,omitempty"`
	LR string `json:"lr,omitempty"`
}

// ContextInitializer prepares a freshly zeroed continuation record.
type ContextInitializer func(ctx *Context)

// DefaultContextInitializer points a new process at forkret/trapret.
func DefaultContextInitializer(ctx *Context) {
	ctx.PC = EntryForkRet
	ctx.LR = EntryTrapRet
}

// Process is a process control block.
type Process struct {
	PID       int      `json:"pid"`
	Parent    int      `json:"parent,omitempty"`
	State     State    `json:"state"`
	Nice      int      `json:"nice"`
	Weight    int      `json:"weight"`
	VRuntime  float64  `json:"vruntime"`
	Timeslice float64  `json:"timeslice"`
	Chan      int      `json:"chan,omitempty"`
	Killed    bool     `json:"killed,omitempty"`
	Size      int      `json:"size"`
	Cwd       string   `json:"cwd"`
	Name      string   `json:"name"`
	Context   *Context `json:"context,omitempty"`
}

// IsActive returns true when the slot holds a process.
func (p *Process) IsActive() bool {
	return p.State != StateUnused
}

// CanTransition checks if the process can move to the given state.
func (p *Process) CanTransition(to State) bool {
	return IsValidTransition(p.State, to)
}

// TransitionTo moves the process to a new state when the move is legal.
func (p *Process) TransitionTo(to State) error {
	if !IsValidTransition(p.State, to) {
		return fmt.Errorf("%w: pid %d %v -> %v", ErrInvalidTransition, p.PID, p.State, to)
	}
	p.State = to
	return nil
}

// Reset clears every field, returning the slot to its unused defaults.
func (p *Process) Reset() {
	*p = Process{}
}

// Clone returns a detached copy that shares no memory with the receiver.
func (p *Process) Clone() Process {
	ret := *p
	if p.Context != nil {
		aContext := *p.Context
		ret.Context = &aContext
	}
	return ret
}
