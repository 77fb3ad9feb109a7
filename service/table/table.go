package table

import (
	"fmt"

	"github.com/viant/fairsched/model/proc"
)

// DefaultCapacity is the default number of process slots (NPROC).
const DefaultCapacity = 64

// RootPID is the pid of the ancestor of all processes.
const RootPID = 1

// Option configures a Table.
type Option func(t *Table)

// WithContextInitializer sets the continuation initializer applied on allocation.
func WithContextInitializer(initializer proc.ContextInitializer) Option {
	return func(t *Table) {
		if initializer != nil {
			t.initContext = initializer
		}
	}
}

// Table is a fixed-capacity process table. It is not safe for concurrent use;
// the owner is expected to serialise access.
type Table struct {
	slots       []proc.Process
	nextPID     int
	root        *proc.Process
	current     *proc.Process
	initContext proc.ContextInitializer
}

// New creates a table with capacity slots, all UNUSED.
func New(capacity int, options ...Option) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	ret := &Table{
		slots:       make([]proc.Process, capacity),
		nextPID:     RootPID,
		initContext: proc.DefaultContextInitializer,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Capacity returns the number of slots.
func (t *Table) Capacity() int {
	return len(t.slots)
}

// NextPID returns the pid the next allocation will receive.
func (t *Table) NextPID() int {
	return t.nextPID
}

// Find returns the active process with the given pid.
func (t *Table) Find(pid int) (*proc.Process, error) {
	if pid > 0 {
		for i := range t.slots {
			if t.slots[i].PID == pid {
				return &t.slots[i], nil
			}
		}
	}
	return nil, fmt.Errorf("%w: pid %d", ErrNotFound, pid)
}

// Allocate claims the first UNUSED slot, assigns the next pid and moves it to EMBRYO.
func (t *Table) Allocate() (*proc.Process, error) {
	for i := range t.slots {
		p := &t.slots[i]
		if p.State != proc.StateUnused {
			continue
		}
		if err := p.TransitionTo(proc.StateEmbryo); err != nil {
			return nil, err
		}
		p.PID = t.nextPID
		t.nextPID++
		p.Context = &proc.Context{}
		t.initContext(p.Context)
		return p, nil
	}
	return nil, ErrExhausted
}

// InitializeRoot allocates the root process and makes it the running process.
func (t *Table) InitializeRoot() (*proc.Process, error) {
	if t.root != nil {
		return nil, ErrAlreadyInitialized
	}
	p, err := t.Allocate()
	if err != nil {
		return nil, err
	}
	p.Size = proc.PageSize
	p.Cwd = "/"
	p.Name = "userinit"
	if err = p.TransitionTo(proc.StateRunning); err != nil {
		return nil, err
	}
	t.root = p
	t.current = p
	return p, nil
}

// Root returns the root process or nil before initialization.
func (t *Table) Root() *proc.Process {
	return t.root
}

// IsRoot reports whether p is the root process.
func (t *Table) IsRoot(p *proc.Process) bool {
	return t.root != nil && p == t.root
}

// Current returns the currently running process, if any.
func (t *Table) Current() *proc.Process {
	return t.current
}

// SetCurrent designates the currently running process.
func (t *Table) SetCurrent(p *proc.Process) {
	t.current = p
}

// Release returns a zombie slot to UNUSED, clearing every field.
func (t *Table) Release(pid int) error {
	p, err := t.Find(pid)
	if err != nil {
		return err
	}
	if p.State != proc.StateZombie {
		return fmt.Errorf("%w: pid %d is %v", ErrNotZombie, pid, p.State)
	}
	if len(t.Children(pid)) > 0 {
		return fmt.Errorf("%w: pid %d", ErrHasChildren, pid)
	}
	if err = p.TransitionTo(proc.StateUnused); err != nil {
		return err
	}
	if t.current == p {
		t.current = nil
	}
	p.Reset()
	return nil
}

// Children returns the active children of pid in table order.
func (t *Table) Children(pid int) []*proc.Process {
	var ret []*proc.Process
	for i := range t.slots {
		p := &t.slots[i]
		if p.IsActive() && p.Parent == pid {
			ret = append(ret, p)
		}
	}
	return ret
}

// Each calls fn for every slot in table order, including UNUSED ones,
// until fn returns false.
func (t *Table) Each(fn func(p *proc.Process) bool) {
	for i := range t.slots {
		if !fn(&t.slots[i]) {
			return
		}
	}
}

// Active returns the active processes in table order.
func (t *Table) Active() []*proc.Process {
	var ret []*proc.Process
	for i := range t.slots {
		if t.slots[i].IsActive() {
			ret = append(ret, &t.slots[i])
		}
	}
	return ret
}
