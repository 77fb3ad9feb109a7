package scheduler

import (
	"github.com/viant/fairsched/model/proc"
	"github.com/viant/fairsched/service/table"
	"github.com/viant/fairsched/service/weight"
)

// Decision describes the outcome of one selection.
type Decision struct {
	// Process is a snapshot of the selected process after dispatch.
	Process proc.Process
	// Preempted is the pid moved from RUNNING back to RUNNABLE, or 0.
	Preempted int
	// Idle is set when no RUNNABLE process other than the root exists and
	// the root was reselected.
	Idle bool
	// TotalWeight is the runnable weight the timeslices were computed from.
	TotalWeight int
}

// Service selects the next process to run by minimal vruntime.
type Service struct {
	calculator *weight.Calculator
}

// New creates a scheduler using calculator for timeslices.
func New(calculator *weight.Calculator) *Service {
	if calculator == nil {
		calculator = weight.New(weight.DefaultConfig())
	}
	return &Service{calculator: calculator}
}

// Calculator returns the weight calculator.
func (s *Service) Calculator() *weight.Calculator {
	return s.calculator
}

// Lowest returns the RUNNABLE non-root process with the smallest vruntime;
// ties go to the earliest slot. It returns nil when there is none.
func (s *Service) Lowest(aTable *table.Table) *proc.Process {
	var lowest *proc.Process
	aTable.Each(func(p *proc.Process) bool {
		if p.State != proc.StateRunnable || aTable.IsRoot(p) {
			return true
		}
		if lowest == nil || p.VRuntime < lowest.VRuntime {
			lowest = p
		}
		return true
	})
	return lowest
}

// Select preempts the running process, recomputes timeslices, dispatches the
// lowest vruntime process and charges it (1024/weight)*timeslice of vruntime.
func (s *Service) Select(aTable *table.Table) (*Decision, error) {
	root := aTable.Root()
	if root == nil {
		return nil, table.ErrNotInitialized
	}
	ret := &Decision{}
	if current := aTable.Current(); current != nil && current.State == proc.StateRunning {
		if err := current.TransitionTo(proc.StateRunnable); err != nil {
			return nil, err
		}
		ret.Preempted = current.PID
	}
	ret.TotalWeight = s.calculator.Recompute(aTable)

	next := s.Lowest(aTable)
	if next == nil {
		ret.Idle = true
		if root.CanTransition(proc.StateRunning) {
			_ = root.TransitionTo(proc.StateRunning)
		}
		if root.State == proc.StateRunning {
			aTable.SetCurrent(root)
		} else {
			aTable.SetCurrent(nil)
		}
		if ret.Preempted == root.PID {
			ret.Preempted = 0
		}
		ret.Process = root.Clone()
		return ret, nil
	}

	next.VRuntime += weight.VRuntimeDelta(next.Weight, next.Timeslice)
	if err := next.TransitionTo(proc.StateRunning); err != nil {
		return nil, err
	}
	aTable.SetCurrent(next)
	if ret.Preempted == next.PID {
		ret.Preempted = 0
	}
	ret.Process = next.Clone()
	return ret, nil
}
