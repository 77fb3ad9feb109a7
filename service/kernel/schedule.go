package kernel

import (
	"context"

	"github.com/viant/fairsched/model/proc"
	"github.com/viant/fairsched/service/event"
	"github.com/viant/fairsched/service/scheduler"
	"github.com/viant/fairsched/stats"
	"github.com/viant/fairsched/tracing"
)

// Schedule runs one scheduling round: the running process is preempted and
// the RUNNABLE process with the lowest vruntime is dispatched. When nothing
// but the root can run the decision is marked Idle.
func (s *Service) Schedule(ctx context.Context) (decision *scheduler.Decision, err error) {
	ctx, span := tracing.StartSpan(ctx, "kernel.schedule", "")
	defer func() { tracing.EndSpan(span, err) }()

	s.locker.Lock()
	defer s.locker.Unlock()
	if err = s.ensureInitialized(); err != nil {
		return nil, err
	}
	decision, err = s.scheduler.Select(s.table)
	if err != nil {
		return nil, err
	}

	delta := stats.Delta{}
	if decision.Preempted != 0 {
		if preempted, err := s.table.Find(decision.Preempted); err == nil {
			s.publish(ctx, event.KindPreempted, preempted, proc.StateRunning)
		}
		delta.Preempts++
	}
	selected := decision.Process
	span.WithInt("pid", selected.PID).WithInt("totalWeight", decision.TotalWeight)
	if decision.Idle {
		delta.Idle++
		s.logger.Debug("idle", "root", selected.PID, "state", selected.State)
		s.publish(ctx, event.KindIdle, &selected, selected.State)
	} else {
		delta.Dispatches++
		s.logger.Debug("dispatched", "pid", selected.PID, "vruntime", selected.VRuntime, "timeslice", selected.Timeslice)
		s.publish(ctx, event.KindDispatched, &selected, proc.StateRunnable)
	}
	s.stats.Update(delta)
	return decision, nil
}
