package kernel

import (
	"context"
	"fmt"

	"github.com/viant/fairsched/model/proc"
	"github.com/viant/fairsched/service/event"
	"github.com/viant/fairsched/service/weight"
	"github.com/viant/fairsched/stats"
	"github.com/viant/fairsched/tracing"
)

// Fork creates a RUNNABLE child of parentPID with nice 0 and returns its pid.
func (s *Service) Fork(ctx context.Context, parentPID int) (pid int, err error) {
	ctx, span := tracing.StartSpan(ctx, "kernel.fork", "")
	span.WithInt("parent", parentPID)
	defer func() { tracing.EndSpan(span, err) }()

	s.locker.Lock()
	defer s.locker.Unlock()
	if err = s.ensureInitialized(); err != nil {
		return 0, err
	}
	parent, err := s.table.Find(parentPID)
	if err != nil {
		return 0, err
	}
	child, err := s.table.Allocate()
	if err != nil {
		s.logger.Warn("fork failed", "parent", parentPID, "error", err)
		return 0, err
	}

	child.Size = parent.Size
	child.Parent = parent.PID
	child.Nice = 0
	child.Weight = 0
	child.Timeslice = 0
	child.VRuntime = 0
	child.Cwd = parent.Cwd
	child.Name = parent.Name
	if err = child.TransitionTo(proc.StateRunnable); err != nil {
		return 0, err
	}
	child.Weight = weight.Of(child.Nice)
	s.recompute()

	span.WithInt("pid", child.PID)
	s.logger.Debug("forked", "pid", child.PID, "parent", parent.PID)
	s.publish(ctx, event.KindForked, child, proc.StateEmbryo)
	s.stats.Update(stats.Delta{Forks: 1})
	return child.PID, nil
}

// Exit turns pid into a zombie. Sleepers on the parent's pid are woken and
// every child is handed to the root process as a zombie. The root process
// cannot exit.
func (s *Service) Exit(ctx context.Context, pid int) (err error) {
	ctx, span := tracing.StartSpan(ctx, "kernel.exit", "")
	span.WithInt("pid", pid)
	defer func() { tracing.EndSpan(span, err) }()

	s.locker.Lock()
	defer s.locker.Unlock()
	if err = s.ensureInitialized(); err != nil {
		return err
	}
	p, err := s.table.Find(pid)
	if err != nil {
		return err
	}
	root := s.table.Root()
	if p == root {
		s.logger.Warn("initproc exiting", "pid", pid)
		return fmt.Errorf("%w: %w", ErrPrecondition, ErrRootExit)
	}
	if !p.CanTransition(proc.StateZombie) {
		return fmt.Errorf("%w: %w: pid %d is %v", ErrPrecondition, proc.ErrInvalidTransition, pid, p.State)
	}

	woken := 0
	if p.Parent != 0 {
		woken = s.wakeup(ctx, p.Parent)
	}

	// Abandoned children become zombies owned by the root.
	abandoned := 0
	for _, child := range s.table.Children(p.PID) {
		from := child.State
		child.Parent = root.PID
		if child.State != proc.StateZombie {
			if err := child.TransitionTo(proc.StateZombie); err != nil {
				s.logger.Warn("child not abandoned", "pid", child.PID, "error", err)
				continue
			}
		}
		abandoned++
		s.publish(ctx, event.KindAbandoned, child, from)
	}

	from := p.State
	if err = p.TransitionTo(proc.StateZombie); err != nil {
		return err
	}
	if s.table.Current() == p {
		s.table.SetCurrent(nil)
	}
	s.recompute()

	s.logger.Debug("exited", "pid", pid, "abandoned", abandoned, "woken", woken)
	s.publish(ctx, event.KindExited, p, from)
	s.stats.Update(stats.Delta{Exits: 1, Abandoned: abandoned, Wakeups: woken})
	return nil
}

// Wait reaps one zombie child of pid and returns its pid. When children
// exist but none has exited the caller is put to sleep on its own pid and
// ErrStillRunning is returned; the caller must call Wait again after wake up.
func (s *Service) Wait(ctx context.Context, pid int) (reaped int, err error) {
	ctx, span := tracing.StartSpan(ctx, "kernel.wait", "")
	span.WithInt("pid", pid)
	defer func() { tracing.EndSpan(span, err) }()

	s.locker.Lock()
	defer s.locker.Unlock()
	if err = s.ensureInitialized(); err != nil {
		return 0, err
	}
	caller, err := s.table.Find(pid)
	if err != nil {
		return 0, err
	}

	children := s.table.Children(caller.PID)
	for _, child := range children {
		if child.State != proc.StateZombie {
			continue
		}
		snapshot := child.Clone()
		for _, orphan := range s.table.Children(child.PID) {
			orphan.Parent = s.table.Root().PID
		}
		if err = s.table.Release(child.PID); err != nil {
			return 0, err
		}
		s.recompute()

		span.WithInt("reaped", snapshot.PID)
		s.logger.Debug("reaped", "pid", snapshot.PID, "parent", caller.PID)
		s.publish(ctx, event.KindReaped, &proc.Process{PID: snapshot.PID, Parent: snapshot.Parent, State: proc.StateUnused, VRuntime: snapshot.VRuntime}, proc.StateZombie)
		s.stats.Update(stats.Delta{Reaps: 1})
		return snapshot.PID, nil
	}

	if len(children) == 0 || caller.Killed {
		return 0, fmt.Errorf("%w: %w: pid %d", ErrPrecondition, ErrNoChildren, pid)
	}

	if caller.State == proc.StateSleeping || caller.CanTransition(proc.StateSleeping) {
		from := caller.State
		caller.State = proc.StateSleeping
		caller.Chan = caller.PID
		if s.table.Current() == caller {
			s.table.SetCurrent(nil)
		}
		s.recompute()
		s.publish(ctx, event.KindSlept, caller, from)
		s.stats.Update(stats.Delta{Sleeps: 1})
	}
	return 0, ErrStillRunning
}

// Sleep puts pid to sleep on channel and returns pid.
func (s *Service) Sleep(ctx context.Context, pid, channel int) (ret int, err error) {
	ctx, span := tracing.StartSpan(ctx, "kernel.sleep", "")
	span.WithInt("pid", pid).WithInt("chan", channel)
	defer func() { tracing.EndSpan(span, err) }()

	s.locker.Lock()
	defer s.locker.Unlock()
	if err = s.ensureInitialized(); err != nil {
		return 0, err
	}
	p, err := s.table.Find(pid)
	if err != nil {
		return 0, err
	}
	if p.State != proc.StateSleeping && !p.CanTransition(proc.StateSleeping) {
		return 0, fmt.Errorf("%w: %w: pid %d is %v", ErrPrecondition, proc.ErrInvalidTransition, pid, p.State)
	}
	from := p.State
	p.State = proc.StateSleeping
	p.Chan = channel
	if s.table.Current() == p {
		s.table.SetCurrent(nil)
	}
	s.recompute()

	s.logger.Debug("sleeping", "pid", pid, "chan", channel)
	s.publish(ctx, event.KindSlept, p, from)
	s.stats.Update(stats.Delta{Sleeps: 1})
	return pid, nil
}

// Wake makes every process sleeping on channel RUNNABLE and returns how many woke.
func (s *Service) Wake(ctx context.Context, channel int) int {
	ctx, span := tracing.StartSpan(ctx, "kernel.wake", "")
	span.WithInt("chan", channel)
	defer tracing.EndSpan(span, nil)

	s.locker.Lock()
	defer s.locker.Unlock()
	woken := s.wakeup(ctx, channel)
	if woken > 0 {
		s.recompute()
		s.stats.Update(stats.Delta{Wakeups: woken})
	}
	return woken
}

// wakeup requires the table lock.
func (s *Service) wakeup(ctx context.Context, channel int) int {
	woken := 0
	for _, p := range s.table.Active() {
		if p.State != proc.StateSleeping || p.Chan != channel {
			continue
		}
		if err := p.TransitionTo(proc.StateRunnable); err != nil {
			continue
		}
		p.Chan = 0
		woken++
		s.publish(ctx, event.KindWoken, p, proc.StateSleeping)
	}
	return woken
}

// Kill marks pid as killed; a sleeping target is made RUNNABLE so that it
// can observe the flag.
func (s *Service) Kill(ctx context.Context, pid int) (err error) {
	ctx, span := tracing.StartSpan(ctx, "kernel.kill", "")
	span.WithInt("pid", pid)
	defer func() { tracing.EndSpan(span, err) }()

	s.locker.Lock()
	defer s.locker.Unlock()
	if err = s.ensureInitialized(); err != nil {
		return err
	}
	p, err := s.table.Find(pid)
	if err != nil {
		return err
	}
	from := p.State
	p.Killed = true
	if p.State == proc.StateSleeping {
		_ = p.TransitionTo(proc.StateRunnable)
		p.Chan = 0
	}
	s.recompute()

	s.logger.Debug("killed", "pid", pid, "from", from)
	s.publish(ctx, event.KindKilled, p, from)
	s.stats.Update(stats.Delta{Kills: 1})
	return nil
}
