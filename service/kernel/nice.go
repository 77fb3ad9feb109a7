package kernel

import (
	"context"
	"fmt"

	"github.com/viant/fairsched/service/event"
	"github.com/viant/fairsched/service/weight"
	"github.com/viant/fairsched/stats"
	"github.com/viant/fairsched/tracing"
)

// SetNice changes the nice value of pid and recomputes every timeslice.
// The root keeps its weight. Out of range values leave the table untouched.
func (s *Service) SetNice(ctx context.Context, pid, nice int) (err error) {
	ctx, span := tracing.StartSpan(ctx, "kernel.nice", "")
	span.WithInt("pid", pid).WithInt("nice", nice)
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
	if !weight.ValidNice(nice) {
		return fmt.Errorf("%w: %d", ErrInvalidNice, nice)
	}
	p.Nice = nice
	if !s.table.IsRoot(p) {
		p.Weight = weight.Of(nice)
	}
	s.recompute()

	s.logger.Debug("reniced", "pid", pid, "nice", nice, "weight", p.Weight)
	s.publish(ctx, event.KindReniced, p, p.State)
	s.stats.Update(stats.Delta{Renices: 1})
	return nil
}
