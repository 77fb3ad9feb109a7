package kernel

import (
	"context"
	"io"
	"log/slog"

	"github.com/viant/fairsched/internal/clock"
	"github.com/viant/fairsched/internal/idgen"
	"github.com/viant/fairsched/model/proc"
	"github.com/viant/fairsched/service/dump"
	"github.com/viant/fairsched/service/event"
	"github.com/viant/fairsched/service/lock"
	"github.com/viant/fairsched/service/messaging"
	"github.com/viant/fairsched/service/scheduler"
	"github.com/viant/fairsched/service/table"
	"github.com/viant/fairsched/service/weight"
	"github.com/viant/fairsched/stats"
	"github.com/viant/fairsched/tracing"
)

// Service owns the process table and exposes the lifecycle operations.
// Entries never leave the service; queries return copies.
type Service struct {
	table      *table.Table
	calculator *weight.Calculator
	scheduler  *scheduler.Service
	locker     lock.Locker
	publisher  *event.Publisher
	stats      *stats.Tracker
	logger     *slog.Logger
	bootID     string

	capacity      int
	weightConfig  weight.Config
	queue         messaging.Queue[event.Event]
	contextInit   proc.ContextInitializer
	statsListener func(stats.Counters)
}

// New creates a kernel; Init must be called before any other operation.
func New(options ...Option) *Service {
	ret := &Service{
		capacity:     table.DefaultCapacity,
		weightConfig: weight.DefaultConfig(),
		locker:       lock.Nop{},
	}
	for _, option := range options {
		option(ret)
	}
	ret.ensureBaseSetup()
	return ret
}

func (s *Service) ensureBaseSetup() {
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.bootID == "" {
		s.bootID = idgen.New()
	}
	var tableOptions []table.Option
	if s.contextInit != nil {
		tableOptions = append(tableOptions, table.WithContextInitializer(s.contextInit))
	}
	s.table = table.New(s.capacity, tableOptions...)
	s.calculator = weight.New(s.weightConfig)
	s.scheduler = scheduler.New(s.calculator)
	s.publisher = event.NewPublisher(s.queue, s.bootID)
	s.stats = stats.New(s.bootID, clock.Now())
	if s.statsListener != nil {
		s.stats.OnChange(s.statsListener)
	}
	s.logger = s.logger.With("boot", s.bootID)
}

// BootID returns the identifier of this kernel instance.
func (s *Service) BootID() string {
	return s.bootID
}

// Capacity returns the number of process slots.
func (s *Service) Capacity() int {
	return s.table.Capacity()
}

// Stats returns a copy of the scheduling counters.
func (s *Service) Stats() stats.Counters {
	return s.stats.Snapshot()
}

// Init creates the root process (pid 1) and makes it the running process.
func (s *Service) Init(ctx context.Context) (pid int, err error) {
	_, span := tracing.StartSpan(ctx, "kernel.init", "")
	defer func() { tracing.EndSpan(span, err) }()

	s.locker.Lock()
	defer s.locker.Unlock()

	root, err := s.table.InitializeRoot()
	if err != nil {
		return 0, err
	}
	s.logger.Debug("root initialized", "pid", root.PID, "capacity", s.table.Capacity())
	return root.PID, nil
}

func (s *Service) ensureInitialized() error {
	if s.table.Root() == nil {
		return ErrNotInitialized
	}
	return nil
}

func (s *Service) publish(ctx context.Context, kind event.Kind, p *proc.Process, from proc.State) {
	if err := s.publisher.Publish(ctx, event.New(kind, p, from)); err != nil {
		s.logger.Debug("event dropped", "kind", kind, "pid", p.PID, "error", err)
	}
}

func (s *Service) recompute() int {
	total := s.calculator.Recompute(s.table)
	s.logger.Debug("timeslices recomputed", "totalWeight", total)
	return total
}

// Recompute recalculates every timeslice and returns the total runnable weight.
func (s *Service) Recompute(ctx context.Context) int {
	_, span := tracing.StartSpan(ctx, "kernel.recompute", "")
	defer tracing.EndSpan(span, nil)

	s.locker.Lock()
	defer s.locker.Unlock()
	total := s.recompute()
	span.WithInt("totalWeight", total)
	return total
}

// Lookup returns a copy of the process with the given pid.
func (s *Service) Lookup(_ context.Context, pid int) (proc.Process, error) {
	s.locker.Lock()
	defer s.locker.Unlock()
	p, err := s.table.Find(pid)
	if err != nil {
		return proc.Process{}, err
	}
	return p.Clone(), nil
}

// Processes returns copies of all active processes in table order.
func (s *Service) Processes(_ context.Context) []proc.Process {
	s.locker.Lock()
	defer s.locker.Unlock()
	active := s.table.Active()
	ret := make([]proc.Process, 0, len(active))
	for _, p := range active {
		ret = append(ret, p.Clone())
	}
	return ret
}

// Current returns a copy of the running process.
func (s *Service) Current(_ context.Context) (proc.Process, bool) {
	s.locker.Lock()
	defer s.locker.Unlock()
	current := s.table.Current()
	if current == nil {
		return proc.Process{}, false
	}
	return current.Clone(), true
}

// NextPID returns the pid the next fork will receive.
func (s *Service) NextPID(_ context.Context) int {
	s.locker.Lock()
	defer s.locker.Unlock()
	return s.table.NextPID()
}

// Dump returns one line per active process.
func (s *Service) Dump(ctx context.Context) []string {
	return dump.Lines(s.Processes(ctx))
}
