package fairsched

import (
	"io"
	"log/slog"
	"os"

	"github.com/viant/fairsched/model/proc"
	"github.com/viant/fairsched/service/event"
	"github.com/viant/fairsched/service/kernel"
	"github.com/viant/fairsched/service/lock"
	"github.com/viant/fairsched/service/messaging"
	"github.com/viant/fairsched/service/messaging/memory"
	"github.com/viant/fairsched/service/script"
	"github.com/viant/fairsched/stats"
	"github.com/viant/fairsched/tracing"
)

// Service wires a kernel with its lock, logger, event queue and tracing
// according to Config.
type Service struct {
	config        *Config
	kernel        *kernel.Service
	logger        *slog.Logger
	locker        lock.Locker
	queue         messaging.Queue[event.Event]
	publisher     *event.Publisher
	contextInit   proc.ContextInitializer
	statsListener func(stats.Counters)
	setupErr      error
}

// New creates a service. Explicit options take precedence over the configuration.
func New(options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig()}
	for _, option := range options {
		option(ret)
	}
	if ret.setupErr != nil {
		return nil, ret.setupErr
	}
	if err := ret.init(); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) init() error {
	if err := s.config.Validate(); err != nil {
		return err
	}
	if err := s.ensureBaseSetup(); err != nil {
		return err
	}
	kernelOptions := []kernel.Option{
		kernel.WithCapacity(s.config.Table.Capacity),
		kernel.WithWeightConfig(s.config.Scheduler),
		kernel.WithLocker(s.locker),
		kernel.WithLogger(s.logger),
		kernel.WithEventQueue(s.queue),
		kernel.WithStatsListener(s.statsListener),
	}
	if s.contextInit != nil {
		kernelOptions = append(kernelOptions, kernel.WithContextInitializer(s.contextInit))
	}
	s.kernel = kernel.New(kernelOptions...)
	s.publisher = event.NewPublisher(s.queue, s.kernel.BootID())
	return nil
}

func (s *Service) ensureBaseSetup() error {
	if s.logger == nil {
		logger, err := NewLogger(os.Stderr, s.config.Log)
		if err != nil {
			return err
		}
		s.logger = logger
	}
	if s.locker == nil {
		locker, err := lock.New(s.config.Lock.Kind)
		if err != nil {
			return err
		}
		s.locker = locker
	}
	if s.queue == nil && s.config.Events.Enabled {
		s.queue = memory.NewQueue[event.Event](memory.Config{
			QueueBuffer:  s.config.Events.Buffer,
			DropWhenFull: true,
		})
	}
	if s.config.Tracing.Enabled {
		if err := tracing.Init(s.config.Tracing.ServiceName, s.config.Tracing.ServiceVersion, s.config.Tracing.Output); err != nil {
			return err
		}
	}
	return nil
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// Kernel returns the process table service.
func (s *Service) Kernel() *kernel.Service {
	return s.kernel
}

// Logger returns the service logger.
func (s *Service) Logger() *slog.Logger {
	return s.logger
}

// Events returns the lifecycle event publisher; it is a no-op when events are disabled.
func (s *Service) Events() *event.Publisher {
	return s.publisher
}

// Runner creates a script runner over the kernel writing to w.
func (s *Service) Runner(w io.Writer, options ...script.RunnerOption) *script.Runner {
	options = append([]script.RunnerOption{script.WithLogger(s.logger)}, options...)
	return script.NewRunner(s.kernel, w, options...)
}
