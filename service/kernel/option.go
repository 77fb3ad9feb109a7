package kernel

import (
	"log/slog"

	"github.com/viant/fairsched/model/proc"
	"github.com/viant/fairsched/service/event"
	"github.com/viant/fairsched/service/lock"
	"github.com/viant/fairsched/service/messaging"
	"github.com/viant/fairsched/service/weight"
	"github.com/viant/fairsched/stats"
)

// Option configures the kernel service.
type Option func(s *Service)

// WithCapacity sets the number of process slots.
func WithCapacity(capacity int) Option {
	return func(s *Service) {
		s.capacity = capacity
	}
}

// WithWeightConfig sets the scheduling period and minimum granularity.
func WithWeightConfig(config weight.Config) Option {
	return func(s *Service) {
		s.weightConfig = config
	}
}

// WithLocker sets the table lock.
func WithLocker(locker lock.Locker) Option {
	return func(s *Service) {
		if locker != nil {
			s.locker = locker
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithEventQueue publishes lifecycle events to queue.
func WithEventQueue(queue messaging.Queue[event.Event]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithContextInitializer sets the continuation initializer used on allocation.
func WithContextInitializer(initializer proc.ContextInitializer) Option {
	return func(s *Service) {
		s.contextInit = initializer
	}
}

// WithBootID sets the boot identifier instead of a generated one.
func WithBootID(bootID string) Option {
	return func(s *Service) {
		s.bootID = bootID
	}
}

// WithStatsListener registers a callback invoked after every counter change.
func WithStatsListener(listener func(stats.Counters)) Option {
	return func(s *Service) {
		s.statsListener = listener
	}
}
