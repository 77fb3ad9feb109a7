package fairsched

import (
	"log/slog"

	"github.com/viant/fairsched/model/proc"
	"github.com/viant/fairsched/service/event"
	"github.com/viant/fairsched/service/lock"
	"github.com/viant/fairsched/service/messaging"
	"github.com/viant/fairsched/stats"
	"github.com/viant/fairsched/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the Service.
type Option func(s *Service)

// WithConfig sets the configuration; nil keeps DefaultConfig.
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithLogger sets the logger instead of one built from Config.Log.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithLocker sets the table lock instead of Config.Lock.
func WithLocker(locker lock.Locker) Option {
	return func(s *Service) {
		s.locker = locker
	}
}

// WithContextInitializer sets the continuation initializer of new processes.
func WithContextInitializer(initializer proc.ContextInitializer) Option {
	return func(s *Service) {
		s.contextInit = initializer
	}
}

// WithEventQueue sets the lifecycle event queue instead of the in-memory one.
func WithEventQueue(queue messaging.Queue[event.Event]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithStatsListener registers a callback invoked after every counter change.
func WithStatsListener(listener func(stats.Counters)) Option {
	return func(s *Service) {
		s.statsListener = listener
	}
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used. The first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		if err := tracing.Init(serviceName, serviceVersion, outputFile); err != nil {
			s.setupErr = err
		}
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
// The first successful initialisation wins.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		if err := tracing.InitWithExporter(serviceName, serviceVersion, exporter); err != nil {
			s.setupErr = err
		}
	}
}
