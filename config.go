package fairsched

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/fairsched/service/lock"
	"github.com/viant/fairsched/service/table"
	"github.com/viant/fairsched/service/weight"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the kernel configuration. It
// can be loaded from YAML or JSON. Zero sections are filled from DefaultConfig
// by LoadConfig.
type Config struct {
	Table     TableConfig   `json:"table" yaml:"table"`
	Scheduler weight.Config `json:"scheduler" yaml:"scheduler"`
	Lock      LockConfig    `json:"lock" yaml:"lock"`
	Log       LogConfig     `json:"log" yaml:"log"`
	Events    EventsConfig  `json:"events" yaml:"events"`
	Tracing   TracingConfig `json:"tracing" yaml:"tracing"`
}

type TableConfig struct {
	Capacity int `json:"capacity" yaml:"capacity"`
}

type LockConfig struct {
	Kind lock.Kind `json:"kind" yaml:"kind"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// EventsConfig controls the in-memory lifecycle event queue.
type EventsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Buffer  int  `json:"buffer" yaml:"buffer"`
}

// TracingConfig controls OpenTelemetry span export; Output empty means stdout.
type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	Output         string `json:"output" yaml:"output"`
}

// DefaultConfig returns a Config with a 64 slot table, the 100/10 scheduler
// and a single threaded table lock.
func DefaultConfig() *Config {
	return &Config{
		Table:     TableConfig{Capacity: table.DefaultCapacity},
		Scheduler: weight.DefaultConfig(),
		Lock:      LockConfig{Kind: lock.KindNone},
		Log:       LogConfig{Level: "info", Format: "text"},
		Events:    EventsConfig{Enabled: true, Buffer: 256},
		Tracing:   TracingConfig{ServiceName: "fairsched", ServiceVersion: "dev"},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Table.Capacity < 1 {
		return fmt.Errorf("table.capacity must be >= 1")
	}
	if err := c.Scheduler.Validate(); err != nil {
		return err
	}
	if _, err := lock.New(c.Lock.Kind); err != nil {
		return fmt.Errorf("lock.kind: %w", err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: unsupported %q", c.Log.Format)
	}
	if c.Events.Enabled && c.Events.Buffer <= 0 {
		return fmt.Errorf("events.buffer must be > 0")
	}
	return nil
}

// LoadConfig loads a YAML or JSON configuration from any afs supported URL
// on top of DefaultConfig and validates it.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config from %s: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return ret, nil
}
