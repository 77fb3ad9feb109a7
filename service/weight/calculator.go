package weight

import (
	"fmt"

	"github.com/viant/fairsched/model/proc"
	"github.com/viant/fairsched/service/table"
)

// Config holds the scheduling period and the minimum timeslice. Units are
// abstract and not bound to wall-clock time.
type Config struct {
	Period         float64 `json:"period" yaml:"period"`
	MinGranularity float64 `json:"minGranularity" yaml:"minGranularity"`
}

// DefaultConfig returns the classic 100/10 configuration.
func DefaultConfig() Config {
	return Config{
		Period:         100,
		MinGranularity: 10,
	}
}

// Validate returns an error describing invalid settings or nil.
func (c Config) Validate() error {
	if c.Period <= 0 {
		return fmt.Errorf("scheduler.period must be > 0")
	}
	if c.MinGranularity < 0 {
		return fmt.Errorf("scheduler.minGranularity must be >= 0")
	}
	return nil
}

// Calculator derives weights and timeslices.
type Calculator struct {
	config Config
}

// New creates a calculator.
func New(config Config) *Calculator {
	return &Calculator{config: config}
}

// Config returns the calculator settings.
func (c *Calculator) Config() Config {
	return c.config
}

// Timeslice returns the share of the period for weight out of totalWeight,
// floored at the minimum granularity. A zero total yields the minimum granularity.
func (c *Calculator) Timeslice(weight, totalWeight int) float64 {
	if totalWeight <= 0 {
		return c.config.MinGranularity
	}
	ret := float64(weight) / float64(totalWeight) * c.config.Period
	if ret < c.config.MinGranularity {
		ret = c.config.MinGranularity
	}
	return ret
}

// TotalWeight sums the weight of RUNNABLE processes other than the root.
func (c *Calculator) TotalWeight(aTable *table.Table) int {
	total := 0
	aTable.Each(func(p *proc.Process) bool {
		if p.State == proc.StateRunnable && !aTable.IsRoot(p) {
			total += p.Weight
		}
		return true
	})
	return total
}

// Recompute assigns a timeslice to every active non-root process and returns
// the total runnable weight used.
func (c *Calculator) Recompute(aTable *table.Table) int {
	total := c.TotalWeight(aTable)
	aTable.Each(func(p *proc.Process) bool {
		if !p.IsActive() || aTable.IsRoot(p) {
			return true
		}
		p.Timeslice = c.Timeslice(p.Weight, total)
		return true
	})
	return total
}

// VRuntimeDelta returns the virtual runtime charged for running timeslice at weight.
func VRuntimeDelta(weight int, timeslice float64) float64 {
	if weight <= 0 {
		return 0
	}
	return float64(NiceZeroWeight) / float64(weight) * timeslice
}
