package scaling

import (
	"errors"
	"fmt"
	"math"
)

const maxPercent = 100

// Policy holds the thresholds and bounds for one evaluation direction.
type Policy struct {
	MinCores           int
	MaxCores           int
	LowCPUPercent      float64
	HighCPUPercent     float64
	LowWorkerPercent   float64
	HighWorkerPercent  float64
	RequiredDataPoints int
}

// Validate reports every inconsistency in the policy.
func (p Policy) Validate() error {
	var errs []error

	if p.MinCores < 1 {
		errs = append(errs, fmt.Errorf("min cores %d is not positive", p.MinCores))
	}

	if p.MinCores > p.MaxCores {
		errs = append(errs, fmt.Errorf("min cores %d above max cores %d", p.MinCores, p.MaxCores))
	}

	errs = append(errs,
		validateBand("cpu", p.LowCPUPercent, p.HighCPUPercent),
		validateBand("worker", p.LowWorkerPercent, p.HighWorkerPercent),
	)

	if p.RequiredDataPoints < 1 {
		errs = append(errs, fmt.Errorf("required data points %d is not positive", p.RequiredDataPoints))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}

	return nil
}

func validateBand(name string, low, high float64) error {
	switch {
	case math.IsNaN(low) || math.IsNaN(high):
		return fmt.Errorf("%s percent band is not a number", name)
	case low < 0 || low > maxPercent:
		return fmt.Errorf("low %s percent %v out of range", name, low)
	case high < 0 || high > maxPercent:
		return fmt.Errorf("high %s percent %v out of range", name, high)
	case low >= high:
		return fmt.Errorf("low %s percent %v not below high %v", name, low, high)
	}

	return nil
}
