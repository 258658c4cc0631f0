package launch

import (
	"math"

	"go.uber.org/multierr"
)

// Verify checks that memory and vcore requests for both roles are in
// (0, max] and that at least one worker runs per container. All
// violations are reported; each one is a *ValidationError.
func (c *Config) Verify(maxMemoryMB, maxVcores int) error {
	var err error
	err = multierr.Append(err, checkRange("workerMemoryMB", c.params.WorkerMemoryMB, maxMemoryMB))
	err = multierr.Append(err, checkRange("workerVirtualCores", c.params.WorkerVirtualCores, maxVcores))
	err = multierr.Append(err, checkRange("coordinatorMemoryMB", c.params.CoordinatorMemoryMB, maxMemoryMB))
	err = multierr.Append(err, checkRange("coordinatorVirtualCores", c.params.CoordinatorVirtualCores, maxVcores))
	err = multierr.Append(err, checkRange("workersPerContainer", c.params.WorkersPerContainer, math.MaxInt))
	return err
}

// VerifyPositive is Verify without ceilings. It is meant for use before
// cluster capacity is known.
func (c *Config) VerifyPositive() error {
	return c.Verify(math.MaxInt, math.MaxInt)
}

func checkRange(field string, value, ceiling int) error {
	if value > 0 && value <= ceiling {
		return nil
	}
	return &ValidationError{Field: field, Value: value, Max: ceiling}
}
