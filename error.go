package lis2dh12

import "fmt"

// InvalidConfigurationError reports an unsupported or inconsistent
// combination of configuration parameters. It is returned before any
// register write; the device is left unchanged.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return "lis2dh12: invalid configuration: " + e.Reason
}

// UnsupportedCombinationError reports a sensitivity lookup for a
// (resolution, range) pair without a table entry. Configurations are
// validated before the lookup, so this error indicates a driver bug
// rather than bad input.
type UnsupportedCombinationError struct {
	Resolution Resolution
	Range      FullScale
}

func (e *UnsupportedCombinationError) Error() string {
	return fmt.Sprintf("lis2dh12: no sensitivity entry for resolution %d, range %d", e.Resolution, e.Range)
}

// ClosedError reports an operation attempted after Halt.
type ClosedError struct{}

func (e *ClosedError) Error() string {
	return "lis2dh12: device is halted"
}
