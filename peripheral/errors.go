package peripheral

import "fmt"

// UnresolvedDependencyError is returned when a peripheral is registered
// before the region, clock domain, or registration stage it depends on
// is ready.
type UnresolvedDependencyError struct {
	Peripheral string
	Reason     string
	Cause      error
}

func (e UnresolvedDependencyError) Error() string {
	msg := fmt.Sprintf(
		"peripheral %s has an unresolved dependency: %s",
		e.Peripheral, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

func (e UnresolvedDependencyError) Unwrap() error {
	return e.Cause
}

// RegistryFinalizedError is returned when the registry is used after
// Finalize.
type RegistryFinalizedError struct{}

func (e RegistryFinalizedError) Error() string {
	return "peripheral registry is already finalized"
}
