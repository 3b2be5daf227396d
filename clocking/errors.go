package clocking

import "fmt"

// ClockSourceCycleError is returned when a domain is derived from a
// source that is not registered yet. Requiring the source to exist
// first makes the clock graph acyclic by construction.
type ClockSourceCycleError struct {
	Name string
	From string
}

func (e ClockSourceCycleError) Error() string {
	return fmt.Sprintf(
		"cannot derive %s: source %s is not registered", e.Name, e.From)
}

// DomainRedefinedError is returned when a domain name is used twice.
type DomainRedefinedError struct {
	Name string
}

func (e DomainRedefinedError) Error() string {
	return fmt.Sprintf("clock domain %s is already registered", e.Name)
}

// DomainNotFoundError is returned when looking up a name that was never
// registered.
type DomainNotFoundError struct {
	Name string
}

func (e DomainNotFoundError) Error() string {
	return fmt.Sprintf("clock domain %s is not registered", e.Name)
}

// UnsynchronizedDomainError is returned by BindCheck when a derived
// domain has no reset synchronization established yet.
type UnsynchronizedDomainError struct {
	Name string
}

func (e UnsynchronizedDomainError) Error() string {
	return fmt.Sprintf(
		"clock domain %s is not reset-synchronized", e.Name)
}
