package gateware

import "fmt"

// InvalidStateError is returned when an operation is attempted from a
// state it is not legal in, e.g. loading without a fresh successful
// build in the same invocation.
type InvalidStateError struct {
	Op    string
	State State
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s from state %s", e.Op, e.State)
}

// ExternalToolFailure wraps a collaborator's non-zero exit together
// with its captured diagnostic output, verbatim.
type ExternalToolFailure struct {
	Tool     string
	ExitCode int
	Output   string
	Cause    error
}

func (e ExternalToolFailure) Error() string {
	return fmt.Sprintf("%s exited with status %d:\n%s",
		e.Tool, e.ExitCode, e.Output)
}

func (e ExternalToolFailure) Unwrap() error {
	return e.Cause
}
