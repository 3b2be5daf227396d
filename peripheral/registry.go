package peripheral

import (
	"fmt"

	"github.com/gatefab/socforge/addrspace"
	"github.com/gatefab/socforge/clocking"
)

// Stage orders peripheral registration after hardware dependency:
// clock and reset infrastructure first, then the memory subsystem,
// then I/O, then boot configuration. A registry only moves forward
// through the stages.
type Stage int

const (
	StageClockReset Stage = iota
	StageMemory
	StageIO
	StageBoot
)

func (s Stage) String() string {
	switch s {
	case StageClockReset:
		return "clock-reset"
	case StageMemory:
		return "memory"
	case StageIO:
		return "io"
	case StageBoot:
		return "boot"
	default:
		return "unknown"
	}
}

// A Registry collects the peripherals of one composition. Register
// validates that a peripheral's region is allocated and its clock
// domain is bindable before accepting it, so an ordering mistake fails
// here instead of in the synthesis flow.
type Registry struct {
	allocator *addrspace.Allocator
	clocks    *clocking.Manager

	stage       Stage
	peripherals []Peripheral
	nameIndex   map[string]int
	finalized   bool
}

// NewRegistry creates a Registry that validates against the given
// allocator and clock manager.
func NewRegistry(
	allocator *addrspace.Allocator,
	clocks *clocking.Manager,
) *Registry {
	return &Registry{
		allocator: allocator,
		clocks:    clocks,
		nameIndex: make(map[string]int),
	}
}

// Register adds a peripheral at the given stage.
func (r *Registry) Register(stage Stage, p Peripheral) error {
	if r.finalized {
		return RegistryFinalizedError{}
	}

	if stage < r.stage {
		return UnresolvedDependencyError{
			Peripheral: p.Name,
			Reason: fmt.Sprintf(
				"stage %s after stage %s is already underway",
				stage, r.stage),
		}
	}

	if _, exists := r.nameIndex[p.Name]; exists {
		return UnresolvedDependencyError{
			Peripheral: p.Name,
			Reason:     "name is already registered",
		}
	}

	if err := r.checkRegion(p); err != nil {
		return err
	}

	if err := r.checkClock(p); err != nil {
		return err
	}

	if err := validateConfig(p); err != nil {
		return err
	}

	r.stage = stage
	r.peripherals = append(r.peripherals, p)
	r.nameIndex[p.Name] = len(r.peripherals) - 1

	return nil
}

func (r *Registry) checkRegion(p Peripheral) error {
	if p.Region == nil {
		return nil
	}

	allocated, err := r.allocator.Resolve(p.Region.Name)
	if err != nil {
		return UnresolvedDependencyError{
			Peripheral: p.Name,
			Reason:     "region " + p.Region.Name,
			Cause:      err,
		}
	}

	if allocated != *p.Region {
		return UnresolvedDependencyError{
			Peripheral: p.Name,
			Reason: fmt.Sprintf(
				"region %s does not match the allocated region",
				p.Region.Name),
		}
	}

	return nil
}

func (r *Registry) checkClock(p Peripheral) error {
	if p.Clock == nil {
		return nil
	}

	if err := r.clocks.BindCheck(p.Clock.Name); err != nil {
		return UnresolvedDependencyError{
			Peripheral: p.Name,
			Reason:     "clock " + p.Clock.Name,
			Cause:      err,
		}
	}

	return nil
}

// Finalize returns the immutable peripheral list. It may only be
// called once.
func (r *Registry) Finalize() ([]Peripheral, error) {
	if r.finalized {
		return nil, RegistryFinalizedError{}
	}

	r.finalized = true

	peripherals := make([]Peripheral, len(r.peripherals))
	copy(peripherals, r.peripherals)

	return peripherals, nil
}
