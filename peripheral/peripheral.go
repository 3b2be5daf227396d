// Package peripheral declares the hardware blocks of a composed SoC
// and enforces, at registration time, that each block's address region
// and clock domain dependencies are already satisfied.
package peripheral

import (
	"github.com/gatefab/socforge/addrspace"
	"github.com/gatefab/socforge/clocking"
)

// Kind classifies a peripheral.
type Kind int

const (
	KindComputeCore Kind = iota
	KindMemoryController
	KindNetworkPHY
	KindBootFlash
)

func (k Kind) String() string {
	switch k {
	case KindComputeCore:
		return "compute-core"
	case KindMemoryController:
		return "memory-controller"
	case KindNetworkPHY:
		return "network-phy"
	case KindBootFlash:
		return "boot-flash"
	default:
		return "unknown"
	}
}

// A Peripheral is one hardware block. Region and Clock are resolved
// references handed over by the composer; the peripheral never owns
// them. A peripheral with no CPU-visible data window (e.g. a network
// PHY reachable only through CSRs) carries a nil Region.
type Peripheral struct {
	Name   string
	Kind   Kind
	Region *addrspace.Region
	Clock  *clocking.Domain
	Config map[string]any
}
