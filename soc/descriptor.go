// Package soc composes address map, clock tree, and peripheral set
// into one immutable SoC descriptor that the downstream build flow
// consumes.
package soc

import (
	"encoding/json"
	"io"

	"github.com/gatefab/socforge/addrspace"
	"github.com/gatefab/socforge/clocking"
	"github.com/gatefab/socforge/peripheral"
)

// FlashBootOffset is where the firmware image starts inside the boot
// flash window. Firmware consumes the published FLASH_BOOT_ADDRESS
// constant, which is always region(spiflash).base + FlashBootOffset.
const FlashBootOffset = 1 * addrspace.MB

// A Descriptor is the frozen output of a composition. It is never
// mutated after Build returns it.
type Descriptor struct {
	Ident      string
	Board      string
	Revision   string
	Device     string
	SysClkFreq clocking.Freq
	BootSource string

	Regions     []addrspace.Region
	Domains     []clocking.Domain
	Peripherals []peripheral.Peripheral

	// Constants published to firmware collaborators, keyed by the
	// name firmware knows them under.
	Constants map[string]uint64
}

// Region returns the named region of the frozen map.
func (d *Descriptor) Region(name string) (addrspace.Region, error) {
	for _, r := range d.Regions {
		if r.Name == name {
			return r, nil
		}
	}

	return addrspace.Region{}, addrspace.RegionNotFoundError{Name: name}
}

// WriteJSON serializes the descriptor for inspection and as synthesis
// input. Equal descriptors serialize to identical bytes.
func (d *Descriptor) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(d)
}
