// Package boards carries the board profiles a SoC can be composed for:
// oscillator and system clock frequencies, SDRAM module geometry, and
// the FPGA device string the synthesis flow targets.
package boards

import (
	"fmt"

	"github.com/gatefab/socforge/clocking"
)

// A MemoryModule describes SDRAM geometry as wired on the board. The
// capacity derived from it is physical capacity; the address map may
// expose a smaller window.
type MemoryModule struct {
	Name      string
	Banks     int
	Rows      int
	Cols      int
	DataWidth int
}

// Capacity returns the physical capacity in bytes.
func (m MemoryModule) Capacity() uint64 {
	bits := uint64(m.Banks) * uint64(m.Rows) * uint64(m.Cols) *
		uint64(m.DataWidth)
	return bits / 8
}

// M12L16161A is the SDRAM fitted on the Colorlight 5A-75B, two chips
// wide on the data bus.
func M12L16161A() MemoryModule {
	return MemoryModule{
		Name:      "M12L16161A",
		Banks:     2,
		Rows:      2048,
		Cols:      256,
		DataWidth: 32,
	}
}

// A Profile is everything board-specific the composer needs.
type Profile struct {
	Name     string
	Revision string
	Device   string

	OscillatorFreq clocking.Freq
	SysClkFreq     clocking.Freq

	// SDRAMPhaseDeg is the phase shift of the SDRAM strobe domain.
	// The default 180 stands in for an ideal 90 that the PLL cannot
	// reach on this board; it is a tunable, not a derived value.
	SDRAMPhaseDeg float64

	// SDRAMWindow limits how much of the physical SDRAM the address
	// map exposes.
	SDRAMWindow uint64

	Module MemoryModule
}

// Colorlight5A75B returns the profile for the given board revision.
func Colorlight5A75B(revision string) (Profile, error) {
	device, ok := colorlight5A75BDevices[revision]
	if !ok {
		return Profile{}, fmt.Errorf(
			"unknown colorlight_5a_75b revision %s", revision)
	}

	return Profile{
		Name:           "colorlight_5a_75b",
		Revision:       revision,
		Device:         device,
		OscillatorFreq: 25 * clocking.MHz,
		SysClkFreq:     66 * clocking.MHz,
		SDRAMPhaseDeg:  180,
		SDRAMWindow:    4 << 20,
		Module:         M12L16161A(),
	}, nil
}

var colorlight5A75BDevices = map[string]string{
	"6.0": "LFE5U-25F-6BG381C",
	"6.1": "LFE5U-25F-6BG381C",
	"7.0": "LFE5U-25F-6BG256C",
	"8.0": "LFE5U-25F-6BG256C",
}
