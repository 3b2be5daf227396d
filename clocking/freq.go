// Package clocking derives the clock domains of a composed SoC from
// reference oscillators and tracks the reset-synchronization state each
// domain must reach before a peripheral may bind to it.
package clocking

import "log"

// Freq defines the type of frequency
type Freq float64

// Defines the unit of frequency
const (
	Hz  Freq = 1
	KHz Freq = 1e3
	MHz Freq = 1e6
	GHz Freq = 1e9
)

// Period returns the time of one clock cycle in seconds.
func (f Freq) Period() float64 {
	if f == 0 {
		log.Panic("frequency cannot be 0")
	}
	return 1.0 / float64(f)
}

// Times multiplies the frequency, e.g. for a PLL output running at a
// multiple of its reference.
func (f Freq) Times(n int) Freq {
	return f * Freq(n)
}
