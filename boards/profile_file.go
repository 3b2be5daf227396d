package boards

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gatefab/socforge/clocking"
)

// profile.toml key mapping onto Profile overrides.
type fileProfile struct {
	Device          string  `toml:"device"`
	OscillatorMHz   float64 `toml:"oscillator_mhz"`
	SysClkMHz       float64 `toml:"sys_clk_mhz"`
	SDRAMPhaseDeg   float64 `toml:"sdram_phase_deg"`
	SDRAMWindow     int64   `toml:"sdram_window_bytes"`
	ModuleName      string  `toml:"sdram_module"`
	ModuleBanks     int     `toml:"sdram_banks"`
	ModuleRows      int     `toml:"sdram_rows"`
	ModuleCols      int     `toml:"sdram_cols"`
	ModuleDataWidth int     `toml:"sdram_data_width"`
}

// LoadProfile overlays a TOML profile file on top of a base profile.
// Only keys present in the file override the base.
func LoadProfile(path string, base Profile) (Profile, error) {
	profile := base

	var raw fileProfile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Profile{}, fmt.Errorf("load board profile: %w", err)
	}

	if meta.IsDefined("device") {
		profile.Device = strings.TrimSpace(raw.Device)
	}
	if meta.IsDefined("oscillator_mhz") {
		profile.OscillatorFreq = clocking.Freq(raw.OscillatorMHz) * clocking.MHz
	}
	if meta.IsDefined("sys_clk_mhz") {
		profile.SysClkFreq = clocking.Freq(raw.SysClkMHz) * clocking.MHz
	}
	if meta.IsDefined("sdram_phase_deg") {
		profile.SDRAMPhaseDeg = raw.SDRAMPhaseDeg
	}
	if meta.IsDefined("sdram_window_bytes") {
		if raw.SDRAMWindow <= 0 {
			return Profile{}, fmt.Errorf(
				"load board profile: sdram_window_bytes must be positive")
		}
		profile.SDRAMWindow = uint64(raw.SDRAMWindow)
	}
	if meta.IsDefined("sdram_module") {
		profile.Module.Name = strings.TrimSpace(raw.ModuleName)
	}
	if meta.IsDefined("sdram_banks") {
		profile.Module.Banks = raw.ModuleBanks
	}
	if meta.IsDefined("sdram_rows") {
		profile.Module.Rows = raw.ModuleRows
	}
	if meta.IsDefined("sdram_cols") {
		profile.Module.Cols = raw.ModuleCols
	}
	if meta.IsDefined("sdram_data_width") {
		profile.Module.DataWidth = raw.ModuleDataWidth
	}

	return profile, nil
}
