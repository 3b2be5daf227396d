package soc

import (
	"fmt"

	"github.com/gatefab/socforge/addrspace"
	"github.com/gatefab/socforge/boards"
	"github.com/gatefab/socforge/clocking"
	"github.com/gatefab/socforge/peripheral"
)

// Memory map of the composition. The CSR bus is allocated like any
// other region so peripheral CSR windows cannot collide with memory.
const (
	romBase      = 0x00000000
	romSize      = 32 * addrspace.KB
	sramBase     = 0x10000000
	sramSize     = 8 * addrspace.KB
	spiflashBase = 0x20000000
	spiflashSize = 16 * addrspace.MB
	mainRAMBase  = 0x40000000
	csrBase      = 0x82000000
	csrSize      = 64 * addrspace.KB
)

const resetGuard = "pll locked & external reset released"

// Builder composes a SoC descriptor for one board profile. Identical
// builder inputs always produce equal descriptors; nothing is read
// from ambient state.
type Builder struct {
	profile     boards.Profile
	sysClkFreq  clocking.Freq
	module      boards.MemoryModule
	mappedLimit uint64
}

// MakeBuilder creates a builder for the Colorlight 5A-75B revision 7.0
// with the profile defaults.
func MakeBuilder() Builder {
	profile, err := boards.Colorlight5A75B("7.0")
	if err != nil {
		panic(err)
	}

	return MakeBuilderWithProfile(profile)
}

// MakeBuilderWithProfile creates a builder with the given profile's
// defaults.
func MakeBuilderWithProfile(profile boards.Profile) Builder {
	return Builder{
		profile:     profile,
		sysClkFreq:  profile.SysClkFreq,
		module:      profile.Module,
		mappedLimit: profile.SDRAMWindow,
	}
}

// WithSysClkFreq overrides the system clock frequency.
func (b Builder) WithSysClkFreq(freq clocking.Freq) Builder {
	b.sysClkFreq = freq
	return b
}

// WithMemoryModule overrides the SDRAM module geometry.
func (b Builder) WithMemoryModule(module boards.MemoryModule) Builder {
	b.module = module
	return b
}

// WithMappedMemoryLimit overrides how much SDRAM the address map
// exposes, independent of physical capacity.
func (b Builder) WithMappedMemoryLimit(limit uint64) Builder {
	b.mappedLimit = limit
	return b
}

func (b Builder) parametersMustBeValid() {
	if b.sysClkFreq == 0 {
		panic("system clock frequency cannot be 0")
	}

	if b.mappedLimit == 0 {
		panic("mapped memory limit cannot be 0")
	}
}

// Build runs the composition and freezes the result. Any allocator,
// clock, or registry error aborts the composition unmodified; no
// partial descriptor is ever returned.
func (b Builder) Build() (*Descriptor, error) {
	b.parametersMustBeValid()

	allocator := addrspace.NewAllocator()
	clocks := clocking.NewManager()

	regions, err := b.allocateRegions(allocator)
	if err != nil {
		return nil, err
	}

	if err := b.deriveClockTree(clocks); err != nil {
		return nil, err
	}

	peripherals, err := b.registerPeripherals(allocator, clocks, regions)
	if err != nil {
		return nil, err
	}

	spiflash := regions["spiflash"]

	return &Descriptor{
		Ident: fmt.Sprintf("socforge SoC on %s r%s",
			b.profile.Name, b.profile.Revision),
		Board:       b.profile.Name,
		Revision:    b.profile.Revision,
		Device:      b.profile.Device,
		SysClkFreq:  b.sysClkFreq,
		BootSource:  "spiflash",
		Regions:     allocator.Freeze(),
		Domains:     clocks.Domains(),
		Peripherals: peripherals,
		Constants: map[string]uint64{
			"FLASH_BOOT_ADDRESS": spiflash.Base + FlashBootOffset,
		},
	}, nil
}

func (b Builder) allocateRegions(
	allocator *addrspace.Allocator,
) (map[string]addrspace.Region, error) {
	mainRAMSize := allocator.Clamp(
		"main_ram", b.module.Capacity(), b.mappedLimit)

	regions := make(map[string]addrspace.Region)
	for _, want := range []struct {
		name string
		base uint64
		size uint64
	}{
		{"rom", romBase, romSize},
		{"sram", sramBase, sramSize},
		{"spiflash", spiflashBase, spiflashSize},
		{"main_ram", mainRAMBase, mainRAMSize},
		{"csr", csrBase, csrSize},
	} {
		r, err := allocator.Allocate(want.name, want.base, want.size)
		if err != nil {
			return nil, err
		}

		regions[want.name] = r
	}

	return regions, nil
}

func (b Builder) deriveClockTree(clocks *clocking.Manager) error {
	if _, err := clocks.RegisterSource(
		"clk25", b.profile.OscillatorFreq); err != nil {
		return err
	}

	if _, err := clocks.Derive(
		"sys", "clk25", b.sysClkFreq, 0); err != nil {
		return err
	}

	if _, err := clocks.Derive(
		"sys_ps", "clk25", b.sysClkFreq, b.profile.SDRAMPhaseDeg,
	); err != nil {
		return err
	}

	if err := clocks.SynchronizeReset("sys", resetGuard); err != nil {
		return err
	}

	return clocks.SynchronizeReset("sys_ps", resetGuard)
}

func (b Builder) registerPeripherals(
	allocator *addrspace.Allocator,
	clocks *clocking.Manager,
	regions map[string]addrspace.Region,
) ([]peripheral.Peripheral, error) {
	registry := peripheral.NewRegistry(allocator, clocks)

	sys, err := clocks.Resolve("sys")
	if err != nil {
		return nil, err
	}

	sysPS, err := clocks.Resolve("sys_ps")
	if err != nil {
		return nil, err
	}

	mainRAM := regions["main_ram"]
	spiflash := regions["spiflash"]

	for _, want := range []struct {
		stage peripheral.Stage
		p     peripheral.Peripheral
	}{
		{peripheral.StageClockReset, peripheral.Peripheral{
			Name:  "cpu",
			Kind:  peripheral.KindComputeCore,
			Clock: &sys,
			Config: map[string]any{
				peripheral.OptComputeCoreType:   "vexriscv",
				peripheral.OptComputeCoreFlavor: "linux",
			},
		}},
		{peripheral.StageMemory, peripheral.Peripheral{
			Name:   "sdram",
			Kind:   peripheral.KindMemoryController,
			Region: &mainRAM,
			Clock:  &sysPS,
			Config: map[string]any{
				peripheral.OptMemoryModule:    b.module.Name,
				peripheral.OptL2CacheSize:     32 * addrspace.KB,
				peripheral.OptL2CacheMinWidth: 128,
				peripheral.OptL2CacheReverse:  true,
			},
		}},
		// The PHY's accessible state lives on the CSR bus; it has no
		// data window of its own.
		{peripheral.StageIO, peripheral.Peripheral{
			Name: "ethphy",
			Kind: peripheral.KindNetworkPHY,
			Config: map[string]any{
				"interface": "rgmii",
			},
		}},
		{peripheral.StageBoot, peripheral.Peripheral{
			Name:   "spiflash",
			Kind:   peripheral.KindBootFlash,
			Region: &spiflash,
			Clock:  &sys,
			Config: map[string]any{
				peripheral.OptFlashMode:        "1x",
				peripheral.OptFlashDummyCycles: 8,
			},
		}},
	} {
		if err := registry.Register(want.stage, want.p); err != nil {
			return nil, err
		}
	}

	return registry.Finalize()
}
