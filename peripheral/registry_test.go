package peripheral_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gatefab/socforge/addrspace"
	"github.com/gatefab/socforge/clocking"
	"github.com/gatefab/socforge/peripheral"
)

var _ = Describe("Registry", func() {
	var (
		allocator *addrspace.Allocator
		clocks    *clocking.Manager
		registry  *peripheral.Registry

		mainRAM addrspace.Region
		sys     clocking.Domain
	)

	BeforeEach(func() {
		allocator = addrspace.NewAllocator()
		clocks = clocking.NewManager()
		registry = peripheral.NewRegistry(allocator, clocks)

		var err error
		mainRAM, err = allocator.Allocate("main_ram", 0x40000000, 0x400000)
		Expect(err).ToNot(HaveOccurred())

		_, err = clocks.RegisterSource("clk25", 25*clocking.MHz)
		Expect(err).ToNot(HaveOccurred())

		sys, err = clocks.Derive("sys", "clk25", 66*clocking.MHz, 0)
		Expect(err).ToNot(HaveOccurred())
	})

	It("should register a peripheral with satisfied dependencies", func() {
		Expect(clocks.SynchronizeReset("sys", "pll locked")).To(Succeed())

		err := registry.Register(peripheral.StageMemory, peripheral.Peripheral{
			Name:   "sdram",
			Kind:   peripheral.KindMemoryController,
			Region: &mainRAM,
			Clock:  &sys,
		})
		Expect(err).ToNot(HaveOccurred())
	})

	It("should reject a peripheral bound to an unallocated region", func() {
		rogue := addrspace.Region{Name: "rogue", Base: 0x90000000, Size: 0x100}

		err := registry.Register(peripheral.StageIO, peripheral.Peripheral{
			Name:   "uart",
			Kind:   peripheral.KindNetworkPHY,
			Region: &rogue,
		})

		var unresolved peripheral.UnresolvedDependencyError
		Expect(err).To(BeAssignableToTypeOf(unresolved))
		unresolved = err.(peripheral.UnresolvedDependencyError)
		Expect(unresolved.Cause).To(Equal(
			addrspace.RegionNotFoundError{Name: "rogue"}))
	})

	It("should reject a region that drifted from the allocation", func() {
		stale := mainRAM
		stale.Size = 0x100

		err := registry.Register(peripheral.StageMemory, peripheral.Peripheral{
			Name:   "sdram",
			Kind:   peripheral.KindMemoryController,
			Region: &stale,
		})
		Expect(err).To(BeAssignableToTypeOf(
			peripheral.UnresolvedDependencyError{}))
	})

	It("should reject binding to an unsynchronized clock", func() {
		err := registry.Register(peripheral.StageMemory, peripheral.Peripheral{
			Name:  "sdram",
			Kind:  peripheral.KindMemoryController,
			Clock: &sys,
		})

		var unresolved peripheral.UnresolvedDependencyError
		Expect(err).To(BeAssignableToTypeOf(unresolved))
		unresolved = err.(peripheral.UnresolvedDependencyError)
		Expect(unresolved.Cause).To(Equal(
			clocking.UnsynchronizedDomainError{Name: "sys"}))
	})

	It("should accept a CSR-only peripheral with no region", func() {
		Expect(clocks.SynchronizeReset("sys", "pll locked")).To(Succeed())

		err := registry.Register(peripheral.StageIO, peripheral.Peripheral{
			Name:  "ethphy",
			Kind:  peripheral.KindNetworkPHY,
			Clock: &sys,
		})
		Expect(err).ToNot(HaveOccurred())
	})

	It("should refuse to move backward through the stages", func() {
		Expect(clocks.SynchronizeReset("sys", "pll locked")).To(Succeed())

		err := registry.Register(peripheral.StageBoot, peripheral.Peripheral{
			Name: "spiflash",
			Kind: peripheral.KindBootFlash,
		})
		Expect(err).ToNot(HaveOccurred())

		err = registry.Register(peripheral.StageMemory, peripheral.Peripheral{
			Name: "sdram",
			Kind: peripheral.KindMemoryController,
		})
		Expect(err).To(BeAssignableToTypeOf(
			peripheral.UnresolvedDependencyError{}))
	})

	It("should reject duplicate names", func() {
		err := registry.Register(peripheral.StageBoot, peripheral.Peripheral{
			Name: "spiflash", Kind: peripheral.KindBootFlash,
		})
		Expect(err).ToNot(HaveOccurred())

		err = registry.Register(peripheral.StageBoot, peripheral.Peripheral{
			Name: "spiflash", Kind: peripheral.KindBootFlash,
		})
		Expect(err).To(BeAssignableToTypeOf(
			peripheral.UnresolvedDependencyError{}))
	})

	It("should validate memory controller config types", func() {
		err := registry.Register(peripheral.StageMemory, peripheral.Peripheral{
			Name: "sdram",
			Kind: peripheral.KindMemoryController,
			Config: map[string]any{
				peripheral.OptL2CacheSize: "big",
			},
		})
		Expect(err).To(BeAssignableToTypeOf(peripheral.InvalidConfigError{}))
	})

	It("should validate boot flash config ranges", func() {
		err := registry.Register(peripheral.StageBoot, peripheral.Peripheral{
			Name: "spiflash",
			Kind: peripheral.KindBootFlash,
			Config: map[string]any{
				peripheral.OptFlashDummyCycles: -1,
			},
		})
		Expect(err).To(BeAssignableToTypeOf(peripheral.InvalidConfigError{}))
	})

	It("should accept well-typed config", func() {
		err := registry.Register(peripheral.StageMemory, peripheral.Peripheral{
			Name: "sdram",
			Kind: peripheral.KindMemoryController,
			Config: map[string]any{
				peripheral.OptMemoryModule:    "M12L16161A",
				peripheral.OptL2CacheSize:     uint64(0x8000),
				peripheral.OptL2CacheMinWidth: 128,
				peripheral.OptL2CacheReverse:  true,
			},
		})
		Expect(err).ToNot(HaveOccurred())
	})

	It("should finalize exactly once", func() {
		err := registry.Register(peripheral.StageBoot, peripheral.Peripheral{
			Name: "spiflash", Kind: peripheral.KindBootFlash,
		})
		Expect(err).ToNot(HaveOccurred())

		peripherals, err := registry.Finalize()
		Expect(err).ToNot(HaveOccurred())
		Expect(peripherals).To(HaveLen(1))

		_, err = registry.Finalize()
		Expect(err).To(Equal(peripheral.RegistryFinalizedError{}))

		err = registry.Register(peripheral.StageBoot, peripheral.Peripheral{
			Name: "late", Kind: peripheral.KindBootFlash,
		})
		Expect(err).To(Equal(peripheral.RegistryFinalizedError{}))
	})
})
