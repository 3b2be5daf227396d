package soc_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gatefab/socforge/addrspace"
	"github.com/gatefab/socforge/boards"
	"github.com/gatefab/socforge/clocking"
	"github.com/gatefab/socforge/peripheral"
	"github.com/gatefab/socforge/soc"
)

var _ = Describe("Builder", func() {
	It("should compose the default board without error", func() {
		descriptor, err := soc.MakeBuilder().Build()
		Expect(err).ToNot(HaveOccurred())
		Expect(descriptor.Board).To(Equal("colorlight_5a_75b"))
		Expect(descriptor.Revision).To(Equal("7.0"))
		Expect(descriptor.BootSource).To(Equal("spiflash"))
	})

	It("should allocate a conflict-free memory map", func() {
		descriptor, err := soc.MakeBuilder().Build()
		Expect(err).ToNot(HaveOccurred())

		regions := descriptor.Regions
		for i := range regions {
			for j := i + 1; j < len(regions); j++ {
				Expect(regions[i].Overlaps(regions[j])).To(BeFalse(),
					"%s and %s overlap", regions[i].Name, regions[j].Name)
			}
		}
	})

	It("should clamp main_ram to the mapped memory limit", func() {
		large := boards.MemoryModule{
			Name:      "W9825G6KH",
			Banks:     4,
			Rows:      8192,
			Cols:      512,
			DataWidth: 16,
		}
		Expect(large.Capacity()).To(Equal(32 * addrspace.MB))

		descriptor, err := soc.MakeBuilder().
			WithMemoryModule(large).
			WithMappedMemoryLimit(4 * addrspace.MB).
			Build()
		Expect(err).ToNot(HaveOccurred())

		mainRAM, err := descriptor.Region("main_ram")
		Expect(err).ToNot(HaveOccurred())
		Expect(mainRAM.Size).To(Equal(4 * addrspace.MB))
	})

	It("should not clamp main_ram below its physical capacity", func() {
		descriptor, err := soc.MakeBuilder().
			WithMappedMemoryLimit(64 * addrspace.MB).
			Build()
		Expect(err).ToNot(HaveOccurred())

		mainRAM, err := descriptor.Region("main_ram")
		Expect(err).ToNot(HaveOccurred())
		Expect(mainRAM.Size).To(Equal(boards.M12L16161A().Capacity()))
	})

	It("should publish the flash boot address constant", func() {
		descriptor, err := soc.MakeBuilder().Build()
		Expect(err).ToNot(HaveOccurred())

		spiflash, err := descriptor.Region("spiflash")
		Expect(err).ToNot(HaveOccurred())

		Expect(descriptor.Constants["FLASH_BOOT_ADDRESS"]).
			To(Equal(spiflash.Base + soc.FlashBootOffset))
	})

	It("should synchronize both PLL outputs before peripherals bind", func() {
		descriptor, err := soc.MakeBuilder().Build()
		Expect(err).ToNot(HaveOccurred())

		for _, d := range descriptor.Domains {
			if d.Source == "" {
				continue
			}

			Expect(d.Reset).To(Equal(clocking.ResetAsyncSynchronized),
				"domain %s must be synchronized", d.Name)
			Expect(d.ResetGuard).ToNot(BeEmpty())
		}
	})

	It("should carry the configured strobe phase verbatim", func() {
		profile, err := boards.Colorlight5A75B("7.0")
		Expect(err).ToNot(HaveOccurred())
		profile.SDRAMPhaseDeg = 90

		descriptor, err := soc.MakeBuilderWithProfile(profile).Build()
		Expect(err).ToNot(HaveOccurred())

		var sysPS clocking.Domain
		for _, d := range descriptor.Domains {
			if d.Name == "sys_ps" {
				sysPS = d
			}
		}
		Expect(sysPS.PhaseDeg).To(Equal(90.0))
	})

	It("should leave the network PHY without an address region", func() {
		descriptor, err := soc.MakeBuilder().Build()
		Expect(err).ToNot(HaveOccurred())

		var ethphy peripheral.Peripheral
		for _, p := range descriptor.Peripherals {
			if p.Name == "ethphy" {
				ethphy = p
			}
		}
		Expect(ethphy.Kind).To(Equal(peripheral.KindNetworkPHY))
		Expect(ethphy.Region).To(BeNil())
	})

	It("should be deterministic", func() {
		first, err := soc.MakeBuilder().Build()
		Expect(err).ToNot(HaveOccurred())

		second, err := soc.MakeBuilder().Build()
		Expect(err).ToNot(HaveOccurred())

		Expect(second).To(Equal(first))

		var firstJSON, secondJSON bytes.Buffer
		Expect(first.WriteJSON(&firstJSON)).To(Succeed())
		Expect(second.WriteJSON(&secondJSON)).To(Succeed())
		Expect(secondJSON.Bytes()).To(Equal(firstJSON.Bytes()))
	})

	It("should panic on a zero mapped memory limit", func() {
		Expect(func() {
			_, _ = soc.MakeBuilder().WithMappedMemoryLimit(0).Build()
		}).To(Panic())
	})
})
