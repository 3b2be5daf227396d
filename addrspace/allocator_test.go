package addrspace_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gatefab/socforge/addrspace"
)

var _ = Describe("Allocator", func() {
	var allocator *addrspace.Allocator

	BeforeEach(func() {
		allocator = addrspace.NewAllocator()
	})

	It("should allocate disjoint regions", func() {
		_, err := allocator.Allocate("rom", 0x0, 0x8000)
		Expect(err).ToNot(HaveOccurred())

		_, err = allocator.Allocate("sram", 0x10000000, 0x1000)
		Expect(err).ToNot(HaveOccurred())

		_, err = allocator.Allocate("main_ram", 0x40000000, 0x400000)
		Expect(err).ToNot(HaveOccurred())

		Expect(allocator.Regions()).To(HaveLen(3))
	})

	It("should reject an overlapping region", func() {
		_, err := allocator.Allocate("main_ram", 0x40000000, 0x400000)
		Expect(err).ToNot(HaveOccurred())

		_, err = allocator.Allocate("extra", 0x40000000, 0x100)
		Expect(err).To(BeAssignableToTypeOf(addrspace.RegionOverlapError{}))

		overlap := err.(addrspace.RegionOverlapError)
		Expect(overlap.New.Name).To(Equal("extra"))
		Expect(overlap.Existing.Name).To(Equal("main_ram"))
	})

	It("should reject a region overlapping the tail of another", func() {
		_, err := allocator.Allocate("sram", 0x10000000, 0x1000)
		Expect(err).ToNot(HaveOccurred())

		_, err = allocator.Allocate("extra", 0x10000fff, 0x10)
		Expect(err).To(BeAssignableToTypeOf(addrspace.RegionOverlapError{}))
	})

	It("should allow regions that touch without overlapping", func() {
		_, err := allocator.Allocate("a", 0x1000, 0x1000)
		Expect(err).ToNot(HaveOccurred())

		_, err = allocator.Allocate("b", 0x2000, 0x1000)
		Expect(err).ToNot(HaveOccurred())
	})

	It("should reject redefining a name", func() {
		_, err := allocator.Allocate("rom", 0x0, 0x8000)
		Expect(err).ToNot(HaveOccurred())

		_, err = allocator.Allocate("rom", 0x90000000, 0x8000)
		Expect(err).To(Equal(addrspace.RegionRedefinedError{Name: "rom"}))
	})

	It("should resolve an allocated region", func() {
		allocated, err := allocator.Allocate("csr", 0x82000000, 0x10000)
		Expect(err).ToNot(HaveOccurred())

		resolved, err := allocator.Resolve("csr")
		Expect(err).ToNot(HaveOccurred())
		Expect(resolved).To(Equal(allocated))
	})

	It("should fail to resolve an unknown region", func() {
		_, err := allocator.Resolve("nope")
		Expect(err).To(Equal(addrspace.RegionNotFoundError{Name: "nope"}))
	})

	It("should clamp a request above the window limit", func() {
		size := allocator.Clamp("main_ram", 16*addrspace.MB, 4*addrspace.MB)
		Expect(size).To(Equal(4 * addrspace.MB))
	})

	It("should pass through a request within the window limit", func() {
		size := allocator.Clamp("main_ram", 2*addrspace.MB, 4*addrspace.MB)
		Expect(size).To(Equal(2 * addrspace.MB))
	})

	It("should sort regions by base address", func() {
		_, err := allocator.Allocate("main_ram", 0x40000000, 0x400000)
		Expect(err).ToNot(HaveOccurred())

		_, err = allocator.Allocate("rom", 0x0, 0x8000)
		Expect(err).ToNot(HaveOccurred())

		regions := allocator.Regions()
		Expect(regions[0].Name).To(Equal("rom"))
		Expect(regions[1].Name).To(Equal("main_ram"))
	})

	It("should panic when allocating after freeze", func() {
		allocator.Freeze()

		Expect(func() {
			_, _ = allocator.Allocate("late", 0x0, 0x100)
		}).To(Panic())
	})
})
