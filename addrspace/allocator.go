package addrspace

import "sort"

// An Allocator assigns named regions in one address space and rejects
// any assignment that would make two regions share an address. It is
// append-only: regions are never removed, and after Freeze the
// allocator refuses further allocation.
type Allocator struct {
	regions   []Region
	nameIndex map[string]int
	frozen    bool
}

// NewAllocator creates an empty Allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		nameIndex: make(map[string]int),
	}
}

// Allocate registers the region [base, base+size) under the given name.
func (a *Allocator) Allocate(name string, base, size uint64) (Region, error) {
	if a.frozen {
		panic("allocating on a frozen allocator")
	}

	if size == 0 {
		panic("region " + name + " must have a non-zero size")
	}

	if _, exists := a.nameIndex[name]; exists {
		return Region{}, RegionRedefinedError{Name: name}
	}

	r := Region{Name: name, Base: base, Size: size}
	for _, existing := range a.regions {
		if r.Overlaps(existing) {
			return Region{}, RegionOverlapError{New: r, Existing: existing}
		}
	}

	a.regions = append(a.regions, r)
	a.nameIndex[name] = len(a.regions) - 1

	return r, nil
}

// Resolve returns the region allocated under the given name.
func (a *Allocator) Resolve(name string) (Region, error) {
	i, exists := a.nameIndex[name]
	if !exists {
		return Region{}, RegionNotFoundError{Name: name}
	}

	return a.regions[i], nil
}

// Clamp reconciles a device's physical capacity with the window the
// address map may expose for it. The caller allocates the named region
// with the returned size; the allocator never stores it implicitly.
func (a *Allocator) Clamp(name string, requested, max uint64) uint64 {
	if requested > max {
		return max
	}

	return requested
}

// Regions returns a copy of the allocated regions sorted by base
// address.
func (a *Allocator) Regions() []Region {
	regions := make([]Region, len(a.regions))
	copy(regions, a.regions)

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Base < regions[j].Base
	})

	return regions
}

// Freeze ends the allocation phase and returns the final map. The
// allocator must not be used for allocation afterwards.
func (a *Allocator) Freeze() []Region {
	a.frozen = true
	return a.Regions()
}
