package addrspace

import "fmt"

// RegionOverlapError is returned when a new region intersects one that
// is already allocated.
type RegionOverlapError struct {
	New      Region
	Existing Region
}

func (e RegionOverlapError) Error() string {
	return fmt.Sprintf(
		"region %s [0x%08x, 0x%08x) overlaps %s [0x%08x, 0x%08x)",
		e.New.Name, e.New.Base, e.New.End(),
		e.Existing.Name, e.Existing.Base, e.Existing.End())
}

// RegionRedefinedError is returned when a region name is allocated twice.
type RegionRedefinedError struct {
	Name string
}

func (e RegionRedefinedError) Error() string {
	return fmt.Sprintf("region %s is already allocated", e.Name)
}

// RegionNotFoundError is returned when resolving a name that was never
// allocated.
type RegionNotFoundError struct {
	Name string
}

func (e RegionNotFoundError) Error() string {
	return fmt.Sprintf("region %s is not allocated", e.Name)
}
