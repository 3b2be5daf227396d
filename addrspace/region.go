// Package addrspace owns the CPU-visible memory map of a composed SoC.
// It hands out named, non-overlapping address regions and reconciles
// physical device capacity with the window the address map may expose.
package addrspace

// Capacity units.
const (
	KB uint64 = 1 << 10
	MB uint64 = 1 << 20
	GB uint64 = 1 << 30
)

// A Region is a half-open interval [Base, Base+Size) in the CPU address
// space, identified by a unique name.
type Region struct {
	Name string
	Base uint64
	Size uint64
}

// End returns the first address past the region.
func (r Region) End() uint64 {
	return r.Base + r.Size
}

// Overlaps reports whether two regions share at least one address.
func (r Region) Overlaps(other Region) bool {
	return r.Base < other.End() && other.Base < r.End()
}
