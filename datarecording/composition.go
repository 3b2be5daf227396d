package datarecording

import (
	"github.com/gatefab/socforge/gateware"
	"github.com/gatefab/socforge/soc"
)

// Table rows. Entries are flat structs so the writer can derive the
// schema from their fields.

// RegionEntry is one row of the regions table.
type RegionEntry struct {
	Name string
	Base uint64
	Size uint64
}

// DomainEntry is one row of the clock_domains table.
type DomainEntry struct {
	Name       string
	Source     string
	FreqHz     float64
	PhaseDeg   float64
	ResetGuard string
}

// PeripheralEntry is one row of the peripherals table.
type PeripheralEntry struct {
	Name   string
	Kind   string
	Region string
	Clock  string
}

// ConstantEntry is one row of the constants table.
type ConstantEntry struct {
	Name  string
	Value uint64
}

// BuildRunEntry is one row of the build_runs table.
type BuildRunEntry struct {
	ID       string
	Board    string
	State    string
	Artifact string
}

// RecordComposition writes the frozen descriptor into the recorder.
func RecordComposition(r DataRecorder, d *soc.Descriptor) {
	r.CreateTable("regions", RegionEntry{})
	for _, region := range d.Regions {
		r.InsertData("regions", RegionEntry{
			Name: region.Name,
			Base: region.Base,
			Size: region.Size,
		})
	}

	r.CreateTable("clock_domains", DomainEntry{})
	for _, domain := range d.Domains {
		r.InsertData("clock_domains", DomainEntry{
			Name:       domain.Name,
			Source:     domain.Source,
			FreqHz:     float64(domain.Freq),
			PhaseDeg:   domain.PhaseDeg,
			ResetGuard: domain.ResetGuard,
		})
	}

	r.CreateTable("peripherals", PeripheralEntry{})
	for _, p := range d.Peripherals {
		entry := PeripheralEntry{
			Name: p.Name,
			Kind: p.Kind.String(),
		}
		if p.Region != nil {
			entry.Region = p.Region.Name
		}
		if p.Clock != nil {
			entry.Clock = p.Clock.Name
		}

		r.InsertData("peripherals", entry)
	}

	r.CreateTable("constants", ConstantEntry{})
	for name, value := range d.Constants {
		r.InsertData("constants", ConstantEntry{Name: name, Value: value})
	}

	r.Flush()
}

// RecordBuildRun writes the outcome of one orchestration. The table is
// created on first use.
func RecordBuildRun(
	r DataRecorder,
	runID string,
	d *soc.Descriptor,
	state gateware.State,
	artifact *gateware.Artifact,
) {
	created := false
	for _, name := range r.ListTables() {
		if name == "build_runs" {
			created = true
		}
	}
	if !created {
		r.CreateTable("build_runs", BuildRunEntry{})
	}

	entry := BuildRunEntry{
		ID:    runID,
		Board: d.Board + " r" + d.Revision,
		State: state.String(),
	}
	if artifact != nil {
		entry.Artifact = artifact.Path
	}

	r.InsertData("build_runs", entry)
	r.Flush()
}
