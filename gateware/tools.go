package gateware

import "github.com/gatefab/socforge/soc"

//go:generate mockgen -destination "mock_gateware_test.go" -package gateware_test github.com/gatefab/socforge/gateware Synthesizer,Programmer

// A Synthesizer turns a frozen descriptor into a bitstream. It returns
// the artifact path, or an error carrying the toolchain's diagnostics.
type Synthesizer interface {
	Synthesize(descriptor *soc.Descriptor, outputDir string) (string, error)
}

// A Programmer loads an artifact onto a device through the given
// cable/probe identifier.
type Programmer interface {
	Program(artifactPath, cable string) error
}
