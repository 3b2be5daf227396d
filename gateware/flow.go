package gateware

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gatefab/socforge/soc"
)

// Build-input filenames inside the output directory.
const (
	DescriptorFile = "descriptor.json"
	FlowScript     = "build.sh"
)

// WriteBuildInputs writes the descriptor JSON and the synthesis flow
// script into the output directory. This is the inspection-only half
// of a build: nothing external runs.
func WriteBuildInputs(descriptor *soc.Descriptor, outputDir string) error {
	if err := os.MkdirAll(
		filepath.Join(outputDir, "gateware"), 0755); err != nil {
		return err
	}

	descriptorPath := filepath.Join(outputDir, DescriptorFile)
	f, err := os.Create(descriptorPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := descriptor.WriteJSON(f); err != nil {
		return err
	}

	script, err := flowScript(descriptor)
	if err != nil {
		return err
	}

	scriptPath := filepath.Join(outputDir, FlowScript)

	return os.WriteFile(scriptPath, []byte(script), 0755)
}

// ArtifactPath returns where the flow deposits the bitstream.
func ArtifactPath(descriptor *soc.Descriptor, outputDir string) string {
	return filepath.Join(outputDir, "gateware", descriptor.Board+".bit")
}

// flowScript renders the yosys/nextpnr/ecppack command sequence for
// the descriptor's device. The HDL input it consumes is produced by
// the hardware-description collaborator, not here.
func flowScript(descriptor *soc.Descriptor) (string, error) {
	size, pkg, err := nextpnrDevice(descriptor.Device)
	if err != nil {
		return "", err
	}

	top := descriptor.Board

	var b strings.Builder
	fmt.Fprintf(&b, "#!/usr/bin/env sh\nset -e\ncd gateware\n")
	fmt.Fprintf(&b,
		"yosys -l %s-yosys.log -p \"synth_ecp5 -json %s.json\" %s.v\n",
		top, top, top)
	fmt.Fprintf(&b,
		"nextpnr-ecp5 --json %s.json --textcfg %s.config --%s --package %s\n",
		top, top, size, pkg)
	fmt.Fprintf(&b,
		"ecppack --svf %s.svf %s.config %s.bit\n", top, top, top)

	return b.String(), nil
}

// nextpnrDevice maps a Lattice device string like LFE5U-25F-6BG256C to
// the nextpnr-ecp5 size and package arguments.
func nextpnrDevice(device string) (size, pkg string, err error) {
	parts := strings.Split(device, "-")
	if len(parts) != 3 || !strings.HasPrefix(parts[0], "LFE5U") {
		return "", "", fmt.Errorf("unsupported device %s", device)
	}

	size = strings.ToLower(strings.TrimSuffix(parts[1], "F")) + "k"

	grade := parts[2]
	switch {
	case strings.Contains(grade, "BG256"):
		pkg = "CABGA256"
	case strings.Contains(grade, "BG381"):
		pkg = "CABGA381"
	default:
		return "", "", fmt.Errorf("unsupported package in device %s", device)
	}

	return size, pkg, nil
}
