package gateware

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/gatefab/socforge/soc"
)

// DeviceTreeFlow shells out to the device-tree collaborators: a
// generator that turns the descriptor JSON into device-tree source,
// and the device-tree compiler producing the binary blob.
type DeviceTreeFlow struct {
	Generator string
	Compiler  string
}

// NewDeviceTreeFlow creates a flow using json2dts and dtc.
func NewDeviceTreeFlow() DeviceTreeFlow {
	return DeviceTreeFlow{
		Generator: "json2dts",
		Compiler:  "dtc",
	}
}

// Generate produces <board>.dts next to the descriptor JSON. The
// generator receives the descriptor path and emits device-tree source
// on stdout.
func (f DeviceTreeFlow) Generate(
	descriptor *soc.Descriptor,
	outputDir string,
) (string, error) {
	descriptorPath := filepath.Join(outputDir, DescriptorFile)
	dtsPath := filepath.Join(outputDir, descriptor.Board+".dts")

	cmd := exec.Command(f.Generator, descriptorPath)

	output, err := cmd.Output()
	if err != nil {
		exitCode := -1
		diagnostic := ""

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
			diagnostic = string(exitErr.Stderr)
		}

		return "", ExternalToolFailure{
			Tool:     f.Generator,
			ExitCode: exitCode,
			Output:   diagnostic,
			Cause:    err,
		}
	}

	if err := os.WriteFile(dtsPath, output, 0644); err != nil {
		return "", err
	}

	return dtsPath, nil
}

// Compile turns device-tree source into a binary blob.
func (f DeviceTreeFlow) Compile(dtsPath string) (string, error) {
	dtbPath := dtsPath[:len(dtsPath)-len(".dts")] + ".dtb"

	cmd := exec.Command(f.Compiler, "-O", "dtb", "-o", dtbPath, dtsPath)

	if err := runTool(f.Compiler, cmd); err != nil {
		return "", err
	}

	return dtbPath, nil
}
