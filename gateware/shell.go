package gateware

import (
	"errors"
	"os/exec"

	"github.com/gatefab/socforge/soc"
)

// ShellSynthesizer runs the flow script written by WriteBuildInputs
// through a shell. The script is the synthesis collaborator's entry
// point; its combined output is captured for failure reporting.
type ShellSynthesizer struct {
	Shell string
}

// NewShellSynthesizer creates a synthesizer running "sh".
func NewShellSynthesizer() ShellSynthesizer {
	return ShellSynthesizer{Shell: "sh"}
}

// Synthesize runs the flow and returns the bitstream path.
func (s ShellSynthesizer) Synthesize(
	descriptor *soc.Descriptor,
	outputDir string,
) (string, error) {
	cmd := exec.Command(s.Shell, FlowScript)
	cmd.Dir = outputDir

	if err := runTool(s.Shell+" "+FlowScript, cmd); err != nil {
		return "", err
	}

	return ArtifactPath(descriptor, outputDir), nil
}

// OpenFPGALoader programs devices through the openFPGALoader tool.
type OpenFPGALoader struct {
	Command string
}

// NewOpenFPGALoader creates a programmer invoking "openFPGALoader".
func NewOpenFPGALoader() OpenFPGALoader {
	return OpenFPGALoader{Command: "openFPGALoader"}
}

// Program loads the artifact through the given cable.
func (p OpenFPGALoader) Program(artifactPath, cable string) error {
	cmd := exec.Command(p.Command, "-c", cable, artifactPath)

	return runTool(p.Command, cmd)
}

// runTool executes an external tool, wrapping a non-zero exit in an
// ExternalToolFailure that preserves the tool's diagnostic output.
func runTool(tool string, cmd *exec.Cmd) error {
	output, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	return ExternalToolFailure{
		Tool:     tool,
		ExitCode: exitCode,
		Output:   string(output),
		Cause:    err,
	}
}
