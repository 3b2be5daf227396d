package gateware

import (
	"github.com/rs/zerolog"

	"github.com/gatefab/socforge/soc"
)

// An Orchestrator sequences one build-and-deploy run. It is not safe
// for concurrent use; concurrent builds need one orchestrator and one
// output directory each.
type Orchestrator struct {
	synthesizer Synthesizer
	programmer  Programmer
	logger      zerolog.Logger

	state    State
	artifact *Artifact
}

// NewOrchestrator creates an orchestrator in the Unbuilt state.
func NewOrchestrator(
	synthesizer Synthesizer,
	programmer Programmer,
	logger zerolog.Logger,
) *Orchestrator {
	return &Orchestrator{
		synthesizer: synthesizer,
		programmer:  programmer,
		logger:      logger,
		state:       StateUnbuilt,
	}
}

// State returns the current pipeline state.
func (o *Orchestrator) State() State {
	return o.state
}

// Artifact returns the artifact of a successful build, or nil.
func (o *Orchestrator) Artifact() *Artifact {
	return o.artifact
}

// Build prepares the build inputs in outputDir and, if run is true,
// invokes the synthesis collaborator. With run false the state stays
// Unbuilt, allowing inspection-only runs. A synthesis failure is
// surfaced unmodified and is terminal for this orchestrator.
func (o *Orchestrator) Build(
	descriptor *soc.Descriptor,
	outputDir string,
	run bool,
) (*Artifact, error) {
	if o.state != StateUnbuilt {
		return nil, InvalidStateError{Op: "build", State: o.state}
	}

	if err := WriteBuildInputs(descriptor, outputDir); err != nil {
		return nil, err
	}

	o.logger.Info().
		Str("board", descriptor.Board).
		Str("output", outputDir).
		Bool("run", run).
		Msg("build inputs prepared")

	if !run {
		return nil, nil
	}

	path, err := o.synthesizer.Synthesize(descriptor, outputDir)
	if err != nil {
		o.state = StateBuildFailed
		o.logger.Error().Err(err).Msg("synthesis failed")

		return nil, err
	}

	o.artifact = &Artifact{
		Path:  path,
		Board: descriptor.Board + " r" + descriptor.Revision,
		OK:    true,
	}
	o.state = StateBuilt

	o.logger.Info().Str("artifact", path).Msg("synthesis succeeded")

	return o.artifact, nil
}

// Load programs the artifact through the given cable. It is only legal
// directly after a successful Build in this same orchestrator; an
// artifact lying on disk from an earlier run is not trusted.
func (o *Orchestrator) Load(artifact *Artifact, cable string) error {
	if o.state != StateBuilt {
		return InvalidStateError{Op: "load", State: o.state}
	}

	if err := o.programmer.Program(artifact.Path, cable); err != nil {
		o.state = StateLoadFailed
		o.logger.Error().Err(err).Msg("programming failed")

		return err
	}

	o.state = StateLoaded
	o.logger.Info().Str("cable", cable).Msg("device programmed")

	return nil
}
