// Package gateware drives the build-and-deploy pipeline for a frozen
// SoC descriptor: synthesis through an external toolchain, then
// optional device programming. Both collaborators are blocking
// processes; neither is retried, since their failures are
// deterministic for fixed inputs and hardware state.
package gateware

// State of one orchestration. Legal transitions:
// Unbuilt -> Built -> (Loaded | LoadFailed), Unbuilt -> BuildFailed.
type State int

const (
	StateUnbuilt State = iota
	StateBuilt
	StateBuildFailed
	StateLoaded
	StateLoadFailed
)

func (s State) String() string {
	switch s {
	case StateUnbuilt:
		return "unbuilt"
	case StateBuilt:
		return "built"
	case StateBuildFailed:
		return "build-failed"
	case StateLoaded:
		return "loaded"
	case StateLoadFailed:
		return "load-failed"
	default:
		return "unknown"
	}
}

// An Artifact is the product of a successful synthesis run.
type Artifact struct {
	Path  string
	Board string
	OK    bool
}
