package model

// ControllerState is the singleton state of spec.md §3: the desired-mode
// flag toggled by the API, the pending-update request flag, the committed
// active configuration, and the candidate sets used for selection and
// visualisation.
//
// This is a plain value type; spec.md §9 is explicit that the "global
// mutable state is intentional" but should be modelled as an owned record
// whose sole mutator is the tick loop, with API handlers reaching it via
// dependency injection rather than a process-level singleton. The owning
// mutator here is controller.Controller, which embeds a ControllerState
// behind its own mutex.
type ControllerState struct {
	Enabled       bool
	PendingUpdate bool

	ActiveConfig *Configuration

	CurrentCandidates []Configuration
	AllCandidates     []Configuration

	LastState      BenchmarkState
	LastStateKnown bool
}

// Snapshot returns a deep-enough copy of s suitable for handing to a reader
// (e.g. the HTTP API) without risking aliasing the tick loop's working
// copy.
func (s ControllerState) Snapshot() ControllerState {
	out := s

	out.CurrentCandidates = append([]Configuration(nil), s.CurrentCandidates...)
	out.AllCandidates = append([]Configuration(nil), s.AllCandidates...)

	if s.LastStateKnown {
		out.LastState = s.LastState.Clone()
	}

	return out
}
