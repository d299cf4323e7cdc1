// Package benchstate is the Benchmark State Watcher (BSW) of spec.md §4.7:
// on every tick it snapshots every benchmark's (state, active) pair and
// reports whether anything changed since the previous refresh.
package benchstate

import (
	"github.com/sarchlab/euf-controller/internal/engineclient"
	"github.com/sarchlab/euf-controller/internal/model"
)

// Watcher tracks a session's benchmark states across ticks.
type Watcher struct {
	session     engineclient.Session
	previous    model.BenchmarkState
	hasPrevious bool
}

// New builds a Watcher over the given session.
func New(session engineclient.Session) *Watcher {
	return &Watcher{session: session}
}

// Refresh snapshots the session's current benchmark states, compares them to
// the previous refresh, and returns (changed, snapshot). The first refresh
// after construction is always reported as changed, per spec.md §4.7.
func (w *Watcher) Refresh() (bool, model.BenchmarkState) {
	current := make(model.BenchmarkState, len(w.session.Benchmarks()))

	for name, b := range w.session.Benchmarks() {
		current[name] = model.BenchmarkStatus{
			State:  model.Lifecycle(b.State()),
			Active: b.Active(),
		}
	}

	changed := !w.hasPrevious || !current.Equal(w.previous)

	w.previous = current.Clone()
	w.hasPrevious = true

	return changed, current
}
