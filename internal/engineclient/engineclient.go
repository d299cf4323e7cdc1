// Package engineclient defines the contract the controller and telemetry
// puller use to talk to the execution engine, per spec.md §6. The engine
// itself, its transport, and its connection lifecycle are out of scope
// (spec.md §1); only the interface is specified here.
package engineclient

import "time"

// Worker is one schedulable execution context (a logical CPU) the
// controller can enable, disable, or retune.
type Worker interface {
	LocalID() int
	Enable() error
	Disable() error
	SetFrequency(kHz int64) error
}

// Point is one (timestamp, value) reading from a Monitor.
type Point struct {
	Timestamp time.Time
	Value     float64
}

// Monitor streams values for one counter.
type Monitor interface {
	// Values returns the ordered sequence of readings collected so far. If
	// refresh is true the monitor first forces a fresh read from the
	// engine.
	Values(refresh bool) ([]Point, error)
}

// Counter names one engine-exposed metric and exposes a Monitor for it.
type Counter interface {
	DistName() string
	Monitor() Monitor
}

// Benchmark is one benchmark known to a session.
type Benchmark interface {
	State() string
	Active() bool
}

// Profile is one configuration profile known to a session.
type Profile interface {
	Name() string
}

// Session is one engine session: a named collection of benchmarks and
// profiles, with the internal-but-documented activation surface spec.md §9
// says must be treated as public contract.
type Session interface {
	Name() string
	Benchmarks() map[string]Benchmark
	Profiles() map[string]Profile

	ActivateBenchmark(id string) error
	ActivateProfile(id string) error

	// Update forces a state refresh from the engine.
	Update() error
}

// Client is the full engine-client contract consumed by the controller and
// the telemetry puller.
type Client interface {
	Workers() ([]Worker, error)
	Counters() ([]Counter, error)
	Session(name string) (Session, error)

	// SessionNames returns every session name the engine currently knows
	// about, used by the control API's /benchmark/sessions route.
	SessionNames() ([]string, error)

	// EnergyManagement toggles the engine's own adaptive control loop.
	// Called once at startup with (false, false) to hand control fully to
	// this controller.
	EnergyManagement(loop, adapt bool) error
}

// Standard counter names the telemetry puller reads, per spec.md §4.6.
const (
	CounterTasksStarted  = "Tasks.Started"
	CounterTasksActive   = "Tasks.Active"
	CounterTasksFinished = "Tasks.Finished"
	CounterLatencyAvg    = "Tasks.LatencyAvg"
)
