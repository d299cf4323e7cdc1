package model

import "errors"

// Sentinel errors raised by the hardware/workload model layer and by the
// engine client, classified per spec.md §7.
var (
	// ErrUnknownBenchmark is returned by the workload model and propagated
	// through the configuration generator when a benchmark name has no
	// known workload descriptor. Callers skip the affected benchmark
	// rather than treating this as fatal.
	ErrUnknownBenchmark = errors.New("model: unknown benchmark")

	// ErrEngineUnavailable is returned by the engine client when a
	// connect or request fails. Fatal at startup, recoverable at runtime.
	ErrEngineUnavailable = errors.New("model: engine unavailable")

	// ErrModelUnavailable is returned when the hardware or workload model
	// data cannot be loaded at all. Always fatal at startup.
	ErrModelUnavailable = errors.New("model: hardware/workload model unavailable")

	// ErrTelemetryUnavailable marks a RAPL or engine-counter read that
	// produced no usable sample. Never fatal.
	ErrTelemetryUnavailable = errors.New("model: telemetry unavailable")
)
