package telemetry

import (
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

// GopsutilFallbackReader is a RAPLReader used when no real
// /sys/class/powercap RAPL interface is wired in (e.g. running the
// controller inside a container). It reports a power estimate proxied from
// host CPU utilisation rather than the hard zero-fill spec.md §4.6 allows,
// grounded on the teacher's use of github.com/shirou/gopsutil for process
// stats in monitoring/monitor.go.
//
// It integrates the instantaneous wattage estimate into a monotonically
// increasing joule counter so that Snapshot.Sub, which expects a RAPL-style
// energy counter, recovers the correct average wattage across an interval.
type GopsutilFallbackReader struct {
	// WattsAtFullLoad is the assumed package+DRAM wattage at 100% overall
	// CPU utilisation; the estimate scales linearly with utilisation below
	// that.
	WattsAtFullLoad float64

	mu         sync.Mutex
	joules     float64
	lastSample time.Time
}

// Read samples overall CPU utilisation instantaneously and returns a
// synthetic RAPL snapshot whose package-0 joule counter has been advanced by
// the estimated wattage times the time elapsed since the previous Read.
func (r *GopsutilFallbackReader) Read() (Snapshot, error) {
	percents, err := cpu.Percent(0, false)
	if err != nil || len(percents) == 0 {
		return Snapshot{}, ErrRAPLUnavailable
	}

	watts := r.WattsAtFullLoad * percents[0] / 100.0
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.lastSample.IsZero() {
		r.joules += watts * now.Sub(r.lastSample).Seconds()
	}

	r.lastSample = now

	return Snapshot{
		Timestamp: now,
		Domains: map[string]Reading{
			DomainPackage0: {Joules: r.joules},
		},
	}, nil
}
