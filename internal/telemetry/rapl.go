package telemetry

import "time"

// Reading is one domain's energy-counter value in joules, as RAPL reports
// it, per spec.md §6.
type Reading struct {
	Joules float64
}

// RAPL domain names used by the telemetry puller.
const (
	DomainPackage0 = "package-0"
	DomainDRAM     = "dram"
)

// Snapshot is a point-in-time read of the RAPL energy counters. RAPL energy
// counters are monotonically increasing and wrap around at an
// implementation-defined ceiling; Sub accounts for that, resolving the
// "supporting subtraction" contract of spec.md §6 against the wraparound
// behaviour original_source/util/rapl.py implements.
type Snapshot struct {
	Timestamp time.Time
	Domains   map[string]Reading
	Ceiling   float64 // wraparound ceiling in joules; 0 disables wraparound handling
}

// Delta is the energy consumed between two Snapshots, in watts, derived
// from the joule difference divided by the elapsed time.
type Delta struct {
	Timestamp time.Time
	Watts     map[string]float64
}

// Sub computes the per-domain wattage consumed between prev and s. Domains
// present only in one snapshot are ignored. A counter that decreased is
// assumed to have wrapped at s.Ceiling and the difference is corrected
// accordingly; with Ceiling == 0 a decrease is clamped to zero instead.
func (s Snapshot) Sub(prev Snapshot) Delta {
	elapsed := s.Timestamp.Sub(prev.Timestamp).Seconds()

	d := Delta{Timestamp: s.Timestamp, Watts: make(map[string]float64, len(s.Domains))}

	if elapsed <= 0 {
		return d
	}

	for name, cur := range s.Domains {
		prevReading, ok := prev.Domains[name]
		if !ok {
			continue
		}

		joules := cur.Joules - prevReading.Joules
		if joules < 0 {
			if s.Ceiling > 0 {
				joules += s.Ceiling
			} else {
				joules = 0
			}
		}

		d.Watts[name] = joules / elapsed
	}

	return d
}

// PackageAndDRAMWatts sums the package-0 and dram domains of d, the
// actual_watts figure spec.md §4.6 computes from a RAPL delta.
func (d Delta) PackageAndDRAMWatts() float64 {
	return d.Watts[DomainPackage0] + d.Watts[DomainDRAM]
}

// RAPLReader reads successive RAPL snapshots. Unavailable hardware (no
// /sys/class/powercap, container without the capability, etc.) is signalled
// by returning an error such as ErrRAPLUnavailable.
type RAPLReader interface {
	Read() (Snapshot, error)
}
