// Package model holds the value types shared by every layer of the
// energy-utility feedback controller: the tuned Configuration record, the
// per-benchmark ConfigurationSet cache entry, and the sentinel errors raised
// by the hardware/workload models.
package model

import "fmt"

// Configuration is an immutable operating point of the controlled hardware:
// a frequency, a core count, and a hyperthreading flag, together with the
// modelled performance and power figures the hardware model produced for it.
//
// Equality is defined over (FreqKHz, Cores, HT) only; IPC, PowerW, TPS, and
// EPR are derived and never participate in Equal or in hashing through Key.
// The controller relies on this: it decides whether to push a reconfiguration
// to the engine by comparing Configurations with Equal, not with
// reflect.DeepEqual.
type Configuration struct {
	FreqKHz int64
	Cores   int
	HT      bool
	CPUs    int

	IPC    float64
	PowerW float64
	TPS    float64
	EPR    float64
}

// New builds a Configuration, deriving CPUs from Cores and HT.
func New(freqKHz int64, cores int, ht bool, ipc, powerW, tps float64) Configuration {
	cpus := cores
	if ht {
		cpus = 2 * cores
	}

	epr := 0.0
	if tps > 0 {
		epr = powerW / tps
	}

	return Configuration{
		FreqKHz: freqKHz,
		Cores:   cores,
		HT:      ht,
		CPUs:    cpus,
		IPC:     ipc,
		PowerW:  powerW,
		TPS:     tps,
		EPR:     epr,
	}
}

// Key is the tuple Equal compares: (FreqKHz, Cores, HT).
type Key struct {
	FreqKHz int64
	Cores   int
	HT      bool
}

// Key returns the identity tuple of c.
func (c Configuration) Key() Key {
	return Key{FreqKHz: c.FreqKHz, Cores: c.Cores, HT: c.HT}
}

// Equal reports whether c and other share the same (freq, cores, ht),
// ignoring every derived field. This is the equality spec.md §3 calls
// load-bearing for commit decisions.
func (c Configuration) Equal(other Configuration) bool {
	return c.Key() == other.Key()
}

func (c Configuration) String() string {
	return fmt.Sprintf("cfg(freq=%dkHz cores=%d ht=%v tps=%.1f power=%.2fW)",
		c.FreqKHz, c.Cores, c.HT, c.TPS, c.PowerW)
}

// ConfigurationSet is the per-benchmark memoised result of running the
// configuration generator followed by the Pareto reducer: the full
// candidate list for visualisation, and the non-dominated subset used for
// selection.
type ConfigurationSet struct {
	All    []Configuration
	Pareto []Configuration
}
