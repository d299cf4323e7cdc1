// Package workload is the Workload Model (WM) of spec.md §4.2: a pure
// lookup from benchmark name to the heaviness descriptors the hardware model
// consumes.
package workload

import "github.com/sarchlab/euf-controller/internal/model"

// Descriptor is the workload record the hardware model reads. spec.md §9
// notes the original exposes these as nullary accessors; plain fields are
// sufficient here since evaluation is neither lazy nor randomised.
type Descriptor struct {
	MemoryHeaviness   float64
	NoMemoryHeaviness float64
	AVXHeaviness      float64
	BranchHeaviness   float64
	ComputeHeaviness  float64
	CacheHeaviness    float64
	IPT               float64 // instructions per task
}

// Model is the workload model: a named table of benchmark descriptors.
type Model struct {
	benchmarks map[string]Descriptor
}

// New builds a Model from a benchmark-name-to-descriptor table, typically
// loaded from the external model files spec.md §4.1 treats as opaque.
func New(benchmarks map[string]Descriptor) *Model {
	table := make(map[string]Descriptor, len(benchmarks))
	for k, v := range benchmarks {
		table[k] = v
	}

	return &Model{benchmarks: table}
}

// Benchmarks returns the workload descriptor for name, or
// model.ErrUnknownBenchmark if name is not known to the model.
func (m *Model) Benchmarks(name string) (Descriptor, error) {
	d, ok := m.benchmarks[name]
	if !ok {
		return Descriptor{}, model.ErrUnknownBenchmark
	}

	return d, nil
}

// Names returns every benchmark name the model knows about, in no
// particular order. Used by the configuration cache to discover which
// benchmarks to pre-generate configurations for.
func (m *Model) Names() []string {
	names := make([]string, 0, len(m.benchmarks))
	for k := range m.benchmarks {
		names = append(names, k)
	}

	return names
}
