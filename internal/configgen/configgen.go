// Package configgen is the Configuration Generator (CG) of spec.md §4.3: it
// enumerates the Cartesian product of the hardware model's tuning axes and
// evaluates the hardware and workload models at every point.
package configgen

import (
	"github.com/sarchlab/euf-controller/internal/hwmodel"
	"github.com/sarchlab/euf-controller/internal/model"
	"github.com/sarchlab/euf-controller/internal/workload"
)

// Generator produces every Configuration for a benchmark by evaluating the
// hardware model over its published tuning axes.
type Generator struct {
	hw *hwmodel.Model
	wm *workload.Model
}

// New builds a Generator from a hardware model and a workload model.
func New(hw *hwmodel.Model, wm *workload.Model) *Generator {
	return &Generator{hw: hw, wm: wm}
}

// Generate returns every Configuration over freqs x cores x hts for
// benchmark name. The enumeration order is unspecified and downstream
// consumers (pareto.Reduce, configcache) must not rely on it. Returns
// model.ErrUnknownBenchmark if name is not known to the workload model.
func (g *Generator) Generate(name string) ([]model.Configuration, error) {
	desc, err := g.wm.Benchmarks(name)
	if err != nil {
		return nil, err
	}

	out := make([]model.Configuration, 0, len(g.hw.FreqsKHz)*len(g.hw.Cores)*len(g.hw.HTs))

	for _, freq := range g.hw.FreqsKHz {
		for _, cores := range g.hw.Cores {
			for _, ht := range g.hw.HTs {
				cpus := cores
				if ht {
					cpus = 2 * cores
				}

				ipc := g.hw.IPC(desc, cpus, freq, ht)
				pPkg := g.hw.PPkg(desc, cpus, freq, ht)
				pRam := g.hw.PRam(desc, cpus, freq, ht)

				power := pPkg + pRam

				var tps float64
				if desc.IPT > 0 && ipc > 0 {
					// freq is in kHz; tps is tasks/second, not tasks/cycle.
					cyclesPerTask := desc.IPT / ipc
					tps = (float64(freq) * 1000) / cyclesPerTask
				}

				out = append(out, model.New(freq, cores, ht, ipc, power, tps))
			}
		}
	}

	return out, nil
}
