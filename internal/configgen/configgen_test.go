package configgen_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/euf-controller/internal/configgen"
	"github.com/sarchlab/euf-controller/internal/hwmodel"
	"github.com/sarchlab/euf-controller/internal/model"
	"github.com/sarchlab/euf-controller/internal/workload"
)

// stubModel reproduces the spec.md §8 end-to-end fixture: freqs={1.2M,2.4M}
// cores={2,4} hts={0,1}, ipt=10_000, ipc=1, P_PKG=cpus*0.5*(freq/2.4M),
// P_Ram=1.
func stubModel() (*hwmodel.Model, *workload.Model) {
	axes := hwmodel.Axes{
		FreqsKHz: []int64{1_200_000, 2_400_000},
		Cores:    []int{2, 4},
		HTs:      []bool{false, true},
	}

	hw := &hwmodel.Model{
		Axes: axes,
		IPCFunc: func(workload.Descriptor, int, int64, bool) float64 {
			return 1
		},
		PPkgFunc: func(_ workload.Descriptor, cpus int, freqKHz int64, _ bool) float64 {
			return float64(cpus) * 0.5 * (float64(freqKHz) / 2_400_000.0)
		},
		PCoreFunc: func(workload.Descriptor, int, int64, bool) float64 {
			return 0
		},
		PRamFunc: func(workload.Descriptor, int, int64, bool) float64 {
			return 1
		},
	}

	wm := workload.New(map[string]workload.Descriptor{
		"B": {IPT: 10_000},
	})

	return hw, wm
}

var _ = Describe("Generate", func() {
	It("produces the full cartesian product", func() {
		hw, wm := stubModel()
		g := configgen.New(hw, wm)

		cfgs, err := g.Generate("B")

		Expect(err).NotTo(HaveOccurred())
		Expect(cfgs).To(HaveLen(2 * 2 * 2))
	})

	It("matches the spec's worked example for (cores=2, ht=false, freq=1.2GHz)", func() {
		hw, wm := stubModel()
		g := configgen.New(hw, wm)

		cfgs, err := g.Generate("B")
		Expect(err).NotTo(HaveOccurred())

		var found model.Configuration
		for _, c := range cfgs {
			if c.FreqKHz == 1_200_000 && c.Cores == 2 && !c.HT {
				found = c
			}
		}

		// P_PKG = cpus*0.5*(freq/2.4M) = 2*0.5*0.5 = 0.5; P_Ram = 1 -> 1.5W.
		Expect(found.PowerW).To(BeNumerically("~", 1.5, 1e-9))
		Expect(found.TPS).To(BeNumerically("~", 120_000, 1e-6))
	})

	It("propagates unknown benchmark errors from the workload model", func() {
		hw, wm := stubModel()
		g := configgen.New(hw, wm)

		_, err := g.Generate("nope")
		Expect(err).To(MatchError(model.ErrUnknownBenchmark))
	})
})
