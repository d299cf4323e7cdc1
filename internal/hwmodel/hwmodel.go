// Package hwmodel is the Hardware Model (HM) of spec.md §4.1: pure,
// deterministic, side-effect-free functions mapping a workload descriptor
// and a tuning point (cpus, frequency, hyperthreading) to IPC and power.
// Frequencies are in kHz; power is in watts.
package hwmodel

import "github.com/sarchlab/euf-controller/internal/workload"

// Axes are the discrete tuning axes HM publishes, per spec.md §4.1: every
// allowed frequency, core count, and hyperthreading value. Evaluation via
// the configuration generator enumerates their Cartesian product.
type Axes struct {
	FreqsKHz []int64
	Cores    []int
	HTs      []bool
}

// MaxFreq returns the highest frequency in a.FreqsKHz.
func (a Axes) MaxFreq() int64 { return max64(a.FreqsKHz) }

// MinFreq returns the lowest frequency in a.FreqsKHz.
func (a Axes) MinFreq() int64 { return min64(a.FreqsKHz) }

// MaxCores returns the highest core count in a.Cores.
func (a Axes) MaxCores() int { return maxInt(a.Cores) }

// MinCores returns the lowest core count in a.Cores.
func (a Axes) MinCores() int { return minInt(a.Cores) }

func max64(xs []int64) int64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}

	return m
}

func min64(xs []int64) int64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}

	return m
}

func maxInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}

	return m
}

func minInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}

	return m
}

// Model is the hardware model: the tuning axes plus the formulas that turn
// (workload, cpus, freq, ht) into IPC and power. Formulas are supplied as
// plain functions so callers can swap in the analytical model shipped with
// this module, or a test stub, without HM itself caring which.
type Model struct {
	Axes

	IPCFunc   func(d workload.Descriptor, cpus int, freqKHz int64, ht bool) float64
	PPkgFunc  func(d workload.Descriptor, cpus int, freqKHz int64, ht bool) float64
	PCoreFunc func(d workload.Descriptor, cpus int, freqKHz int64, ht bool) float64
	PRamFunc  func(d workload.Descriptor, cpus int, freqKHz int64, ht bool) float64
}

// IPC returns the modelled instructions-per-cycle for the given point.
func (m *Model) IPC(d workload.Descriptor, cpus int, freqKHz int64, ht bool) float64 {
	return m.IPCFunc(d, cpus, freqKHz, ht)
}

// PPkg returns the modelled package power in watts.
func (m *Model) PPkg(d workload.Descriptor, cpus int, freqKHz int64, ht bool) float64 {
	return m.PPkgFunc(d, cpus, freqKHz, ht)
}

// PCore returns the modelled per-core power contribution in watts.
func (m *Model) PCore(d workload.Descriptor, cpus int, freqKHz int64, ht bool) float64 {
	return m.PCoreFunc(d, cpus, freqKHz, ht)
}

// PRam returns the modelled DRAM power in watts.
func (m *Model) PRam(d workload.Descriptor, cpus int, freqKHz int64, ht bool) float64 {
	return m.PRamFunc(d, cpus, freqKHz, ht)
}

// Analytical builds the default analytical model: an affine power model
// driven by the workload's heaviness mix and the tuning point, calibrated so
// that heavier AVX/compute workloads cost proportionally more package power
// and memory-heavy workloads cost proportionally more DRAM power. This is
// the "model files" spec.md §4.1 treats as opaque; the formulas themselves
// carry no control-flow significance to the rest of the system.
func Analytical(axes Axes) *Model {
	ipc := func(d workload.Descriptor, _ int, _ int64, _ bool) float64 {
		base := 1.0 - 0.3*d.MemoryHeaviness - 0.1*d.BranchHeaviness
		if base < 0.1 {
			base = 0.1
		}

		return base
	}

	pPkg := func(d workload.Descriptor, cpus int, freqKHz int64, _ bool) float64 {
		freqGHz := float64(freqKHz) / 1_000_000.0
		perCPU := 0.6 + 0.8*d.AVXHeaviness + 0.4*d.ComputeHeaviness
		return float64(cpus) * perCPU * freqGHz
	}

	pCore := func(d workload.Descriptor, cpus int, freqKHz int64, _ bool) float64 {
		return pPkg(d, cpus, freqKHz, false) * 0.9
	}

	pRam := func(d workload.Descriptor, cpus int, _ int64, _ bool) float64 {
		return float64(cpus) * 0.15 * (0.5 + d.MemoryHeaviness + 0.5*d.CacheHeaviness)
	}

	return &Model{
		Axes:      axes,
		IPCFunc:   ipc,
		PPkgFunc:  pPkg,
		PCoreFunc: pCore,
		PRamFunc:  pRam,
	}
}
