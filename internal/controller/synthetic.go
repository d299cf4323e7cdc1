package controller

import (
	"github.com/sarchlab/euf-controller/internal/hwmodel"
	"github.com/sarchlab/euf-controller/internal/model"
)

// Synthetic builds the two placeholder configurations spec.md §4.8 defines
// from a hardware model's tuning axes: SYNTH_MAX, used whenever the engine
// must simply be commanded to full throttle (disabled controller, a
// benchmark loading), and SYNTH_IDLE, used when nothing is running. Both
// carry placeholder telemetry fields (ipc=1, power=1, tps=1) because they
// exist to command the engine, not to be ranked.
type Synthetic struct {
	Max  model.Configuration
	Idle model.Configuration
}

// NewSynthetic derives SYNTH_MAX/SYNTH_IDLE from axes.
func NewSynthetic(axes hwmodel.Axes) Synthetic {
	maxCores := axes.MaxCores()
	minCores := axes.MinCores()

	return Synthetic{
		Max: model.Configuration{
			FreqKHz: axes.MaxFreq(),
			Cores:   maxCores,
			HT:      true,
			CPUs:    2 * maxCores,
			IPC:     1,
			PowerW:  1,
			TPS:     1,
			EPR:     1,
		},
		Idle: model.Configuration{
			FreqKHz: axes.MinFreq(),
			Cores:   minCores,
			HT:      false,
			CPUs:    minCores,
			IPC:     1,
			PowerW:  1,
			TPS:     1,
			EPR:     1,
		},
	}
}
