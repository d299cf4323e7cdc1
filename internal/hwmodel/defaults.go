package hwmodel

// DefaultAxes returns a representative server tuning-axis set: five
// frequency steps between 1.2GHz and 3.6GHz, core counts from 1 to the
// machine's physical core count, and both hyperthreading settings. Real
// deployments are expected to load axes from the engine's topology; this is
// the fallback used when no topology probe is wired in (e.g. the --fake CLI
// mode).
func DefaultAxes(maxPhysicalCores int) Axes {
	freqs := []int64{1_200_000, 1_800_000, 2_400_000, 3_000_000, 3_600_000}

	cores := make([]int, 0, maxPhysicalCores)
	for c := 1; c <= maxPhysicalCores; c++ {
		cores = append(cores, c)
	}

	return Axes{
		FreqsKHz: freqs,
		Cores:    cores,
		HTs:      []bool{false, true},
	}
}
