package workload

// Default returns the canned benchmark set used when no external workload
// model file is supplied (e.g. the --fake CLI mode). Real deployments load
// these descriptors from the model files spec.md §4.2 treats as opaque.
func Default() *Model {
	return New(map[string]Descriptor{
		"stream": {
			MemoryHeaviness:   0.9,
			NoMemoryHeaviness: 0.1,
			CacheHeaviness:    0.7,
			IPT:               4_000,
		},
		"dgemm": {
			AVXHeaviness:     0.9,
			ComputeHeaviness: 0.95,
			CacheHeaviness:   0.3,
			IPT:              20_000,
		},
		"branchy": {
			BranchHeaviness: 0.8,
			CacheHeaviness:  0.4,
			IPT:             8_000,
		},
		"mixed": {
			MemoryHeaviness:  0.4,
			AVXHeaviness:     0.3,
			BranchHeaviness:  0.3,
			ComputeHeaviness: 0.5,
			CacheHeaviness:   0.5,
			IPT:              10_000,
		},
	})
}
