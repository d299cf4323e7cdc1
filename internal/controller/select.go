package controller

import "github.com/sarchlab/euf-controller/internal/model"

// Select implements the selection algorithm of spec.md §4.8.
//
// With target == nil, Select returns the candidate with minimum power,
// breaking ties by keeping seed stable if seed itself is among the
// candidates with minimum power.
//
// With target set, Select first checks whether any candidate meets the
// target throughput; if so it returns the minimum-power candidate among
// those (P5). Only when no candidate meets the target does it fall back to
// the highest-throughput candidate available (P6). A non-nil seed takes part
// in both searches as one more candidate, so a seed that meets the target at
// lower power than every candidate, or that has the highest throughput, is
// returned itself.
func Select(candidates []model.Configuration, target *float64, seed *model.Configuration) model.Configuration {
	if len(candidates) == 1 {
		return candidates[0]
	}

	if target == nil {
		return selectMinPower(candidates, seed)
	}

	return selectTowardTarget(candidates, *target, seed)
}

func selectMinPower(candidates []model.Configuration, seed *model.Configuration) model.Configuration {
	var best model.Configuration

	haveBest := false

	if seed != nil {
		best = *seed
		haveBest = true
	}

	for _, c := range candidates {
		if !haveBest {
			best = c
			haveBest = true

			continue
		}

		if c.PowerW < best.PowerW {
			best = c
		}
		// Tie (or worse): keep the current best, for stability.
	}

	return best
}

func selectTowardTarget(candidates []model.Configuration, target float64, seed *model.Configuration) model.Configuration {
	var feasibleBest model.Configuration

	haveFeasible := false

	var climbBest model.Configuration

	haveClimb := false

	if seed != nil {
		climbBest = *seed
		haveClimb = true

		if seed.TPS >= target {
			feasibleBest = *seed
			haveFeasible = true
		}
	}

	for _, c := range candidates {
		if c.TPS >= target {
			if !haveFeasible || c.PowerW < feasibleBest.PowerW {
				feasibleBest = c
				haveFeasible = true
			}

			continue
		}

		if !haveClimb || c.TPS >= climbBest.TPS {
			climbBest = c
			haveClimb = true
		}
	}

	if haveFeasible {
		return feasibleBest
	}

	return climbBest
}
