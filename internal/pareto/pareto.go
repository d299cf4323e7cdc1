// Package pareto reduces a candidate set of model.Configuration records to
// its non-dominated (Pareto-optimal) subset, per spec.md §4.4.
package pareto

import "github.com/sarchlab/euf-controller/internal/model"

// Polarity says whether an objective should be minimised or maximised.
type Polarity int

// Polarity values, matching the teacher-idiomatic tagged-record approach
// spec.md §9 recommends in place of the original's string-prefix syntax
// ("<power", ">tps").
const (
	Min Polarity = iota
	Max
)

// Objective names one field of a Configuration and which way is "better".
type Objective struct {
	Name    string
	Get     func(model.Configuration) float64
	Polarity
}

// PowerMinimised is the "minimise package+DRAM power" objective used
// throughout the controller.
var PowerMinimised = Objective{
	Name:     "power",
	Get:      func(c model.Configuration) float64 { return c.PowerW },
	Polarity: Min,
}

// ThroughputMaximised is the "maximise tasks/second" objective used
// throughout the controller.
var ThroughputMaximised = Objective{
	Name:     "tps",
	Get:      func(c model.Configuration) float64 { return c.TPS },
	Polarity: Max,
}

// Default is the objective vector spec.md §2 names for the controller:
// minimise power, maximise throughput, in that order.
var Default = []Objective{PowerMinimised, ThroughputMaximised}

// betterOrEqual reports whether a is at least as good as b on objective o.
func betterOrEqual(o Objective, a, b model.Configuration) bool {
	av, bv := o.Get(a), o.Get(b)
	if o.Polarity == Min {
		return av <= bv
	}

	return av >= bv
}

// strictlyBetter reports whether a is strictly better than b on objective o.
func strictlyBetter(o Objective, a, b model.Configuration) bool {
	av, bv := o.Get(a), o.Get(b)
	if o.Polarity == Min {
		return av < bv
	}

	return av > bv
}

// dominates reports whether a dominates b under objectives: a is no worse on
// every objective and strictly better on at least one (spec.md §4.4).
func dominates(objectives []Objective, a, b model.Configuration) bool {
	strictlyBetterSomewhere := false

	for _, o := range objectives {
		if !betterOrEqual(o, a, b) {
			return false
		}

		if strictlyBetter(o, a, b) {
			strictlyBetterSomewhere = true
		}
	}

	return strictlyBetterSomewhere
}

// sameVector reports whether a and b have identical objective vectors, the
// "tie" case spec.md §4.4 says collapses to one representative.
func sameVector(objectives []Objective, a, b model.Configuration) bool {
	for _, o := range objectives {
		if o.Get(a) != o.Get(b) {
			return false
		}
	}

	return true
}

// Reduce returns the non-dominated subset of candidates under objectives.
// Ties are collapsed to the first-seen representative. O(n^2), acceptable
// for the hundreds of candidates the configuration generator produces.
func Reduce(candidates []model.Configuration, objectives []Objective) []model.Configuration {
	if len(objectives) == 0 {
		return append([]model.Configuration(nil), candidates...)
	}

	kept := make([]model.Configuration, 0, len(candidates))

	for _, c := range candidates {
		dominated := false
		duplicate := false

		for _, other := range candidates {
			if sameVector(objectives, c, other) {
				// Identical vectors: keep only the first occurrence seen in
				// candidates, regardless of which element c is.
				continue
			}

			if dominates(objectives, other, c) {
				dominated = true
				break
			}
		}

		if dominated {
			continue
		}

		for _, k := range kept {
			if sameVector(objectives, k, c) {
				duplicate = true
				break
			}
		}

		if !duplicate {
			kept = append(kept, c)
		}
	}

	return kept
}
