package schedule

import (
	"math"

	"github.com/haldenkamp/taktplan/internal/plan"
)

// Per-item effort rates for the process boundary activities, in hours. The
// start of a process is dominated by setup work; the end is near-free
// bookkeeping per item.
const (
	startKnownRate     = 12.0
	startEstimatedRate = 20.0
	endKnownRate       = 5.0 / 60.0
	endEstimatedRate   = 2.0 / 60.0
)

// Costing carries the effective costing parameters for one activity's role.
type Costing struct {
	DailyHours float64
	Holders    int
	HourlyCost float64
}

// DefaultCosting returns the fixed project-wide costing constants.
func DefaultCosting() Costing {
	return Costing{
		DailyHours: plan.DefaultDailyHours,
		Holders:    plan.DefaultHolders,
		HourlyCost: plan.DefaultHourlyCost,
	}
}

// Effort is the computed workload of one activity.
type Effort struct {
	DurationDays   int
	KnownHours     float64
	EstimatedHours float64
	TotalHours     float64
	Cost           float64
}

// ComputeEffort derives an activity's duration and cost. Item counts come
// from the simulation input when any trigger work product is present there;
// otherwise the activity's own time fields stand in as counts. Boundary
// activities use the fixed per-item rates, everything else reuses its time
// fields as rates.
func ComputeEffort(act plan.Activity, input plan.SimulationInput, costing Costing) Effort {
	knownCount, unknownCount := resolveCounts(act, input)
	knownRate, estimatedRate := itemRates(act)
	mult := float64(act.Multiplicator)

	effort := Effort{
		KnownHours:     knownCount * mult * knownRate,
		EstimatedHours: unknownCount * mult * estimatedRate,
	}
	effort.TotalHours = effort.KnownHours + effort.EstimatedHours
	if effort.TotalHours == 0 {
		// Nothing to count: fall back to one nominal item so the
		// activity still occupies at least a day.
		effort.TotalHours = (knownRate + estimatedRate) * mult
	}

	divisor := costing.DailyHours
	if act.WorkMode == plan.WorkModeGeteilt {
		divisor *= float64(costing.Holders)
	}
	effort.DurationDays = int(math.Ceil(effort.TotalHours / divisor))
	if effort.DurationDays < 1 {
		effort.DurationDays = 1
	}

	effort.Cost = effort.TotalHours * costing.HourlyCost
	if act.WorkMode == plan.WorkModeJeder {
		effort.Cost *= float64(costing.Holders)
	}
	return effort
}

// resolveCounts picks the item-count source: the first trigger work product
// found in the simulation input wins; with no match the activity's own time
// fields are read as counts.
func resolveCounts(act plan.Activity, input plan.SimulationInput) (known, unknown float64) {
	for _, cond := range act.Trigger.WorkProducts {
		if wp, ok := input.Lookup(cond.WorkProduct); ok {
			return float64(wp.Known), float64(wp.Unknown)
		}
	}
	return act.KnownTime, act.EstimatedTime
}

func itemRates(act plan.Activity) (known, estimated float64) {
	switch {
	case act.IsProcessStart:
		return startKnownRate, startEstimatedRate
	case act.IsProcessEnd:
		return endKnownRate, endEstimatedRate
	default:
		return act.KnownTime, act.EstimatedTime
	}
}

// round2 rounds a cost to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
