package schedule

import (
	"time"

	"github.com/haldenkamp/taktplan/internal/plan"
)

// StartConditions is the resolver's verdict on one activity in the current
// scheduling state.
type StartConditions struct {
	// CanStart is true once every trigger condition is satisfied.
	CanStart bool
	// EarliestStart is the latest completion date across all satisfied
	// conditions, never before the project start.
	EarliestStart time.Time
	// LatestPredecessorEnd is the maximum end time of all scheduled
	// producers feeding this activity. HasPredecessorEnd distinguishes
	// "no producers" from a real timestamp.
	LatestPredecessorEnd time.Time
	HasPredecessorEnd    bool
}

// ResolveStart evaluates an activity's trigger conditions against the
// already-scheduled entries. Conditions on simulated work products are
// satisfied at project start; every other condition needs its producer
// scheduled, with partial completion interpolated linearly over the
// producer's duration.
func ResolveStart(act plan.Activity, g *Graph, scheduled map[string]Entry, input plan.SimulationInput, projectStart time.Time) StartConditions {
	sc := StartConditions{CanStart: true, EarliestStart: projectStart}
	for _, cond := range act.Trigger.WorkProducts {
		if _, ok := input.Lookup(cond.WorkProduct); ok {
			// Simulated inputs exist before the run begins.
			continue
		}
		producerID, ok := g.Producer(cond.WorkProduct, act.ID)
		if !ok {
			sc.CanStart = false
			continue
		}
		entry, ok := scheduled[producerID]
		if !ok {
			sc.CanStart = false
			continue
		}
		available := completionDate(entry, cond.CompletionPercentage)
		if available.After(sc.EarliestStart) {
			sc.EarliestStart = available
		}
		if !sc.HasPredecessorEnd || entry.End.After(sc.LatestPredecessorEnd) {
			sc.LatestPredecessorEnd = entry.End
			sc.HasPredecessorEnd = true
		}
	}
	return sc
}

// completionDate interpolates when a producer's output reaches the requested
// completion percentage. Full completion is the entry's end; anything less
// is a linear fraction of the entry's day span from its start.
func completionDate(entry Entry, percentage int) time.Time {
	if percentage >= 100 {
		return entry.End
	}
	fraction := float64(percentage) / 100
	span := time.Duration(fraction * float64(entry.DurationDays) * float64(24*time.Hour))
	return entry.Start.Add(span)
}
