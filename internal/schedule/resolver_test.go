package schedule

import (
	"testing"
	"time"

	"github.com/haldenkamp/taktplan/internal/plan"
)

func jan(d int) time.Time {
	return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
}

func consumerOf(workProduct string, percentage int) plan.Activity {
	return plan.Activity{
		ID: "consumer",
		Trigger: plan.Trigger{WorkProducts: []plan.TriggerCondition{
			{WorkProduct: workProduct, CompletionPercentage: percentage},
		}},
	}
}

func TestResolveStartFullCompletionUsesProducerEnd(t *testing.T) {
	g := BuildGraph([]plan.Activity{{ID: "producer", Result: "wp-1"}})
	scheduled := map[string]Entry{
		"producer": {ActivityID: "producer", Start: jan(1), End: jan(11), DurationDays: 10},
	}

	sc := ResolveStart(consumerOf("wp-1", 100), g, scheduled, plan.SimulationInput{}, jan(1))
	if !sc.CanStart {
		t.Fatalf("expected startable")
	}
	if !sc.EarliestStart.Equal(jan(11)) {
		t.Fatalf("expected earliest start jan 11, got %v", sc.EarliestStart)
	}
	if !sc.HasPredecessorEnd || !sc.LatestPredecessorEnd.Equal(jan(11)) {
		t.Fatalf("expected predecessor end jan 11, got %v has=%v", sc.LatestPredecessorEnd, sc.HasPredecessorEnd)
	}
}

func TestResolveStartPartialCompletionInterpolates(t *testing.T) {
	g := BuildGraph([]plan.Activity{{ID: "producer", Result: "wp-1"}})
	scheduled := map[string]Entry{
		"producer": {ActivityID: "producer", Start: jan(1), End: jan(11), DurationDays: 10},
	}

	// 50% of a 10-day producer: start + 5 days.
	sc := ResolveStart(consumerOf("wp-1", 50), g, scheduled, plan.SimulationInput{}, jan(1))
	if !sc.CanStart || !sc.EarliestStart.Equal(jan(6)) {
		t.Fatalf("expected earliest start jan 6, got %v canStart=%v", sc.EarliestStart, sc.CanStart)
	}
	// The predecessor end is still the full end, not the interpolated date.
	if !sc.LatestPredecessorEnd.Equal(jan(11)) {
		t.Fatalf("expected predecessor end jan 11, got %v", sc.LatestPredecessorEnd)
	}
}

func TestResolveStartSimulatedInputIsImmediatelyAvailable(t *testing.T) {
	g := BuildGraph(nil)
	input := plan.SimulationInput{WorkProducts: []plan.SimulationWorkProduct{{ID: "wp-seed"}}}

	sc := ResolveStart(consumerOf("wp-seed", 100), g, map[string]Entry{}, input, jan(3))
	if !sc.CanStart {
		t.Fatalf("simulated work product must satisfy the condition")
	}
	if !sc.EarliestStart.Equal(jan(3)) {
		t.Fatalf("expected project start jan 3, got %v", sc.EarliestStart)
	}
	if sc.HasPredecessorEnd {
		t.Fatalf("simulated inputs contribute no predecessor end")
	}
}

func TestResolveStartBlocksOnUnscheduledProducer(t *testing.T) {
	g := BuildGraph([]plan.Activity{{ID: "producer", Result: "wp-1"}})
	sc := ResolveStart(consumerOf("wp-1", 100), g, map[string]Entry{}, plan.SimulationInput{}, jan(1))
	if sc.CanStart {
		t.Fatalf("unscheduled producer must block the start")
	}
}

func TestResolveStartBlocksWhenNobodyProduces(t *testing.T) {
	g := BuildGraph(nil)
	sc := ResolveStart(consumerOf("wp-ghost", 100), g, map[string]Entry{}, plan.SimulationInput{}, jan(1))
	if sc.CanStart {
		t.Fatalf("condition on an unproduced work product can never be satisfied")
	}
}

func TestResolveStartTakesLatestAcrossConditions(t *testing.T) {
	g := BuildGraph([]plan.Activity{
		{ID: "early", Result: "wp-1"},
		{ID: "late", Result: "wp-2"},
	})
	scheduled := map[string]Entry{
		"early": {ActivityID: "early", Start: jan(1), End: jan(3), DurationDays: 2},
		"late":  {ActivityID: "late", Start: jan(1), End: jan(9), DurationDays: 8},
	}
	act := plan.Activity{
		ID: "consumer",
		Trigger: plan.Trigger{WorkProducts: []plan.TriggerCondition{
			{WorkProduct: "wp-1", CompletionPercentage: 100},
			{WorkProduct: "wp-2", CompletionPercentage: 100},
		}},
	}

	sc := ResolveStart(act, g, scheduled, plan.SimulationInput{}, jan(1))
	if !sc.CanStart || !sc.EarliestStart.Equal(jan(9)) {
		t.Fatalf("expected earliest start jan 9, got %v canStart=%v", sc.EarliestStart, sc.CanStart)
	}
}
