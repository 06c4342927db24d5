package schedule

import (
	"reflect"
	"testing"

	"github.com/haldenkamp/taktplan/internal/plan"
)

func TestBuildGraphPredecessors(t *testing.T) {
	activities := []plan.Activity{
		{ID: "a", Result: "wp-1"},
		{ID: "b", Result: "wp-2"},
		{ID: "c", Trigger: plan.Trigger{WorkProducts: []plan.TriggerCondition{
			{WorkProduct: "wp-2"},
			{WorkProduct: "wp-1"},
		}}},
	}
	g := BuildGraph(activities)

	if got := g.Predecessors("c"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("expected sorted predecessors [a b], got %v", got)
	}
	if got := g.Predecessors("a"); len(got) != 0 {
		t.Fatalf("expected no predecessors for a, got %v", got)
	}
}

func TestBuildGraphIgnoresSelfProduction(t *testing.T) {
	activities := []plan.Activity{
		{ID: "loop", Result: "wp-1", Trigger: plan.Trigger{WorkProducts: []plan.TriggerCondition{
			{WorkProduct: "wp-1"},
		}}},
	}
	g := BuildGraph(activities)
	if got := g.Predecessors("loop"); len(got) != 0 {
		t.Fatalf("self-production must not create an edge, got %v", got)
	}
}

func TestProducerFirstDeclarationWins(t *testing.T) {
	activities := []plan.Activity{
		{ID: "second", Result: "wp-1"},
		{ID: "first", Result: "wp-1"},
	}
	// Declaration order decides, not lexical order.
	g := BuildGraph(activities)
	producer, ok := g.Producer("wp-1", "consumer")
	if !ok || producer != "second" {
		t.Fatalf("expected first-declared producer, got %q ok=%v", producer, ok)
	}
	if _, ok := g.Producer("wp-missing", "consumer"); ok {
		t.Fatalf("expected no producer for unknown work product")
	}
}

func TestProducerSkipsConsumer(t *testing.T) {
	activities := []plan.Activity{
		{ID: "alpha", Result: "wp-x"},
		{ID: "beta", Result: "wp-x"},
	}
	g := BuildGraph(activities)

	// alpha consuming wp-x must resolve to beta, never to itself.
	producer, ok := g.Producer("wp-x", "alpha")
	if !ok || producer != "beta" {
		t.Fatalf("expected beta as producer for alpha, got %q ok=%v", producer, ok)
	}
	if _, ok := g.Producer("wp-x", "sole"); !ok {
		t.Fatalf("unrelated consumer must still find a producer")
	}
}

func TestProducerSoleSelfProducerFindsNothing(t *testing.T) {
	g := BuildGraph([]plan.Activity{{ID: "loop", Result: "wp-1"}})
	if _, ok := g.Producer("wp-1", "loop"); ok {
		t.Fatalf("an activity cannot produce its own trigger")
	}
}

func TestBuildGraphDeduplicatesPredecessors(t *testing.T) {
	activities := []plan.Activity{
		{ID: "a", Result: "wp-1"},
		{ID: "c", Trigger: plan.Trigger{WorkProducts: []plan.TriggerCondition{
			{WorkProduct: "wp-1", CompletionPercentage: 50},
			{WorkProduct: "wp-1", CompletionPercentage: 100},
		}}},
	}
	g := BuildGraph(activities)
	if got := g.Predecessors("c"); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("expected deduplicated [a], got %v", got)
	}
}
