package schedule

import (
	"sort"

	"github.com/haldenkamp/taktplan/internal/plan"
)

// Graph links activities through the work products they produce and consume.
// Predecessors of an activity are every other activity producing one of its
// trigger work products; self-production never creates an edge.
type Graph struct {
	predecessors map[string][]string
	producers    map[string][]string
}

// BuildGraph derives the dependency graph from the activity set. Activities
// are processed in declaration order, so producer lookups are deterministic.
func BuildGraph(activities []plan.Activity) *Graph {
	g := &Graph{
		predecessors: make(map[string][]string, len(activities)),
		producers:    map[string][]string{},
	}
	for _, act := range activities {
		if act.Result != "" {
			g.producers[act.Result] = append(g.producers[act.Result], act.ID)
		}
	}
	for _, act := range activities {
		seen := map[string]struct{}{}
		var preds []string
		for _, cond := range act.Trigger.WorkProducts {
			for _, producer := range g.producers[cond.WorkProduct] {
				if producer == act.ID {
					continue
				}
				if _, dup := seen[producer]; dup {
					continue
				}
				seen[producer] = struct{}{}
				preds = append(preds, producer)
			}
		}
		sort.Strings(preds)
		g.predecessors[act.ID] = preds
	}
	return g
}

// Predecessors returns the activity's predecessor ids, sorted.
func (g *Graph) Predecessors(activityID string) []string {
	return g.predecessors[activityID]
}

// Producer returns the first activity (in declaration order) producing the
// work product for the given consumer. The consumer itself is skipped, same
// as in the predecessor sets: an activity cannot feed its own trigger. When
// several other activities produce the same product, the first one wins for
// start-condition evaluation.
func (g *Graph) Producer(workProduct, consumer string) (string, bool) {
	for _, producer := range g.producers[workProduct] {
		if producer != consumer {
			return producer, true
		}
	}
	return "", false
}
