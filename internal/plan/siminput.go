package plan

import "strings"

// SimulationWorkProduct carries the simulated item counts for one work
// product: how many items are already known and how many are still estimated.
type SimulationWorkProduct struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Known   int    `json:"known" yaml:"known"`
	Unknown int    `json:"unknown" yaml:"unknown"`
}

// SimulationInput is the per-run item-count injection. Work products absent
// from the input fall back to the activity's own time fields as counts.
type SimulationInput struct {
	WorkProducts []SimulationWorkProduct `json:"work_products,omitempty" yaml:"work_products,omitempty"`
}

// Clone returns a deep copy of the simulation input.
func (s SimulationInput) Clone() SimulationInput {
	clone := SimulationInput{}
	if len(s.WorkProducts) > 0 {
		clone.WorkProducts = make([]SimulationWorkProduct, len(s.WorkProducts))
		copy(clone.WorkProducts, s.WorkProducts)
	}
	return clone
}

// Lookup finds a simulated work product by id or, failing that, by name.
// The source system accepted either reference form in trigger conditions.
func (s SimulationInput) Lookup(ref string) (SimulationWorkProduct, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return SimulationWorkProduct{}, false
	}
	for _, wp := range s.WorkProducts {
		if wp.ID == ref {
			return wp, true
		}
	}
	for _, wp := range s.WorkProducts {
		if wp.Name == ref {
			return wp, true
		}
	}
	return SimulationWorkProduct{}, false
}
