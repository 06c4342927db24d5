package plan

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// WorkMode describes how a role's holders share an activity's workload.
type WorkMode string

const (
	// WorkModeEiner assigns the activity to a single holder.
	WorkModeEiner WorkMode = "Einer"
	// WorkModeJeder has every holder perform the full activity in parallel.
	WorkModeJeder WorkMode = "Jeder"
	// WorkModeGeteilt splits the activity's workload across all holders.
	WorkModeGeteilt WorkMode = "Geteilt"
)

// UnknownRoleID is assigned to activities that declare no executing role so
// that the timeline still serializes them against each other.
const UnknownRoleID = "unknown"

// TriggerCondition gates an activity's start on a work product reaching a
// completion percentage. A percentage of 0 is normalized to 100, preserving
// the source system's defaulting.
type TriggerCondition struct {
	WorkProduct          string `json:"work_product" yaml:"work_product"`
	CompletionPercentage int    `json:"completion_percentage,omitempty" yaml:"completion_percentage,omitempty"`
}

// Trigger collects an activity's start conditions. Combinator is carried for
// round-tripping but the scheduler treats every condition as a conjunction;
// the source system never consulted it either.
type Trigger struct {
	Combinator   string             `json:"combinator,omitempty" yaml:"combinator,omitempty"`
	WorkProducts []TriggerCondition `json:"work_products,omitempty" yaml:"work_products,omitempty"`
}

// Activity is one schedulable unit of work: triggered by work products,
// executed by a role, optionally producing one result work product.
type Activity struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name,omitempty" yaml:"name,omitempty"`
	Role          string   `json:"role,omitempty" yaml:"role,omitempty"`
	Result        string   `json:"result,omitempty" yaml:"result,omitempty"`
	Trigger       Trigger  `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	WorkMode      WorkMode `json:"work_mode,omitempty" yaml:"work_mode,omitempty"`
	Multiplicator int      `json:"multiplicator,omitempty" yaml:"multiplicator,omitempty"`
	KnownTime     float64  `json:"known_time,omitempty" yaml:"known_time,omitempty"`
	EstimatedTime float64  `json:"estimated_time,omitempty" yaml:"estimated_time,omitempty"`

	// IsProcessStart and IsProcessEnd mark the designated boundary
	// activities that use fixed per-item rates; the terminal end-date
	// repair applies only to the activity flagged IsProcessEnd.
	IsProcessStart bool `json:"is_process_start,omitempty" yaml:"is_process_start,omitempty"`
	IsProcessEnd   bool `json:"is_process_end,omitempty" yaml:"is_process_end,omitempty"`
}

// Role describes an executing role's costing parameters. Zero values are
// filled with the project-wide defaults during normalization.
type Role struct {
	ID         string  `json:"id" yaml:"id"`
	Name       string  `json:"name,omitempty" yaml:"name,omitempty"`
	HourlyCost float64 `json:"hourly_cost,omitempty" yaml:"hourly_cost,omitempty"`
	Holders    int     `json:"holders,omitempty" yaml:"holders,omitempty"`
	DailyHours float64 `json:"daily_hours,omitempty" yaml:"daily_hours,omitempty"`
}

// Costing defaults applied when a role leaves them unset. The values mirror
// the source system's fixed constants.
const (
	DefaultHourlyCost = 105.0
	DefaultHolders    = 3
	DefaultDailyHours = 3.87
)

// Plan declares the activity set for one scheduling run plus optional
// project-level constraints consumed by the report layer.
type Plan struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	Activities []Activity `json:"activities" yaml:"activities"`
	Roles      []Role     `json:"roles,omitempty" yaml:"roles,omitempty"`
	PlannedEnd *time.Time `json:"planned_end,omitempty" yaml:"planned_end,omitempty"`
	Budget     *float64   `json:"budget,omitempty" yaml:"budget,omitempty"`

	roleIndex map[string]Role
}

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	clone := Plan{
		ID:   p.ID,
		Name: p.Name,
	}
	if len(p.Activities) > 0 {
		clone.Activities = make([]Activity, len(p.Activities))
		for i, act := range p.Activities {
			clone.Activities[i] = act.Clone()
		}
	}
	if len(p.Roles) > 0 {
		clone.Roles = make([]Role, len(p.Roles))
		copy(clone.Roles, p.Roles)
	}
	if p.PlannedEnd != nil {
		end := *p.PlannedEnd
		clone.PlannedEnd = &end
	}
	if p.Budget != nil {
		budget := *p.Budget
		clone.Budget = &budget
	}
	return clone
}

// Clone returns a deep copy of the activity.
func (a Activity) Clone() Activity {
	clone := a
	if len(a.Trigger.WorkProducts) > 0 {
		clone.Trigger.WorkProducts = make([]TriggerCondition, len(a.Trigger.WorkProducts))
		copy(clone.Trigger.WorkProducts, a.Trigger.WorkProducts)
	}
	return clone
}

// Validate ensures the plan is self-consistent. Trigger shape problems are
// deliberately left to the scheduler's pre-run validation so they surface as
// its typed error.
func (p Plan) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("plan: id is required")
	}
	seen := map[string]struct{}{}
	for idx, act := range p.Activities {
		if err := act.Validate(); err != nil {
			return fmt.Errorf("plan %s activity[%d]: %w", p.ID, idx, err)
		}
		if _, exists := seen[act.ID]; exists {
			return fmt.Errorf("plan %s: duplicate activity id %s", p.ID, act.ID)
		}
		seen[act.ID] = struct{}{}
	}
	roles := map[string]struct{}{}
	for idx, role := range p.Roles {
		if role.ID == "" {
			return fmt.Errorf("plan %s role[%d]: id is required", p.ID, idx)
		}
		if _, exists := roles[role.ID]; exists {
			return fmt.Errorf("plan %s: duplicate role id %s", p.ID, role.ID)
		}
		roles[role.ID] = struct{}{}
	}
	var endCount int
	for _, act := range p.Activities {
		if act.IsProcessEnd {
			endCount++
		}
	}
	if endCount > 1 {
		return fmt.Errorf("plan %s: at most one activity may be flagged as process end", p.ID)
	}
	return nil
}

// Validate ensures the activity is usable.
func (a Activity) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("plan: activity id is required")
	}
	switch a.WorkMode {
	case "", WorkModeEiner, WorkModeJeder, WorkModeGeteilt:
	default:
		return fmt.Errorf("plan: activity %s has unknown work mode %q", a.ID, a.WorkMode)
	}
	switch strings.ToLower(strings.TrimSpace(a.Trigger.Combinator)) {
	case "", "and", "or":
	default:
		return fmt.Errorf("plan: activity %s has unknown trigger combinator %q", a.ID, a.Trigger.Combinator)
	}
	if a.Multiplicator < 0 {
		return fmt.Errorf("plan: activity %s multiplicator must be >= 0", a.ID)
	}
	return nil
}

// Normalized clones the plan, fills defaults, and validates the result.
func (p Plan) Normalized() (Plan, error) {
	clone := p.Clone()
	for i := range clone.Activities {
		clone.Activities[i].normalize()
	}
	for i := range clone.Roles {
		clone.Roles[i].normalize()
	}
	if err := clone.Validate(); err != nil {
		return Plan{}, err
	}
	clone.roleIndex = make(map[string]Role, len(clone.Roles))
	for _, role := range clone.Roles {
		clone.roleIndex[role.ID] = role
	}
	return clone, nil
}

func (a *Activity) normalize() {
	a.ID = strings.TrimSpace(a.ID)
	a.Role = strings.TrimSpace(a.Role)
	if a.Role == "" {
		a.Role = UnknownRoleID
	}
	if a.WorkMode == "" {
		a.WorkMode = WorkModeEiner
	}
	if a.Multiplicator == 0 {
		a.Multiplicator = 1
	}
	a.Trigger.Combinator = strings.ToLower(strings.TrimSpace(a.Trigger.Combinator))
	for i := range a.Trigger.WorkProducts {
		cond := &a.Trigger.WorkProducts[i]
		cond.WorkProduct = strings.TrimSpace(cond.WorkProduct)
		if cond.CompletionPercentage == 0 {
			cond.CompletionPercentage = 100
		}
	}
}

func (r *Role) normalize() {
	r.ID = strings.TrimSpace(r.ID)
	if r.HourlyCost <= 0 {
		r.HourlyCost = DefaultHourlyCost
	}
	if r.Holders <= 0 {
		r.Holders = DefaultHolders
	}
	if r.DailyHours <= 0 {
		r.DailyHours = DefaultDailyHours
	}
}

// RoleByID looks up a declared role. The boolean is false for roles the plan
// never declared (including the synthetic unknown role).
func (p *Plan) RoleByID(id string) (Role, bool) {
	if p.roleIndex != nil {
		role, ok := p.roleIndex[id]
		return role, ok
	}
	for _, role := range p.Roles {
		if role.ID == id {
			return role, true
		}
	}
	return Role{}, false
}

// ActivityIDs returns the activity identifiers in declaration order.
func (p Plan) ActivityIDs() []string {
	ids := make([]string, 0, len(p.Activities))
	for _, act := range p.Activities {
		ids = append(ids, act.ID)
	}
	return ids
}

// RoleIDs returns the distinct executing-role identifiers, sorted.
func (p Plan) RoleIDs() []string {
	set := map[string]struct{}{}
	for _, act := range p.Activities {
		set[act.Role] = struct{}{}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
