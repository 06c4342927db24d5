package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/haldenkamp/taktplan/internal/plan"
)

// Entry is the scheduled outcome for one activity.
type Entry struct {
	ActivityID     string    `json:"activity_id"`
	ActivityName   string    `json:"activity_name,omitempty"`
	RoleID         string    `json:"role_id"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	DurationDays   int       `json:"duration_days"`
	KnownHours     float64   `json:"known_hours"`
	EstimatedHours float64   `json:"estimated_hours"`
	TotalHours     float64   `json:"total_hours"`
	Cost           float64   `json:"cost"`

	// HasStartConflict records that the executing role was still busy at
	// the trigger-derived start, so the start was pushed out.
	HasStartConflict bool `json:"has_start_conflict,omitempty"`
}

// Result is one completed simulation run.
type Result struct {
	RunID     string    `json:"run_id"`
	Start     time.Time `json:"start"`
	Entries   []Entry   `json:"entries"`
	TotalCost float64   `json:"total_cost"`
}

// Entry returns the scheduled entry for an activity id.
func (r *Result) Entry(activityID string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.ActivityID == activityID {
			return e, true
		}
	}
	return Entry{}, false
}

// Scheduler runs one plan against one simulation input. It is cheap to build
// and single-use state lives entirely inside Run, so one Scheduler may serve
// several runs.
type Scheduler struct {
	plan     plan.Plan
	input    plan.SimulationInput
	graph    *Graph
	defaults Costing
}

// Option customizes a Scheduler.
type Option func(*Scheduler)

// WithDefaultCosting overrides the project-wide costing defaults applied to
// roles the plan does not declare.
func WithDefaultCosting(c Costing) Option {
	return func(s *Scheduler) {
		if c.DailyHours > 0 {
			s.defaults.DailyHours = c.DailyHours
		}
		if c.Holders > 0 {
			s.defaults.Holders = c.Holders
		}
		if c.HourlyCost > 0 {
			s.defaults.HourlyCost = c.HourlyCost
		}
	}
}

// New validates the plan's scheduling shape and prepares a scheduler.
// Validation happens before any run state exists: an empty activity set or a
// malformed trigger condition fails here, never mid-run.
func New(p plan.Plan, input plan.SimulationInput, opts ...Option) (*Scheduler, error) {
	if len(p.Activities) == 0 {
		return nil, ErrNoActivities
	}
	for _, act := range p.Activities {
		for idx, cond := range act.Trigger.WorkProducts {
			if cond.WorkProduct == "" {
				return nil, &MalformedTriggerError{
					ActivityID: act.ID,
					Index:      idx,
					Reason:     "empty work product reference",
				}
			}
			if cond.CompletionPercentage < 0 || cond.CompletionPercentage > 100 {
				return nil, &MalformedTriggerError{
					ActivityID: act.ID,
					Index:      idx,
					Reason: fmt.Sprintf("completion percentage %d outside [0,100]",
						cond.CompletionPercentage),
				}
			}
		}
	}
	normalized, err := p.Normalized()
	if err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}

	s := &Scheduler{
		plan:     normalized,
		input:    input.Clone(),
		graph:    BuildGraph(normalized.Activities),
		defaults: DefaultCosting(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run schedules every activity starting from projectStart. Activities are
// worked off a queue: whatever cannot start yet is requeued, and a full pass
// that schedules nothing stops the run with an UnresolvableError naming the
// stuck activities.
func (s *Scheduler) Run(projectStart time.Time) (*Result, error) {
	queue := make([]plan.Activity, len(s.plan.Activities))
	copy(queue, s.plan.Activities)

	scheduled := make(map[string]Entry, len(queue))
	timeline := NewTimeline()
	entries := make([]Entry, 0, len(queue))

	for len(queue) > 0 {
		progressed := 0
		passSize := len(queue)
		for i := 0; i < passSize; i++ {
			act := queue[0]
			queue = queue[1:]

			sc := ResolveStart(act, s.graph, scheduled, s.input, projectStart)
			if !sc.CanStart {
				queue = append(queue, act)
				continue
			}

			entry := s.schedule(act, sc, timeline)
			scheduled[act.ID] = entry
			entries = append(entries, entry)
			progressed++
		}
		if progressed == 0 && len(queue) > 0 {
			remaining := make([]string, len(queue))
			for i, act := range queue {
				remaining[i] = act.ID
			}
			return nil, &UnresolvableError{Remaining: remaining}
		}
	}

	var total float64
	for _, entry := range entries {
		total += entry.Cost
	}
	return &Result{
		RunID:     uuid.NewString(),
		Start:     projectStart,
		Entries:   entries,
		TotalCost: round2(total),
	}, nil
}

// schedule finalizes one startable activity: effort, role contention, and
// the terminal end-date repair.
func (s *Scheduler) schedule(act plan.Activity, sc StartConditions, timeline *Timeline) Entry {
	costing := s.costingFor(act.Role)
	effort := ComputeEffort(act, s.input, costing)

	start := sc.EarliestStart
	conflict := false
	if busy, ok := timeline.LatestBusyEnd(act.Role); ok && busy.After(start) {
		start = busy
		conflict = true
	}

	durationDays := effort.DurationDays
	end := start.Add(time.Duration(durationDays) * 24 * time.Hour)

	// The process-end activity may not finish before the work feeding it:
	// its tiny per-item rates can undercut a late predecessor, so the end
	// is pushed past the latest predecessor plus the repair margin.
	if act.IsProcessEnd && sc.HasPredecessorEnd && end.Before(sc.LatestPredecessorEnd) {
		margin := (endKnownRate + endEstimatedRate) * float64(act.Multiplicator)
		marginDays := int(math.Ceil(margin / costing.DailyHours))
		end = sc.LatestPredecessorEnd.Add(time.Duration(marginDays) * 24 * time.Hour)
		durationDays = int(math.Ceil(end.Sub(start).Hours() / 24))
	}

	timeline.RecordBusy(act.Role, end)

	return Entry{
		ActivityID:       act.ID,
		ActivityName:     act.Name,
		RoleID:           act.Role,
		Start:            start,
		End:              end,
		DurationDays:     durationDays,
		KnownHours:       effort.KnownHours,
		EstimatedHours:   effort.EstimatedHours,
		TotalHours:       effort.TotalHours,
		Cost:             round2(effort.Cost),
		HasStartConflict: conflict,
	}
}

// costingFor resolves the effective costing for a role: a declared role's
// normalized values, otherwise the scheduler defaults.
func (s *Scheduler) costingFor(roleID string) Costing {
	if role, ok := s.plan.RoleByID(roleID); ok {
		return Costing{
			DailyHours: role.DailyHours,
			Holders:    role.Holders,
			HourlyCost: role.HourlyCost,
		}
	}
	return s.defaults
}
