package report

import (
	"math"
	"sort"
	"time"

	"github.com/haldenkamp/taktplan/internal/plan"
	"github.com/haldenkamp/taktplan/internal/schedule"
)

// DefaultCostThreshold marks an entry as high-cost. Matches the fixed
// review threshold of the source system.
const DefaultCostThreshold = 2000.0

// AnnotatedEntry is a scheduled entry plus the report-level conflict flags.
// Conflicts are derived here, not by the scheduler: the schedule itself is
// valid either way, the flags just tell the reader where to look.
type AnnotatedEntry struct {
	schedule.Entry

	// DateConflict: the entry ends after the plan's planned end date.
	DateConflict bool `json:"date_conflict,omitempty"`
	// BudgetConflict: the running cost total exceeded the plan budget at
	// this entry.
	BudgetConflict bool `json:"budget_conflict,omitempty"`
	// HighCost: the entry's own cost is above the configured threshold.
	HighCost bool `json:"high_cost,omitempty"`
}

// RoleHours is one line of the resources summary.
type RoleHours struct {
	RoleID string  `json:"role_id"`
	Hours  float64 `json:"hours"`
}

// Summary is the full report for one run.
type Summary struct {
	PlanID    string           `json:"plan_id"`
	PlanName  string           `json:"plan_name,omitempty"`
	RunID     string           `json:"run_id"`
	Start     time.Time        `json:"start"`
	End       time.Time        `json:"end"`
	Entries   []AnnotatedEntry `json:"entries"`
	Resources []RoleHours      `json:"resources"`
	TotalCost float64          `json:"total_cost"`
}

// Summarize annotates a run's entries against the plan's constraints and
// aggregates per-role hours. A costThreshold of 0 uses the default.
func Summarize(p plan.Plan, result *schedule.Result, costThreshold float64) Summary {
	if costThreshold <= 0 {
		costThreshold = DefaultCostThreshold
	}

	summary := Summary{
		PlanID:    p.ID,
		PlanName:  p.Name,
		RunID:     result.RunID,
		Start:     result.Start,
		End:       result.Start,
		TotalCost: result.TotalCost,
	}

	hoursByRole := map[string]float64{}
	var runningCost float64
	for _, entry := range result.Entries {
		runningCost += entry.Cost
		annotated := AnnotatedEntry{
			Entry:    entry,
			HighCost: entry.Cost > costThreshold,
		}
		if p.PlannedEnd != nil && entry.End.After(*p.PlannedEnd) {
			annotated.DateConflict = true
		}
		if p.Budget != nil && runningCost > *p.Budget {
			annotated.BudgetConflict = true
		}
		summary.Entries = append(summary.Entries, annotated)

		hoursByRole[entry.RoleID] += entry.TotalHours
		if entry.End.After(summary.End) {
			summary.End = entry.End
		}
	}

	roles := make([]string, 0, len(hoursByRole))
	for role := range hoursByRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		summary.Resources = append(summary.Resources, RoleHours{
			RoleID: role,
			Hours:  math.Round(hoursByRole[role]*100) / 100,
		})
	}
	return summary
}

// HasConflicts reports whether any entry carries a conflict flag.
func (s Summary) HasConflicts() bool {
	for _, entry := range s.Entries {
		if entry.HasStartConflict || entry.DateConflict || entry.BudgetConflict {
			return true
		}
	}
	return false
}
