package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoActivities reports a run attempted against a plan with no activities.
var ErrNoActivities = errors.New("schedule: plan has no activities")

// MalformedTriggerError reports a trigger condition that cannot be evaluated:
// an empty work-product reference or a completion percentage outside [0,100].
// It is raised during pre-run validation, before any scheduling state exists.
type MalformedTriggerError struct {
	ActivityID string
	Index      int
	Reason     string
}

func (e *MalformedTriggerError) Error() string {
	return fmt.Sprintf("schedule: activity %s trigger[%d]: %s", e.ActivityID, e.Index, e.Reason)
}

// UnresolvableError reports activities whose start conditions could never be
// satisfied: a full pass over the worklist scheduled nothing, so the
// remainder is stuck on a cycle or on work products nobody produces.
type UnresolvableError struct {
	Remaining []string
}

func (e *UnresolvableError) Error() string {
	return fmt.Sprintf("schedule: unresolvable dependencies for activities: %s",
		strings.Join(e.Remaining, ", "))
}
