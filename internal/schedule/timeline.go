package schedule

import "time"

// Timeline tracks when each role becomes free again. A role executes one
// activity at a time; overlapping demands are serialized by raising the
// later activity's start to the role's busy-until timestamp.
type Timeline struct {
	busyUntil map[string]time.Time
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{busyUntil: map[string]time.Time{}}
}

// LatestBusyEnd reports when the role is next free. The boolean is false if
// the role has no recorded work yet.
func (t *Timeline) LatestBusyEnd(roleID string) (time.Time, bool) {
	end, ok := t.busyUntil[roleID]
	return end, ok
}

// RecordBusy marks the role as occupied until end. Earlier end times never
// shrink the window: the role's availability only moves forward.
func (t *Timeline) RecordBusy(roleID string, end time.Time) {
	if current, ok := t.busyUntil[roleID]; ok && current.After(end) {
		return
	}
	t.busyUntil[roleID] = end
}
