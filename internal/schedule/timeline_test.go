package schedule

import (
	"testing"
	"time"
)

func TestTimelineTracksLatestEnd(t *testing.T) {
	tl := NewTimeline()
	if _, ok := tl.LatestBusyEnd("dev"); ok {
		t.Fatalf("empty timeline must report no busy end")
	}

	day := func(d int) time.Time {
		return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
	}

	tl.RecordBusy("dev", day(10))
	tl.RecordBusy("dev", day(5)) // earlier end must not shrink the window
	end, ok := tl.LatestBusyEnd("dev")
	if !ok || !end.Equal(day(10)) {
		t.Fatalf("expected busy until day 10, got %v ok=%v", end, ok)
	}

	tl.RecordBusy("dev", day(12))
	end, _ = tl.LatestBusyEnd("dev")
	if !end.Equal(day(12)) {
		t.Fatalf("expected busy until day 12, got %v", end)
	}

	if _, ok := tl.LatestBusyEnd("reviewer"); ok {
		t.Fatalf("roles are tracked independently")
	}
}
