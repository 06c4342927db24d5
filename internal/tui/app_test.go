package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haldenkamp/taktplan/internal/report"
	"github.com/haldenkamp/taktplan/internal/schedule"
)

func testSummary() report.Summary {
	day := func(d int) time.Time {
		return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC)
	}
	return report.Summary{
		PlanID:    "qa-process",
		PlanName:  "QA process",
		RunID:     "run-1",
		Start:     day(1),
		End:       day(16),
		TotalCost: 5153.75,
		Entries: []report.AnnotatedEntry{
			{Entry: schedule.Entry{ActivityID: "start", RoleID: "lead",
				Start: day(1), End: day(13), DurationDays: 12,
				TotalHours: 44, Cost: 4620}, HighCost: true},
			{Entry: schedule.Entry{ActivityID: "mid", RoleID: "dev",
				Start: day(13), End: day(15), DurationDays: 2,
				TotalHours: 5, Cost: 525, HasStartConflict: true}},
		},
	}
}

func TestNewAppListsEntries(t *testing.T) {
	app := NewApp(testSummary())
	if got := len(app.entries.Items()); got != 2 {
		t.Fatalf("expected 2 list items, got %d", got)
	}
	first, ok := app.entries.Items()[0].(entryItem)
	if !ok {
		t.Fatalf("unexpected item type %T", app.entries.Items()[0])
	}
	if !strings.Contains(first.Title(), "start") || !strings.Contains(first.Title(), "C") {
		t.Fatalf("title should name the activity and its flags: %q", first.Title())
	}
	if !strings.Contains(first.Description(), "2026-01-01") {
		t.Fatalf("description should carry the dates: %q", first.Description())
	}
}

func TestUpdateQuitsOnQ(t *testing.T) {
	app := NewApp(testSummary())
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Fatalf("expected tea.QuitMsg, got %T", msg)
	}
}

func TestViewShowsDetailForSelection(t *testing.T) {
	app := NewApp(testSummary())
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app = model.(*App)

	out := app.View()
	for _, want := range []string{"start", "lead", "4620.00", "run run-1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestDetailViewListsConflicts(t *testing.T) {
	app := NewApp(testSummary())
	app.entries.Select(1)
	detail := app.detailView()
	if !strings.Contains(detail, "role was still busy") {
		t.Fatalf("expected start-conflict line in detail:\n%s", detail)
	}
}
