package logbook

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunJournalRecordFormat(t *testing.T) {
	dir := t.TempDir()
	book, err := New(filepath.Join(dir, "runs.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}

	book.RunStarted("qa-process", 3)
	book.RunCompleted("run-1", "qa-process", 3, 5153.75)
	book.RunFailed("qa-process", errors.New("boom"))

	records := book.Tail(10)
	if len(records) != 3 {
		t.Fatalf("expected 3 journal records, got %d", len(records))
	}

	started := records[0]
	if !strings.Contains(started, "INFO") || !strings.Contains(started, " - ") {
		t.Fatalf("start record must carry the run placeholder: %q", started)
	}
	if !strings.Contains(started, "plan=qa-process activities=3") {
		t.Fatalf("unexpected start record: %q", started)
	}

	completed := records[1]
	if !strings.Contains(completed, " run-1 ") {
		t.Fatalf("completion record must carry the run id: %q", completed)
	}
	if !strings.Contains(completed, "entries=3 total_cost=5153.75") {
		t.Fatalf("unexpected completion record: %q", completed)
	}

	failed := records[2]
	if !strings.Contains(failed, "ERROR") || !strings.Contains(failed, "boom") {
		t.Fatalf("unexpected failure record: %q", failed)
	}
}

func TestTailReturnsRecentRecords(t *testing.T) {
	dir := t.TempDir()
	book, err := New(filepath.Join(dir, "runs.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.RunStarted("plan", i)
	}
	records := book.Tail(3)
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	for idx, want := range []string{"activities=2", "activities=3", "activities=4"} {
		if !strings.Contains(records[idx], want) {
			t.Fatalf("record %d = %q, missing %s", idx, records[idx], want)
		}
	}
}

func TestBlankRunIDFallsBackToPlaceholder(t *testing.T) {
	dir := t.TempDir()
	book, err := New(filepath.Join(dir, "runs.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.RunCompleted("  ", "plan", 1, 10)
	records := book.Tail(1)
	if len(records) != 1 || !strings.Contains(records[0], " - ") {
		t.Fatalf("blank run id must journal the placeholder: %v", records)
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var book *Logbook
	book.RunStarted("p", 1)
	book.RunFailed("p", errors.New("boom"))
	if book.Path() != "" {
		t.Fatalf("nil logbook must report an empty path")
	}
	if records := book.Tail(5); records != nil {
		t.Fatalf("nil logbook must return no records, got %v", records)
	}
}
