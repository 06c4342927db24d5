package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a journal record.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// noRun fills the run column for records written before a run id exists
// (start and failure lines).
const noRun = "-"

// Logbook is the simulation run journal: one plain-text file, one record per
// line in the form `<timestamp> <level> <run-id> <message>`. Appends are
// best-effort; a journal write never fails a run.
type Logbook struct {
	path string
	mu   sync.Mutex
}

// New creates a run journal that writes to the provided path.
func New(path string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &Logbook{path: path}, nil
}

// Path returns the file backing this journal.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// RunStarted journals the beginning of a scheduling run. No run id exists
// yet at this point, so the run column carries the placeholder.
func (l *Logbook) RunStarted(planID string, activities int) {
	l.append(LevelInfo, noRun, "run started plan=%s activities=%d", planID, activities)
}

// RunCompleted journals a finished run under its run id.
func (l *Logbook) RunCompleted(runID, planID string, entries int, totalCost float64) {
	l.append(LevelInfo, runID, "run completed plan=%s entries=%d total_cost=%.2f",
		planID, entries, totalCost)
}

// RunFailed journals a run that ended in an error before producing a result.
func (l *Logbook) RunFailed(planID string, err error) {
	l.append(LevelError, noRun, "run failed plan=%s: %v", planID, err)
}

func (l *Logbook) append(level Level, runID, format string, args ...any) {
	if l == nil {
		return
	}
	if strings.TrimSpace(runID) == "" {
		runID = noRun
	}
	record := fmt.Sprintf("%s %-5s %s %s\n",
		time.Now().UTC().Format(time.RFC3339),
		string(level),
		runID,
		strings.TrimSpace(fmt.Sprintf(format, args...)),
	)

	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(record)
}

// Tail returns up to maxLines of the most recent journal records.
func (l *Logbook) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var records []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		records = append(records, scanner.Text())
	}
	if len(records) == 0 {
		return nil
	}
	if len(records) > maxLines {
		records = records[len(records)-maxLines:]
	}
	return records
}
