// internal/tui/app.go
//
// This is the interactive schedule viewer for taktplan.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haldenkamp/taktplan/internal/report"
)

const dateLayout = "2006-01-02"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	conflictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	paneStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// entryItem implements list.Item for one scheduled activity.
type entryItem struct {
	entry report.AnnotatedEntry
}

func (i entryItem) Title() string {
	name := i.entry.ActivityName
	if name == "" {
		name = i.entry.ActivityID
	}
	if f := conflictMarkers(i.entry); f != "" {
		return fmt.Sprintf("%s  [%s]", name, f)
	}
	return name
}

func (i entryItem) Description() string {
	return fmt.Sprintf("%s → %s  %s",
		i.entry.Start.Format(dateLayout),
		i.entry.End.Format(dateLayout),
		i.entry.RoleID,
	)
}

func (i entryItem) FilterValue() string { return i.entry.ActivityID }

// App is the viewer's model. It is read-only over one run summary: the list
// on the left, a detail pane for the selected entry on the right.
type App struct {
	summary report.Summary
	entries list.Model

	width  int
	height int
}

// NewApp builds the viewer for a run summary.
func NewApp(summary report.Summary) *App {
	items := make([]list.Item, len(summary.Entries))
	for i, entry := range summary.Entries {
		items[i] = entryItem{entry: entry}
	}

	entries := list.New(items, list.NewDefaultDelegate(), 0, 0)
	title := summary.PlanName
	if title == "" {
		title = summary.PlanID
	}
	entries.Title = title
	entries.SetShowStatusBar(false)
	entries.SetFilteringEnabled(true)

	return &App{summary: summary, entries: entries}
}

// Init is part of the tea.Model interface.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update handles messages: window sizing, quit keys, and list navigation.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.entries.SetSize(a.listWidth(), msg.Height-2)
		return a, nil

	case tea.KeyMsg:
		// Let the list's filter input swallow keys while active.
		if a.entries.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.entries, cmd = a.entries.Update(msg)
	return a, cmd
}

// View renders the list next to the detail pane.
func (a *App) View() string {
	if a.width == 0 {
		return "loading…"
	}
	detail := paneStyle.Width(a.detailWidth()).Render(a.detailView())
	return lipgloss.JoinHorizontal(lipgloss.Top, a.entries.View(), detail)
}

func (a *App) listWidth() int {
	w := a.width / 2
	if w < 30 {
		w = a.width
	}
	return w
}

func (a *App) detailWidth() int {
	w := a.width - a.listWidth() - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (a *App) detailView() string {
	item, ok := a.entries.SelectedItem().(entryItem)
	if !ok {
		return labelStyle.Render("no entry selected")
	}
	entry := item.entry

	var b strings.Builder
	name := entry.ActivityName
	if name == "" {
		name = entry.ActivityID
	}
	b.WriteString(titleStyle.Render(name))
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", label)))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("role", entry.RoleID)
	row("start", entry.Start.Format(dateLayout))
	row("end", entry.End.Format(dateLayout))
	row("days", fmt.Sprintf("%d", entry.DurationDays))
	row("hours", fmt.Sprintf("%.2f (known %.2f / estimated %.2f)",
		entry.TotalHours, entry.KnownHours, entry.EstimatedHours))
	row("cost", fmt.Sprintf("%.2f", entry.Cost))

	if conflicts := conflictLines(entry); len(conflicts) > 0 {
		b.WriteString("\n")
		for _, line := range conflicts {
			b.WriteString(conflictStyle.Render("! " + line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("run %s · total cost %.2f",
		a.summary.RunID, a.summary.TotalCost)))
	return b.String()
}

func conflictMarkers(entry report.AnnotatedEntry) string {
	var f strings.Builder
	if entry.HasStartConflict {
		f.WriteByte('S')
	}
	if entry.DateConflict {
		f.WriteByte('D')
	}
	if entry.BudgetConflict {
		f.WriteByte('B')
	}
	if entry.HighCost {
		f.WriteByte('C')
	}
	return f.String()
}

func conflictLines(entry report.AnnotatedEntry) []string {
	var lines []string
	if entry.HasStartConflict {
		lines = append(lines, "start pushed: role was still busy")
	}
	if entry.DateConflict {
		lines = append(lines, "ends after the planned end date")
	}
	if entry.BudgetConflict {
		lines = append(lines, "running cost exceeds the budget")
	}
	if entry.HighCost {
		lines = append(lines, "entry cost above the review threshold")
	}
	return lines
}

// Run starts the viewer and blocks until the user quits.
func Run(summary report.Summary) error {
	program := tea.NewProgram(NewApp(summary), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
