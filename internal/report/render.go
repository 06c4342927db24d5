package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "2006-01-02"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("241"))
	conflictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	totalStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("178"))
	faintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Render formats the summary as a plain-terminal table: schedule rows, a
// resources section, and the cost total. Conflict flags show up as a short
// marker column (S start, D date, B budget, C high cost).
func (s Summary) Render() string {
	var b strings.Builder

	title := s.PlanName
	if title == "" {
		title = s.PlanID
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %s → %s",
		title, s.Start.Format(dateLayout), s.End.Format(dateLayout))))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("run " + s.RunID))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-20s %-12s %-10s %-10s %5s %10s %9s %-5s",
		"ACTIVITY", "ROLE", "START", "END", "DAYS", "HOURS", "COST", "FLAGS")))
	b.WriteString("\n")
	for _, entry := range s.Entries {
		name := entry.ActivityName
		if name == "" {
			name = entry.ActivityID
		}
		row := fmt.Sprintf("%-20s %-12s %-10s %-10s %5d %10.2f %9.2f %-5s",
			truncate(name, 20),
			truncate(entry.RoleID, 12),
			entry.Start.Format(dateLayout),
			entry.End.Format(dateLayout),
			entry.DurationDays,
			entry.TotalHours,
			entry.Cost,
			flags(entry),
		)
		if entry.HasStartConflict || entry.DateConflict || entry.BudgetConflict {
			row = conflictStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if len(s.Resources) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("RESOURCES"))
		b.WriteString("\n")
		for _, role := range s.Resources {
			b.WriteString(fmt.Sprintf("%-20s %10.2f h\n", truncate(role.RoleID, 20), role.Hours))
		}
	}

	b.WriteString("\n")
	b.WriteString(totalStyle.Render(fmt.Sprintf("total cost %.2f", s.TotalCost)))
	b.WriteString("\n")
	return b.String()
}

func flags(entry AnnotatedEntry) string {
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

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
