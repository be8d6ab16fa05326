package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/domain"
)

// FormatTaskList renders one block per task. phases supplies phase names;
// tasks whose phase is missing show the raw phase ID.
func FormatTaskList(tasks []domain.Task, phases []domain.Phase) string {
	if len(tasks) == 0 {
		return Dim("No tasks match.")
	}
	names := make(map[string]string, len(phases))
	for _, ph := range phases {
		names[ph.ID] = ph.Name
	}

	blocks := make([]string, 0, len(tasks))
	for i := range tasks {
		blocks = append(blocks, formatTask(&tasks[i], names))
	}
	return strings.Join(blocks, "\n\n")
}

func formatTask(t *domain.Task, phaseNames map[string]string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
		Dim(domain.ShortID(t.ID)), Bold(t.Name), StatusPill(t.Status), PriorityBadge(t.Priority)))
	if t.Description != "" {
		b.WriteString("  " + StyleFg.Render(t.Description) + "\n")
	}
	phase, ok := phaseNames[t.PhaseID]
	if !ok {
		phase = t.PhaseID
	}
	b.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %s → %s",
		Dim("assignee"), t.Assignee,
		Dim("phase"), StylePurple.Render(phase),
		Dim("dates"), FormatDate(t.StartDate), FormatDate(t.EndDate)))
	if len(t.Images) > 0 {
		b.WriteString(fmt.Sprintf("\n  %s %s", Dim("images"), strings.Join(t.Images, ", ")))
	}
	return b.String()
}

// FormatTaskFilter describes an active filter, or "" when none is set.
func FormatTaskFilter(f domain.TaskFilter) string {
	var parts []string
	if s := strings.TrimSpace(f.Search); s != "" {
		parts = append(parts, fmt.Sprintf("search %q", s))
	}
	if f.Priority != "" && f.Priority != "all" {
		parts = append(parts, "priority "+PriorityBadge(f.Priority))
	}
	if len(parts) == 0 {
		return ""
	}
	return Dim("filter: ") + strings.Join(parts, Dim(", "))
}
