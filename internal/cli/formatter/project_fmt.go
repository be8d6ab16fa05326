package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
)

// FormatProjectList renders every project with its progress inside a box.
func FormatProjectList(projects []*domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects yet. Create one with 'project add'.")
	}
	t := Table{
		Headers:    []string{"ID", "NAME", "METHOD", "BUDGET", "END", "PROGRESS"},
		RightAlign: []int{3},
	}
	for _, p := range projects {
		t.AddRow(
			StyleGreen.Render(p.DisplayID()),
			Bold(Truncate(p.Name, 32)),
			MethodologyBadge(p.Methodology),
			FormatMoney(p.Budget),
			FormatDate(p.EndDate),
			RenderProgress(float64(p.Progress), 10),
		)
	}
	return RenderBox("Projects", t.Render())
}

// FormatProjectOverview renders the overview tab: the project card, its team
// and its phases.
func FormatProjectOverview(d *contract.ProjectDetail) string {
	var b strings.Builder
	b.WriteString(FormatProjectCard(&d.Project))
	b.WriteString("\n\n")
	b.WriteString(FormatTeam(d.Members))
	b.WriteString("\n")
	b.WriteString(FormatPhases(d.Phases))
	return b.String()
}

// FormatProjectCard renders the basic fields of a project.
func FormatProjectCard(p *domain.Project) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Name) + "  " + Dim(p.DisplayID()) + "\n")
	if p.Description != "" {
		b.WriteString(StyleFg.Render(p.Description) + "\n")
	}
	b.WriteString("\n")
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(PadRight(label, 12)), value))
	}
	field("Methodology", MethodologyBadge(p.Methodology))
	field("End date", FormatDateLong(p.EndDate))
	field("Budget", FormatMoney(p.Budget))
	field("Progress", RenderProgress(float64(p.Progress), 20))
	if !p.CanDelete() {
		field("", Dim(fmt.Sprintf("locked: %d%% or more complete", domain.DeleteThreshold)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func FormatTeam(members []domain.TeamMember) string {
	var b strings.Builder
	b.WriteString(Header("Team") + "\n")
	if len(members) == 0 {
		b.WriteString(Dim("No team members.") + "\n")
		return b.String()
	}
	for _, m := range members {
		b.WriteString(fmt.Sprintf("%s  %s\n", Bold(m.Name), StylePurple.Render(m.Role)))
		if m.RoleDescription != "" {
			b.WriteString("  " + Dim(m.RoleDescription) + "\n")
		}
	}
	return b.String()
}

func FormatPhases(phases []domain.Phase) string {
	var b strings.Builder
	b.WriteString(Header("Phases") + "\n")
	if len(phases) == 0 {
		b.WriteString(Dim("No phases defined.") + "\n")
		return b.String()
	}
	t := Table{Headers: []string{"ID", "PHASE", "START", "END", "STATUS"}}
	for _, ph := range phases {
		t.AddRow(Dim(domain.ShortID(ph.ID)), ph.Name, FormatDate(ph.StartDate), FormatDate(ph.EndDate), StatusPill(ph.Status))
	}
	b.WriteString(t.Render())
	return b.String()
}
