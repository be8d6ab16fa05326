package contract

import "github.com/alexanderramin/planboard/internal/domain"

// DashboardStats are the four headline cards of the dashboard.
type DashboardStats struct {
	TotalProjects  int
	ActiveProjects int
	TotalBudget    float64
	CompletedTasks int
}

// ProjectDetail is a project with all of its collections loaded.
type ProjectDetail struct {
	Project domain.Project
	Members []domain.TeamMember
	Phases  []domain.Phase
	Tasks   []domain.Task
	KPIs    []domain.KPI
}

// PhaseName returns the name of the phase with the given ID, or "" if the
// project has no such phase.
func (d *ProjectDetail) PhaseName(id string) string {
	for i := range d.Phases {
		if d.Phases[i].ID == id {
			return d.Phases[i].Name
		}
	}
	return ""
}

type KPISummary struct {
	KPIs     []domain.KPI
	OnTarget int
	Total    int
}

type DocumentLibrary struct {
	Technical []domain.Document
	Guides    []domain.Document
}

// Total is the number of documents in both groups.
func (l *DocumentLibrary) Total() int {
	return len(l.Technical) + len(l.Guides)
}

type ImportResult struct {
	ProjectCount  int
	MemberCount   int
	PhaseCount    int
	TaskCount     int
	KPICount      int
	DocumentCount int
}
