package cli

import "github.com/alexanderramin/planboard/internal/domain"

// SharedState is shared by pointer across all views.
type SharedState struct {
	App *App

	// Open project, used as the default PROJECT for command-bar commands.
	ActiveProjectID   string
	ActiveProjectName string

	// Last project list loaded by the dashboard, for command-bar suggestions.
	Projects []*domain.Project

	Width  int
	Height int
}

func (s *SharedState) SetActiveProject(p *domain.Project) {
	s.ActiveProjectID = p.ID
	s.ActiveProjectName = p.Name
}

func (s *SharedState) ClearActiveProject() {
	s.ActiveProjectID = ""
	s.ActiveProjectName = ""
}

// ContentHeight is the height left for view content after the header
// (2 lines), status bar (2 lines) and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	return max(s.Height-5, 1)
}
