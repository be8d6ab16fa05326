package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dashboardLoadedMsg struct {
	stats    *contract.DashboardStats
	projects []*domain.Project
	err      error
}

// dashboardView is the home screen: summary cards on top, the project list
// on the left and the selected project's card on the right.
type dashboardView struct {
	state    *SharedState
	stats    *contract.DashboardStats
	projects []*domain.Project
	loading  bool
	err      error
	cursor   int
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state, loading: true}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		binding("enter", "open"),
		binding("n", "new"),
		binding("e", "edit"),
		binding("x", "delete"),
		binding("r", "refresh"),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.load()
}

func (v *dashboardView) load() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := app.Dashboard.Stats(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		projects, err := app.Projects.List(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{stats: stats, projects: projects}
	}
}

func (v *dashboardView) selected() *domain.Project {
	if v.cursor < 0 || v.cursor >= len(v.projects) {
		return nil
	}
	return v.projects[v.cursor]
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.stats = msg.stats
		v.projects = msg.projects
		v.state.Projects = msg.projects
		if v.cursor >= len(v.projects) {
			v.cursor = max(0, len(v.projects)-1)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.projects)-1 {
				v.cursor++
			}
		case "enter":
			if p := v.selected(); p != nil {
				return v, pushView(newDetailView(v.state, p))
			}
		case "n":
			return v, newProjectWizard(v.state)
		case "e":
			if p := v.selected(); p != nil {
				return v, editProjectWizard(v.state, p)
			}
		case "x":
			if p := v.selected(); p != nil {
				return v, deleteProjectWizard(v.state, p)
			}
		case "r":
			v.loading = true
			return v, v.load()
		}
	}
	return v, nil
}

const dashListWidth = 44

func (v *dashboardView) View() string {
	if v.loading && v.stats == nil {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + shellError(v.err)
	}

	var b strings.Builder
	b.WriteString(formatter.FormatStats(v.stats))
	b.WriteString("\n\n")

	if len(v.projects) == 0 {
		b.WriteString("  " + formatter.Dim("No projects yet. Press 'n' to create one."))
		return b.String()
	}

	list := v.renderList()
	card := formatter.Dim("Select a project.")
	if p := v.selected(); p != nil {
		card = formatter.FormatProjectCard(p)
	}

	if v.state.Width > 0 && v.state.Width < 80 {
		b.WriteString(list + "\n" + card)
		return b.String()
	}

	divider := formatter.Dim("│")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(dashListWidth).Render(list),
		" "+divider+" ",
		card,
	))
	return b.String()
}

func (v *dashboardView) renderList() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("PROJECTS") + "\n\n")
	for i, p := range v.projects {
		cursor, nameStyle := "  ", formatter.StyleFg
		if i == v.cursor {
			cursor, nameStyle = formatter.StyleGreen.Render("▸ "), formatter.StyleBold
		}
		fmt.Fprintf(&b, "%s%s %s\n",
			cursor,
			nameStyle.Render(formatter.PadRight(formatter.Truncate(p.Name, 22), 22)),
			formatter.RenderProgress(float64(p.Progress), 10),
		)
	}
	return b.String()
}
