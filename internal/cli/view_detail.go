package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/apperr"
	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type detailTab int

const (
	tabOverview detailTab = iota
	tabTasks
	tabGantt
	tabKPIs
	tabDocuments
)

var detailTabNames = []string{"Overview", "Tasks", "Gantt", "KPIs", "Documents"}

func (t detailTab) String() string { return detailTabNames[t] }

// priorityCycle is the order the "f" key steps through.
var priorityCycle = []domain.Priority{"", domain.PriorityCritical, domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}

type detailLoadedMsg struct {
	projectID string
	detail    *contract.ProjectDetail
	kpis      *contract.KPISummary
	gantt     *contract.GanttResponse
	ganttErr  error
	err       error
}

type detailTasksMsg struct {
	projectID string
	filter    domain.TaskFilter
	tasks     []domain.Task
	err       error
}

type detailDocsMsg struct {
	projectID string
	filter    domain.DocumentFilter
	library   *contract.DocumentLibrary
	err       error
}

// detailView shows one project across five tabs. Task and document filters
// are applied by the services, so every keystroke in the filter prompt
// reloads the list.
type detailView struct {
	state   *SharedState
	project domain.Project

	tab      detailTab
	detail   *contract.ProjectDetail
	tasks    []domain.Task
	kpis     *contract.KPISummary
	gantt    *contract.GanttResponse
	ganttErr error
	library  *contract.DocumentLibrary
	err      error
	loading  bool

	taskFilter domain.TaskFilter
	docFilter  domain.DocumentFilter
	filter     textinput.Model
	filtering  bool

	content viewport.Model
}

func newDetailView(state *SharedState, p *domain.Project) *detailView {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 100

	vp := viewport.New(max(state.Width, 20), max(state.ContentHeight()-2, 3))
	vp.KeyMap = scrollKeyMap()

	return &detailView{
		state:   state,
		project: *p,
		filter:  ti,
		content: vp,
		loading: true,
	}
}

func (v *detailView) ID() ViewID    { return ViewDetail }
func (v *detailView) Title() string { return v.project.Name }

func (v *detailView) CapturesInput() bool { return v.filtering }

func (v *detailView) ShortHelp() []key.Binding {
	if v.filtering {
		return []key.Binding{binding("enter", "keep filter"), binding("esc", "clear filter")}
	}
	keys := []key.Binding{binding("tab", "next tab")}
	switch v.tab {
	case tabTasks:
		keys = append(keys, binding("/", "search"), binding("f", "priority"), binding("a", "add task"))
	case tabDocuments:
		keys = append(keys, binding("/", "search"))
	case tabOverview:
		keys = append(keys, binding("a", "add member"))
	case tabGantt:
		keys = append(keys, binding("a", "add phase"))
	case tabKPIs:
		keys = append(keys, binding("a", "add KPI"))
	}
	return append(keys, binding("e", "edit"), binding("x", "delete"))
}

func (v *detailView) Init() tea.Cmd {
	return tea.Batch(v.load(), v.loadTasks(), v.loadDocs())
}

func (v *detailView) load() tea.Cmd {
	app, id := v.state.App, v.project.ID
	return func() tea.Msg {
		ctx := context.Background()
		detail, err := app.Projects.GetDetail(ctx, id)
		if err != nil {
			return detailLoadedMsg{projectID: id, err: err}
		}
		kpis, err := app.KPIs.Summary(ctx, id)
		if err != nil {
			return detailLoadedMsg{projectID: id, err: err}
		}
		gantt, ganttErr := app.Gantt.Build(ctx, contract.NewGanttRequest(id))
		return detailLoadedMsg{projectID: id, detail: detail, kpis: kpis, gantt: gantt, ganttErr: ganttErr}
	}
}

func (v *detailView) loadTasks() tea.Cmd {
	app, id, filter := v.state.App, v.project.ID, v.taskFilter
	return func() tea.Msg {
		tasks, err := app.Tasks.List(context.Background(), id, filter)
		return detailTasksMsg{projectID: id, filter: filter, tasks: tasks, err: err}
	}
}

func (v *detailView) loadDocs() tea.Cmd {
	app, id, filter := v.state.App, v.project.ID, v.docFilter
	return func() tea.Msg {
		lib, err := app.Documents.Library(context.Background(), filter)
		return detailDocsMsg{projectID: id, filter: filter, library: lib, err: err}
	}
}

func (v *detailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.content.Width = msg.Width
		v.content.Height = max(v.state.ContentHeight()-2, 3)
		v.refreshContent()
		return v, nil

	case detailLoadedMsg:
		if msg.projectID != v.project.ID {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, apperr.ErrNotFound) {
				return v, popView()
			}
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.detail = msg.detail
		v.project = msg.detail.Project
		v.kpis = msg.kpis
		v.gantt, v.ganttErr = msg.gantt, msg.ganttErr
		v.refreshContent()
		return v, nil

	case detailTasksMsg:
		// Drop results for a filter that has since changed.
		if msg.projectID != v.project.ID || msg.filter != v.taskFilter {
			return v, nil
		}
		if msg.err != nil {
			v.err = msg.err
		} else {
			v.tasks = msg.tasks
		}
		v.refreshContent()
		return v, nil

	case detailDocsMsg:
		if msg.projectID != v.project.ID || msg.filter != v.docFilter {
			return v, nil
		}
		if msg.err != nil {
			v.err = msg.err
		} else {
			v.library = msg.library
		}
		v.refreshContent()
		return v, nil

	case refreshViewMsg:
		return v, tea.Batch(v.load(), v.loadTasks(), v.loadDocs())

	case tea.KeyMsg:
		if v.filtering {
			return v, v.updateFilter(msg)
		}
		return v, v.handleKey(msg)
	}
	return v, nil
}

func (v *detailView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "right", "l":
		v.setTab((v.tab + 1) % detailTab(len(detailTabNames)))
	case "shift+tab", "left", "h":
		v.setTab((v.tab + detailTab(len(detailTabNames)) - 1) % detailTab(len(detailTabNames)))
	case "1", "2", "3", "4", "5":
		v.setTab(detailTab(msg.String()[0] - '1'))
	case "/":
		if v.tab == tabTasks || v.tab == tabDocuments {
			v.filtering = true
			v.filter.SetValue(v.searchValue())
			v.filter.CursorEnd()
			return v.filter.Focus()
		}
	case "f":
		if v.tab == tabTasks {
			v.taskFilter.Priority = nextPriority(v.taskFilter.Priority)
			v.refreshContent()
			return v.loadTasks()
		}
	case "a":
		if v.detail == nil {
			return nil
		}
		switch v.tab {
		case tabOverview:
			return addMemberWizard(v.state, &v.project)
		case tabTasks:
			return addTaskWizard(v.state, v.detail)
		case tabGantt:
			return addPhaseWizard(v.state, &v.project)
		case tabKPIs:
			return addKPIWizard(v.state, &v.project)
		}
	case "e":
		return editProjectWizard(v.state, &v.project)
	case "x":
		return deleteProjectWizard(v.state, &v.project)
	default:
		var cmd tea.Cmd
		v.content, cmd = v.content.Update(msg)
		return cmd
	}
	return nil
}

func (v *detailView) setTab(t detailTab) {
	v.tab = t
	v.refreshContent()
	v.content.GotoTop()
}

func (v *detailView) searchValue() string {
	if v.tab == tabDocuments {
		return v.docFilter.Search
	}
	return v.taskFilter.Search
}

// updateFilter edits the search prompt. Enter keeps the filter, esc clears
// it.
func (v *detailView) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		v.filtering = false
		v.filter.Blur()
		v.refreshContent()
		return nil
	case tea.KeyEsc:
		v.filtering = false
		v.filter.Blur()
		v.filter.SetValue("")
		return v.applySearch("")
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	if v.filter.Value() != v.searchValue() {
		return tea.Batch(cmd, v.applySearch(v.filter.Value()))
	}
	v.refreshContent()
	return cmd
}

func (v *detailView) applySearch(s string) tea.Cmd {
	if v.tab == tabDocuments {
		v.docFilter.Search = s
		v.refreshContent()
		return v.loadDocs()
	}
	v.taskFilter.Search = s
	v.refreshContent()
	return v.loadTasks()
}

func nextPriority(p domain.Priority) domain.Priority {
	for i, c := range priorityCycle {
		if c == p {
			return priorityCycle[(i+1)%len(priorityCycle)]
		}
	}
	return ""
}

// refreshContent re-renders the current tab into the viewport.
func (v *detailView) refreshContent() {
	v.content.SetContent(v.renderTab())
}

func (v *detailView) renderTab() string {
	if v.detail == nil {
		return formatter.Dim("Loading...")
	}

	switch v.tab {
	case tabTasks:
		var b strings.Builder
		if f := formatter.FormatTaskFilter(v.taskFilter); f != "" {
			b.WriteString(formatter.Dim(f) + "\n\n")
		}
		b.WriteString(formatter.FormatTaskList(v.tasks, v.detail.Phases))
		return b.String()

	case tabGantt:
		if v.ganttErr != nil {
			return shellError(v.ganttErr)
		}
		if v.gantt == nil {
			return formatter.Dim("Loading...")
		}
		return formatter.RenderGantt(v.gantt, v.ganttTrackWidth())

	case tabKPIs:
		if v.kpis == nil {
			return formatter.Dim("Loading...")
		}
		return formatter.FormatKPISummary(v.kpis)

	case tabDocuments:
		if v.library == nil {
			return formatter.Dim("Loading...")
		}
		var b strings.Builder
		if v.docFilter.Search != "" {
			b.WriteString(formatter.Dim(fmt.Sprintf("filter: search %q", v.docFilter.Search)) + "\n\n")
		}
		b.WriteString(formatter.FormatDocumentLibrary(v.library))
		return b.String()
	}

	return formatter.FormatProjectOverview(v.detail)
}

// ganttTrackWidth fits the track to the terminal, leaving room for the phase
// label and date columns.
func (v *detailView) ganttTrackWidth() int {
	w := v.state.App.ganttWidth()
	if v.state.Width > 0 {
		w = min(w, v.state.Width-40)
	}
	return w
}

func (v *detailView) View() string {
	if v.err != nil && v.detail == nil {
		return "\n  " + shellError(v.err)
	}

	var b strings.Builder
	b.WriteString(v.renderTabBar())
	b.WriteString("\n")
	if v.filtering {
		b.WriteString(v.filter.View())
	} else if v.err != nil {
		b.WriteString(shellError(v.err))
	}
	b.WriteString("\n")
	if v.state.Height == 0 {
		// No window size yet; render unclipped.
		b.WriteString(v.renderTab())
	} else {
		b.WriteString(v.content.View())
	}
	return b.String()
}

func (v *detailView) renderTabBar() string {
	parts := make([]string, len(detailTabNames))
	for i, name := range detailTabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if detailTab(i) == v.tab {
			parts[i] = formatter.StyleHeader.Render("[" + label + "]")
		} else {
			parts[i] = formatter.Dim(" " + label + " ")
		}
	}
	return strings.Join(parts, " ")
}
