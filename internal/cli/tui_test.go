package cli

import (
	"testing"

	"github.com/alexanderramin/planboard/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tuiDriver adds access to the appModel internals to the generic driver.
type tuiDriver struct {
	*teatest.Driver
}

func newTUIDriver(t *testing.T, app *App) *tuiDriver {
	t.Helper()
	d := teatest.New(t, newAppModel(app), teatest.WithSize(140, 60))
	d.DrainInit()
	return &tuiDriver{Driver: d}
}

func (d *tuiDriver) model() appModel {
	return d.Model.(appModel)
}

func (d *tuiDriver) stackIDs() []ViewID {
	var ids []ViewID
	for _, v := range d.model().viewStack {
		ids = append(ids, v.ID())
	}
	return ids
}

func (d *tuiDriver) activeID() ViewID {
	m := d.model()
	return m.activeView().ID()
}

// command types line into the command bar and runs it.
func (d *tuiDriver) command(line string) {
	d.PressKey(':')
	d.Type(line)
	d.PressEnter()
}

// openERP selects the first project on the dashboard and opens it.
func (d *tuiDriver) openERP() {
	d.PressEnter()
	require.Equal(d.T, ViewDetail, d.activeID())
}

func TestTUI_DashboardShowsStatsAndProjects(t *testing.T) {
	d := newTUIDriver(t, testApp(t))

	d.AssertContains("planboard", "Dashboard", "Total projects", "$275,000",
		erpName, "Portal Web Corporativo", "press : to type a command")
	assert.Len(t, d.model().state.Projects, 3)
}

func TestTUI_CursorMovesSelection(t *testing.T) {
	d := newTUIDriver(t, testApp(t))

	d.PressDown()
	d.PressDown()
	d.PressDown()
	d.PressEnter()
	require.Equal(t, ViewDetail, d.activeID())
	assert.Equal(t, "3", d.model().state.ActiveProjectID)

	d.PressEsc()
	d.PressKey('k')
	d.PressEnter()
	assert.Equal(t, "2", d.model().state.ActiveProjectID)
}

func TestTUI_OpenProjectAndSwitchTabs(t *testing.T) {
	d := newTUIDriver(t, testApp(t))
	d.openERP()

	assert.Equal(t, "1", d.model().state.ActiveProjectID)
	d.AssertContains("1 Overview", "Ana García", "Desarrollo Sprint 1-3")

	d.PressTab()
	d.AssertContains("Integración con API de pagos", "Diseño de arquitectura del sistema")

	d.PressKey('3')
	d.AssertContains("Análisis y Diseño", "Today (Apr 15, 2025)")

	d.PressKey('4')
	d.AssertContains("On target", "3 of 4", "Velocidad del equipo")

	d.PressKey('5')
	d.AssertContains("Manual de Usuario Final.pdf")

	d.PressShiftTab()
	d.AssertContains("Velocidad del equipo")
}

func TestTUI_EscReturnsToDashboard(t *testing.T) {
	d := newTUIDriver(t, testApp(t))
	d.openERP()

	d.PressEsc()
	assert.Equal(t, []ViewID{ViewDashboard}, d.stackIDs())
	assert.Empty(t, d.model().state.ActiveProjectID)
}

func TestTUI_TaskSearchFilter(t *testing.T) {
	d := newTUIDriver(t, testApp(t))
	d.openERP()
	d.PressKey('2')

	d.PressKey('/')
	d.Type("pagos")
	d.AssertContains("Integración con API de pagos")
	d.AssertNotContains("Diseño de dashboard principal")

	// Typing "q" while filtering must not quit.
	d.PressKey('q')
	assert.False(t, d.Quitting)
	d.PressBackspace()

	d.PressEnter()
	d.AssertContains(`filter: search "pagos"`)

	d.PressKey('/')
	d.PressEsc()
	d.AssertContains("Diseño de dashboard principal")
	assert.Equal(t, ViewDetail, d.activeID())
}

func TestTUI_PriorityFilterCycles(t *testing.T) {
	d := newTUIDriver(t, testApp(t))
	d.openERP()
	d.PressKey('2')

	d.PressKey('f')
	d.AssertContains("Diseño de arquitectura del sistema")
	d.AssertNotContains("Integración con API de pagos")

	d.PressKey('f')
	d.AssertContains("Diseño de dashboard principal")
	d.AssertNotContains("Diseño de arquitectura del sistema")

	d.PressKey('f')
	d.PressKey('f')
	d.AssertContains("No tasks match.")

	d.PressKey('f')
	d.AssertContains("Integración con API de pagos", "Diseño de arquitectura del sistema")
}

func TestTUI_DocumentSearch(t *testing.T) {
	d := newTUIDriver(t, testApp(t))
	d.openERP()
	d.PressKey('5')

	d.PressKey('/')
	d.Type("api")
	d.PressEnter()
	d.AssertContains("Especificación de API REST.pdf")
	d.AssertNotContains("Manual de Usuario Final.pdf")
}

func TestTUI_CommandBarRunsCommands(t *testing.T) {
	d := newTUIDriver(t, testApp(t))

	d.command("project list")
	d.AssertContains("PROJECTS", "Aplicación Móvil E-commerce")

	// Any key dismisses the output.
	d.PressKey('j')
	d.AssertContains("Total projects")
}

func TestTUI_CommandBarUsesActiveProject(t *testing.T) {
	d := newTUIDriver(t, testApp(t))
	d.openERP()

	d.command("kpi list")
	d.AssertContains("KPIS ·", "3 of 4")
}

func TestTUI_CommandBarMutationRefreshesViews(t *testing.T) {
	app := testApp(t)
	d := newTUIDriver(t, app)
	d.openERP()
	d.PressKey('2')

	d.command("task status t4 completed")
	d.AssertContains("Task t4 is now")
	d.PressEsc()

	d.PressEsc()
	d.AssertContains("Completed tasks")
	stats := d.model().viewStack[0].(*dashboardView).stats
	require.NotNil(t, stats)
	assert.Equal(t, 3, stats.CompletedTasks)
}

func TestTUI_CommandBarErrors(t *testing.T) {
	d := newTUIDriver(t, testApp(t))

	d.command("gantt")
	d.AssertContains("Error:", "PROJECT argument")

	d.PressEsc()
	d.command(`open "no such project"`)
	d.AssertContains("Error:")
	assert.Equal(t, ViewDashboard, d.activeID())
}

func TestTUI_OpenBuiltin(t *testing.T) {
	d := newTUIDriver(t, testApp(t))

	d.command("open portal web corporativo")
	require.Equal(t, ViewDetail, d.activeID())
	assert.Equal(t, "3", d.model().state.ActiveProjectID)
	d.AssertContains("Portal Web Corporativo")
}

func TestTUI_HelpBuiltin(t *testing.T) {
	d := newTUIDriver(t, testApp(t))

	d.command("help")
	d.AssertContains("focus the command bar", "Available Commands")
}

func TestTUI_CommandBarHistory(t *testing.T) {
	d := newTUIDriver(t, testApp(t))
	d.command("stats")
	d.PressEsc()

	d.PressKey(':')
	d.PressUp()
	assert.Equal(t, "stats", d.model().cmdBar.input.Value())
	d.PressEsc()
	m := d.model()
	assert.False(t, m.cmdBar.Focused())
}

func TestTUI_DeleteBlockedProjectShowsReason(t *testing.T) {
	d := newTUIDriver(t, testApp(t))

	d.PressKey('x')
	d.AssertContains("Error:", "only projects below 20% can be deleted")
	assert.Equal(t, ViewDashboard, d.activeID())
}

func TestTUI_DeleteAsksForConfirmation(t *testing.T) {
	d := newTUIDriver(t, testApp(t))
	d.PressDown()

	d.PressKey('x')
	require.Equal(t, ViewForm, d.activeID())
	d.AssertContains("Delete Aplicación Móvil E-commerce")

	d.PressEsc()
	assert.Equal(t, ViewDashboard, d.activeID())
	d.AssertContains("Cancelled.")
	assert.Len(t, d.model().state.Projects, 3)
}

func TestTUI_NewProjectWizardOpensAndCancels(t *testing.T) {
	d := newTUIDriver(t, testApp(t))

	d.PressKey('n')
	require.Equal(t, ViewForm, d.activeID())
	d.AssertContains("New project", "Name", "Methodology")

	// Letters go to the form, not the global bindings.
	d.Type("q")
	assert.False(t, d.Quitting)

	d.PressEsc()
	assert.Equal(t, []ViewID{ViewDashboard}, d.stackIDs())
}

func TestTUI_AddTaskWizardFromTasksTab(t *testing.T) {
	d := newTUIDriver(t, testApp(t))
	d.openERP()
	d.PressKey('2')

	d.PressKey('a')
	require.Equal(t, ViewForm, d.activeID())
	d.AssertContains("Task name", "Priority")
}

func TestTUI_AddTaskNeedsPhase(t *testing.T) {
	d := newTUIDriver(t, testApp(t))
	d.PressDown()
	d.PressEnter()
	d.PressKey('2')

	d.PressKey('a')
	assert.Equal(t, ViewDetail, d.activeID())
	d.AssertContains("Add a phase before adding tasks.")
}

func TestTUI_GanttTabWithoutPhases(t *testing.T) {
	d := newTUIDriver(t, testApp(t))
	d.PressDown()
	d.PressEnter()

	d.PressKey('3')
	d.AssertContains("No phases defined for this project")
}

func TestTUI_QuitKeys(t *testing.T) {
	d := newTUIDriver(t, testApp(t))
	d.PressKey('q')
	assert.True(t, d.Quitting)

	d = newTUIDriver(t, testApp(t))
	d.command("quit")
	assert.True(t, d.Quitting)

	d = newTUIDriver(t, testApp(t))
	d.openERP()
	d.PressCtrlC()
	assert.True(t, d.Quitting)
}

func TestSplitShellArgs(t *testing.T) {
	parts, err := splitShellArgs(`task add --name "Load tests" --description 'p99 < 200ms' --phase Testing\ y\ QA`)
	require.NoError(t, err)
	assert.Equal(t, []string{"task", "add", "--name", "Load tests", "--description", "p99 < 200ms", "--phase", "Testing y QA"}, parts)

	parts, err = splitShellArgs(`say ""`)
	require.NoError(t, err)
	assert.Equal(t, []string{"say", ""}, parts)

	_, err = splitShellArgs(`open "unterminated`)
	assert.Error(t, err)
	_, err = splitShellArgs(`trailing\`)
	assert.Error(t, err)
}

func TestFilterSuggestions(t *testing.T) {
	pool := []string{"gantt", "gantt-export", "kpi"}
	assert.Equal(t, []string{"gantt", "gantt-export"}, filterSuggestions(pool, "GA"))
	assert.Equal(t, pool, filterSuggestions(pool, ""))
	assert.Empty(t, filterSuggestions(pool, "zz"))
}

func TestNextPriorityCycles(t *testing.T) {
	p := nextPriority("")
	seen := []string{string(p)}
	for i := 0; i < 4; i++ {
		p = nextPriority(p)
		seen = append(seen, string(p))
	}
	assert.Equal(t, []string{"critical", "high", "medium", "low", ""}, seen)
}
