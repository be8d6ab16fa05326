package cli

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/stretchr/testify/require"
)

const erpName = "Sistema de Gestión Empresarial"

var seedToday = time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)

// testApp wires every service against an in-memory database holding the
// bundled demo workspace, with today pinned to 2025-04-15.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clock := timeline.FixedClock{At: seedToday}

	projects := repository.NewSQLiteProjectRepo(database)
	members := repository.NewSQLiteMemberRepo(database)
	phases := repository.NewSQLitePhaseRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	kpis := repository.NewSQLiteKPIRepo(database)
	documents := repository.NewSQLiteDocumentRepo(database)

	app := &App{
		Projects:   service.NewProjectService(projects, members, phases, tasks, kpis, uow),
		Tasks:      service.NewTaskService(projects, tasks, uow),
		KPIs:       service.NewKPIService(projects, kpis, uow),
		Documents:  service.NewDocumentService(documents),
		Dashboard:  service.NewDashboardService(projects, tasks),
		Gantt:      service.NewGanttService(projects, phases, clock),
		Import:     service.NewImportService(uow),
		Clock:      clock,
		GanttWidth: 50,
	}
	_, err := app.Import.Seed(context.Background())
	require.NoError(t, err)
	return app
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// executeCmd runs args through a fresh command tree and returns its output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	root.SilenceErrors = true
	err := root.Execute()
	return stripANSI(buf.String()), err
}
