package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/alexanderramin/planboard/internal/testutil"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/stretchr/testify/require"
)

var seedToday = time.Date(2025, 4, 15, 9, 0, 0, 0, time.UTC)

type testStack struct {
	db        *sql.DB
	projects  *repository.SQLiteProjectRepo
	members   *repository.SQLiteMemberRepo
	phases    *repository.SQLitePhaseRepo
	tasks     *repository.SQLiteTaskRepo
	kpis      *repository.SQLiteKPIRepo
	documents *repository.SQLiteDocumentRepo
	observer  *recordingObserver

	projectSvc   ProjectService
	taskSvc      TaskService
	kpiSvc       KPIService
	documentSvc  DocumentService
	dashboardSvc DashboardService
	ganttSvc     GanttService
	importSvc    ImportService
}

func newStack(t *testing.T) *testStack {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	s := &testStack{
		db:        database,
		projects:  repository.NewSQLiteProjectRepo(database),
		members:   repository.NewSQLiteMemberRepo(database),
		phases:    repository.NewSQLitePhaseRepo(database),
		tasks:     repository.NewSQLiteTaskRepo(database),
		kpis:      repository.NewSQLiteKPIRepo(database),
		documents: repository.NewSQLiteDocumentRepo(database),
		observer:  &recordingObserver{},
	}
	s.projectSvc = NewProjectService(s.projects, s.members, s.phases, s.tasks, s.kpis, uow, s.observer)
	s.taskSvc = NewTaskService(s.projects, s.tasks, uow, s.observer)
	s.kpiSvc = NewKPIService(s.projects, s.kpis, uow, s.observer)
	s.documentSvc = NewDocumentService(s.documents)
	s.dashboardSvc = NewDashboardService(s.projects, s.tasks)
	s.ganttSvc = NewGanttService(s.projects, s.phases, timeline.FixedClock{At: seedToday}, s.observer)
	s.importSvc = NewImportService(uow, s.observer)
	return s
}

// seededStack returns a stack holding the bundled demo workspace.
func seededStack(t *testing.T) *testStack {
	t.Helper()
	s := newStack(t)
	_, err := s.importSvc.Seed(context.Background())
	require.NoError(t, err)
	return s
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.events) == 0 {
		return UseCaseEvent{}
	}
	return o.events[len(o.events)-1]
}
