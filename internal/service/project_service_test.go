package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/planboard/internal/apperr"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/testutil"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProjectInput() domain.ProjectInput {
	return domain.ProjectInput{
		Name:        "  Data Platform ",
		Description: "Central warehouse",
		EndDate:     testutil.Date(2025, 12, 31),
		Budget:      50000,
		Members: []domain.MemberInput{
			{Name: "Ana", Role: "Lead", RoleDescription: "Owns the roadmap"},
			{Name: "Luis", Role: "Engineer", RoleDescription: "Builds pipelines"},
		},
		Phases: []domain.PhaseInput{
			{Name: "Discovery", StartDate: testutil.Date(2025, 2, 1), EndDate: testutil.Date(2025, 2, 28)},
			{Name: "Build", StartDate: testutil.Date(2025, 3, 1), EndDate: testutil.Date(2025, 6, 30), Status: domain.StatusInProgress},
		},
	}
}

func TestProjectService_Create_WithTeamAndPhases(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	p, err := s.projectSvc.Create(ctx, validProjectInput())
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Data Platform", p.Name)
	assert.Equal(t, domain.MethodologyScrum, p.Methodology, "methodology defaults to scrum")
	assert.Equal(t, 0, p.Progress)

	detail, err := s.projectSvc.GetDetail(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, detail.Members, 2)
	assert.Equal(t, "Ana", detail.Members[0].Name)
	assert.Equal(t, 1, detail.Members[1].Position)
	require.Len(t, detail.Phases, 2)
	assert.Equal(t, domain.StatusPending, detail.Phases[0].Status)
	assert.Equal(t, domain.StatusInProgress, detail.Phases[1].Status)
	assert.Empty(t, detail.Tasks)

	ev := s.observer.last()
	assert.Equal(t, "create-project", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 2, ev.Fields["phase_count"])
}

func TestProjectService_Create_ValidationErrorsPerField(t *testing.T) {
	s := newStack(t)

	in := validProjectInput()
	in.Name = "   "
	in.Budget = -5
	in.Phases[1].EndDate = testutil.Date(2025, 1, 1)

	_, err := s.projectSvc.Create(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs, "name")
	assert.Contains(t, verrs, "budget")
	assert.Contains(t, verrs, "phases")

	projects, err := s.projects.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.False(t, s.observer.last().Success)
}

func TestProjectService_Create_RollbackOnPhaseInsertFailure(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	// The project and its members are written before the first phase fails.
	failUoW := &testutil.FailingUoW{DB: s.db, Match: "INSERT INTO phases", Err: errors.New("injected phase failure")}
	svc := NewProjectService(s.projects, s.members, s.phases, s.tasks, s.kpis, failUoW)

	_, err := svc.Create(ctx, validProjectInput())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected phase failure")

	projects, err := s.projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects, "project insert must be rolled back")
}

func TestProjectService_Resolve(t *testing.T) {
	s := seededStack(t)
	ctx := context.Background()

	p, err := s.projectSvc.Resolve(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Aplicación Móvil E-commerce", p.Name)

	p, err = s.projectSvc.Resolve(ctx, "portal web corporativo")
	require.NoError(t, err)
	assert.Equal(t, "3", p.ID)

	_, err = s.projectSvc.Resolve(ctx, "nothing like this")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.projectSvc.Resolve(ctx, " ")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestProjectService_Resolve_PrefixAndAmbiguity(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	require.NoError(t, s.projects.Create(ctx, testutil.NewTestProject("Alpha", testutil.WithProjectID("abc111"))))
	require.NoError(t, s.projects.Create(ctx, testutil.NewTestProject("Beta", testutil.WithProjectID("abc222"))))

	p, err := s.projectSvc.Resolve(ctx, "abc2")
	require.NoError(t, err)
	assert.Equal(t, "Beta", p.Name)

	_, err = s.projectSvc.Resolve(ctx, "abc")
	assert.ErrorIs(t, err, apperr.ErrAmbiguous)
	assert.Contains(t, err.Error(), "abc111")
}

func TestProjectService_GetDetail_Seeded(t *testing.T) {
	s := seededStack(t)

	detail, err := s.projectSvc.GetDetail(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 45, detail.Project.Progress)
	assert.Len(t, detail.Members, 4)
	assert.Len(t, detail.Phases, 5)
	assert.Len(t, detail.Tasks, 4)
	assert.Len(t, detail.KPIs, 4)
	assert.Equal(t, "Desarrollo Sprint 1-3", detail.PhaseName("p2"))
}

func TestProjectService_GetDetail_NotFound(t *testing.T) {
	s := newStack(t)
	_, err := s.projectSvc.GetDetail(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProjectService_Update(t *testing.T) {
	s := seededStack(t)
	ctx := context.Background()

	in := domain.ProjectInput{
		Name:        "ERP v2",
		Description: "Renamed",
		EndDate:     testutil.Date(2026, 3, 31),
		Budget:      175000,
		Methodology: domain.MethodologyKanban,
		// Ignored by Update.
		Members: []domain.MemberInput{{Name: "x"}},
	}
	p, err := s.projectSvc.Update(ctx, "1", in)
	require.NoError(t, err)
	assert.Equal(t, "ERP v2", p.Name)
	assert.Equal(t, 45, p.Progress, "progress is not editable")

	stored, err := s.projects.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.MethodologyKanban, stored.Methodology)
	assert.Equal(t, 175000.0, stored.Budget)

	members, err := s.members.ListByProject(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, members, 4)
}

func TestProjectService_Update_Invalid(t *testing.T) {
	s := seededStack(t)
	_, err := s.projectSvc.Update(context.Background(), "1", domain.ProjectInput{Name: "x"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestProjectService_Delete_ThresholdEnforced(t *testing.T) {
	s := seededStack(t)
	ctx := context.Background()

	err := s.projectSvc.Delete(ctx, "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrDeleteBlocked)
	assert.Contains(t, err.Error(), "45%")

	require.NoError(t, s.projectSvc.Delete(ctx, "2"), "15% is below the threshold")
	_, err = s.projects.GetByID(ctx, "2")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProjectService_Delete_AtThresholdBlocked(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	p := testutil.NewTestProject("Edge", testutil.WithProgress(domain.DeleteThreshold))
	require.NoError(t, s.projects.Create(ctx, p))

	assert.ErrorIs(t, s.projectSvc.Delete(ctx, p.ID), apperr.ErrDeleteBlocked)
}

func TestProjectService_Delete_CascadesChildren(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	p, err := s.projectSvc.Create(ctx, validProjectInput())
	require.NoError(t, err)

	require.NoError(t, s.projectSvc.Delete(ctx, p.ID))

	phases, err := s.phases.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, phases)
	members, err := s.members.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestProjectService_AddMemberAndPhase(t *testing.T) {
	s := seededStack(t)
	ctx := context.Background()

	m, err := s.projectSvc.AddMember(ctx, "2", domain.MemberInput{Name: "Eva", Role: "QA", RoleDescription: "Tests releases"})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Position)

	ph, err := s.projectSvc.AddPhase(ctx, "1", domain.PhaseInput{
		Name: "Soporte", StartDate: testutil.Date(2026, 1, 1), EndDate: testutil.Date(2026, 2, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, ph.Position)
	assert.Equal(t, domain.StatusPending, ph.Status)

	_, err = s.projectSvc.AddPhase(ctx, "missing", domain.PhaseInput{
		Name: "x", StartDate: testutil.Date(2026, 1, 1), EndDate: testutil.Date(2026, 2, 1),
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.projectSvc.AddMember(ctx, "2", domain.MemberInput{Name: "Eva"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestProjectService_List(t *testing.T) {
	s := seededStack(t)
	projects, err := s.projectSvc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "1", projects[0].ID)
}
