package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/apperr"
	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type projectService struct {
	projects repository.ProjectRepo
	members  repository.MemberRepo
	phases   repository.PhaseRepo
	tasks    repository.TaskRepo
	kpis     repository.KPIRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewProjectService(
	projects repository.ProjectRepo,
	members repository.MemberRepo,
	phases repository.PhaseRepo,
	tasks repository.TaskRepo,
	kpis repository.KPIRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ProjectService {
	return &projectService{
		projects: projects,
		members:  members,
		phases:   phases,
		tasks:    tasks,
		kpis:     kpis,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) Create(ctx context.Context, in domain.ProjectInput) (project *domain.Project, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project": in.Name}
	defer observe(ctx, s.observer, "create-project", startedAt, fields, &err)

	in = in.Normalize()
	if err = in.Validate(); err != nil {
		return nil, invalid(err)
	}

	now := startedAt.Truncate(time.Second)
	p := &domain.Project{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		EndDate:     in.EndDate,
		Budget:      in.Budget,
		Methodology: in.Methodology,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	members := make([]*domain.TeamMember, len(in.Members))
	for i, m := range in.Members {
		members[i] = newMember(p.ID, m, i)
	}
	phases := make([]*domain.Phase, len(in.Phases))
	for i, ph := range in.Phases {
		phases[i] = newPhase(p.ID, ph, i)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txMembers := repository.NewSQLiteMemberRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)

		if err := txProjects.Create(ctx, p); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, m := range members {
			if err := txMembers.Create(ctx, m); err != nil {
				return fmt.Errorf("creating member %q: %w", m.Name, err)
			}
		}
		for _, ph := range phases {
			if err := txPhases.Create(ctx, ph); err != nil {
				return fmt.Errorf("creating phase %q: %w", ph.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["project_id"] = p.ID
	fields["member_count"] = len(members)
	fields["phase_count"] = len(phases)
	return p, nil
}

func (s *projectService) Resolve(ctx context.Context, ref string) (*domain.Project, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: project reference is empty", apperr.ErrValidation)
	}

	p, err := s.projects.GetByID(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	byPrefix, err := s.projects.FindByIDPrefix(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p, err := single(ref, byPrefix); p != nil || err != nil {
		return p, err
	}

	byName, err := s.projects.FindByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p, err := single(ref, byName); p != nil || err != nil {
		return p, err
	}
	return nil, fmt.Errorf("project %q: %w", ref, apperr.ErrNotFound)
}

// single returns the only match, an ErrAmbiguous error for several, or
// nil, nil for none.
func single(ref string, matches []*domain.Project) (*domain.Project, error) {
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	}
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.DisplayID()
	}
	return nil, fmt.Errorf("project %q matches %s: %w", ref, strings.Join(ids, ", "), apperr.ErrAmbiguous)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) GetDetail(ctx context.Context, id string) (*contract.ProjectDetail, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		members []*domain.TeamMember
		phases  []*domain.Phase
		tasks   []*domain.Task
		kpis    []*domain.KPI
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		members, err = s.members.ListByProject(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		phases, err = s.phases.ListByProject(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = s.tasks.ListByProject(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		kpis, err = s.kpis.ListByProject(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading project %s: %w", p.DisplayID(), err)
	}

	return &contract.ProjectDetail{
		Project: *p,
		Members: values(members),
		Phases:  values(phases),
		Tasks:   values(tasks),
		KPIs:    values(kpis),
	}, nil
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, id string, in domain.ProjectInput) (project *domain.Project, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": id}
	defer observe(ctx, s.observer, "update-project", startedAt, fields, &err)

	in = in.Basics().Normalize()
	if err = in.Validate(); err != nil {
		return nil, invalid(err)
	}

	project, err = s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Name = in.Name
	project.Description = in.Description
	project.EndDate = in.EndDate
	project.Budget = in.Budget
	project.Methodology = in.Methodology
	project.UpdatedAt = startedAt.Truncate(time.Second)

	if err = s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": id}
	defer observe(ctx, s.observer, "delete-project", startedAt, fields, &err)

	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	fields["progress"] = p.Progress
	if !p.CanDelete() {
		return fmt.Errorf("project %q is %d%% complete, only projects below %d%% can be deleted: %w",
			p.Name, p.Progress, domain.DeleteThreshold, apperr.ErrDeleteBlocked)
	}
	return s.projects.Delete(ctx, id)
}

func (s *projectService) AddMember(ctx context.Context, projectID string, in domain.MemberInput) (*domain.TeamMember, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	return db.InTx(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (*domain.TeamMember, error) {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return nil, err
		}
		txMembers := repository.NewSQLiteMemberRepo(tx)
		existing, err := txMembers.ListByProject(ctx, projectID)
		if err != nil {
			return nil, err
		}
		m := newMember(projectID, in, len(existing))
		if err := txMembers.Create(ctx, m); err != nil {
			return nil, fmt.Errorf("creating member %q: %w", m.Name, err)
		}
		return m, nil
	})
}

func (s *projectService) AddPhase(ctx context.Context, projectID string, in domain.PhaseInput) (*domain.Phase, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	return db.InTx(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (*domain.Phase, error) {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return nil, err
		}
		txPhases := repository.NewSQLitePhaseRepo(tx)
		existing, err := txPhases.ListByProject(ctx, projectID)
		if err != nil {
			return nil, err
		}
		ph := newPhase(projectID, in, len(existing))
		if err := txPhases.Create(ctx, ph); err != nil {
			return nil, fmt.Errorf("creating phase %q: %w", ph.Name, err)
		}
		return ph, nil
	})
}

func newMember(projectID string, in domain.MemberInput, position int) *domain.TeamMember {
	return &domain.TeamMember{
		ID:              uuid.New().String(),
		ProjectID:       projectID,
		Name:            in.Name,
		Role:            in.Role,
		RoleDescription: in.RoleDescription,
		Position:        position,
	}
}

func newPhase(projectID string, in domain.PhaseInput, position int) *domain.Phase {
	return &domain.Phase{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      in.Name,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    in.Status,
		Position:  position,
	}
}
