package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/apperr"
	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/google/uuid"
)

type taskService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTaskService(projects repository.ProjectRepo, tasks repository.TaskRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TaskService {
	return &taskService{
		projects: projects,
		tasks:    tasks,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Create(ctx context.Context, projectID string, in domain.TaskInput) (task *domain.Task, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID, "task": in.Name}
	defer observe(ctx, s.observer, "create-task", startedAt, fields, &err)

	in = in.Normalize()
	if err = in.Validate(); err != nil {
		return nil, invalid(err)
	}

	task, err = db.InTx(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (*domain.Task, error) {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return nil, err
		}
		phase, err := repository.NewSQLitePhaseRepo(tx).GetByID(ctx, in.PhaseID)
		if errors.Is(err, apperr.ErrNotFound) || (err == nil && phase.ProjectID != projectID) {
			return nil, fmt.Errorf("%w: phase %q is not part of project %s",
				apperr.ErrValidation, in.PhaseID, domain.ShortID(projectID))
		}
		if err != nil {
			return nil, err
		}

		t := &domain.Task{
			ID:          uuid.New().String(),
			ProjectID:   projectID,
			PhaseID:     phase.ID,
			Name:        in.Name,
			Description: in.Description,
			Priority:    in.Priority,
			Assignee:    in.Assignee,
			Status:      in.Status,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			Images:      in.Images,
			CreatedAt:   startedAt.Truncate(time.Second),
		}
		if err := repository.NewSQLiteTaskRepo(tx).Create(ctx, t); err != nil {
			return nil, fmt.Errorf("creating task %q: %w", t.Name, err)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	fields["image_count"] = len(task.Images)
	return task, nil
}

func (s *taskService) List(ctx context.Context, projectID string, filter domain.TaskFilter) ([]domain.Task, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return filter.Apply(values(tasks)), nil
}

func (s *taskService) SetStatus(ctx context.Context, id string, status domain.Status) error {
	parsed, err := domain.ParseStatus(string(status))
	if err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrValidation, err)
	}
	return s.tasks.UpdateStatus(ctx, id, parsed)
}
