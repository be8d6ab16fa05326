package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
	"golang.org/x/sync/errgroup"
)

type dashboardService struct {
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
}

func NewDashboardService(projects repository.ProjectRepo, tasks repository.TaskRepo) DashboardService {
	return &dashboardService{projects: projects, tasks: tasks}
}

func (s *dashboardService) Stats(ctx context.Context) (*contract.DashboardStats, error) {
	var (
		projects  []*domain.Project
		completed int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		projects, err = s.projects.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		completed, err = s.tasks.CountByStatus(gctx, domain.StatusCompleted)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("computing dashboard stats: %w", err)
	}

	stats := &contract.DashboardStats{
		TotalProjects:  len(projects),
		CompletedTasks: completed,
	}
	for _, p := range projects {
		stats.TotalBudget += p.Budget
		if p.IsActive() {
			stats.ActiveProjects++
		}
	}
	return stats, nil
}
