package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/google/uuid"
)

type kpiService struct {
	projects repository.ProjectRepo
	kpis     repository.KPIRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewKPIService(projects repository.ProjectRepo, kpis repository.KPIRepo, uow db.UnitOfWork, observers ...UseCaseObserver) KPIService {
	return &kpiService{
		projects: projects,
		kpis:     kpis,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *kpiService) Create(ctx context.Context, projectID string, in domain.KPIInput) (kpi *domain.KPI, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID, "kpi": in.Name}
	defer observe(ctx, s.observer, "create-kpi", startedAt, fields, &err)

	in = in.Normalize()
	if err = in.Validate(); err != nil {
		return nil, invalid(err)
	}

	return db.InTx(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (*domain.KPI, error) {
		if _, err := repository.NewSQLiteProjectRepo(tx).GetByID(ctx, projectID); err != nil {
			return nil, err
		}
		txKPIs := repository.NewSQLiteKPIRepo(tx)
		existing, err := txKPIs.ListByProject(ctx, projectID)
		if err != nil {
			return nil, err
		}
		k := &domain.KPI{
			ID:            uuid.New().String(),
			ProjectID:     projectID,
			Name:          in.Name,
			Target:        in.Target,
			Current:       in.Current,
			Unit:          in.Unit,
			Description:   in.Description,
			LowerIsBetter: in.LowerIsBetter,
			Position:      len(existing),
		}
		if err := txKPIs.Create(ctx, k); err != nil {
			return nil, fmt.Errorf("creating kpi %q: %w", k.Name, err)
		}
		return k, nil
	})
}

func (s *kpiService) Summary(ctx context.Context, projectID string) (*contract.KPISummary, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	list, err := s.kpis.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing kpis: %w", err)
	}
	kpis := values(list)
	return &contract.KPISummary{
		KPIs:     kpis,
		OnTarget: domain.CountOnTarget(kpis),
		Total:    len(kpis),
	}, nil
}
