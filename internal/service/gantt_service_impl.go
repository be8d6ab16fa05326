package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/apperr"
	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/alexanderramin/planboard/internal/timeline"
)

type ganttService struct {
	projects repository.ProjectRepo
	phases   repository.PhaseRepo
	clock    timeline.Clock
	observer UseCaseObserver
}

// NewGanttService lays out phase timelines. A nil clock uses the system clock.
func NewGanttService(projects repository.ProjectRepo, phases repository.PhaseRepo, clock timeline.Clock, observers ...UseCaseObserver) GanttService {
	return &ganttService{
		projects: projects,
		phases:   phases,
		clock:    timeline.ClockOrSystem(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *ganttService) Build(ctx context.Context, req contract.GanttRequest) (resp *contract.GanttResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": req.ProjectID}
	defer observe(ctx, s.observer, "gantt", startedAt, fields, &err)

	project, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, &contract.GanttError{
				Code:    contract.GanttErrProjectNotFound,
				Message: fmt.Sprintf("project %q does not exist", req.ProjectID),
				Err:     err,
			}
		}
		return nil, err
	}
	phases, err := s.phases.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}

	now := s.clock.Now()
	if req.Now != nil {
		now = *req.Now
	}
	resp = &contract.GanttResponse{Project: *project, Today: timeline.Date(now)}

	spans := make([]timeline.Span, len(phases))
	for i, ph := range phases {
		spans[i] = timeline.Span{Start: ph.StartDate, End: ph.EndDate}
	}
	rng, err := timeline.Resolve(spans)
	if errors.Is(err, timeline.ErrEmptyInput) {
		resp.Empty = true
		return resp, nil
	}
	if err != nil {
		return nil, &contract.GanttError{Code: contract.GanttErrInvalidPhase, Message: err.Error(), Err: err}
	}

	resp.Range = rng
	if resp.Rows, err = placePhases(phases, rng); err != nil {
		return nil, err
	}
	resp.TodayFraction = timeline.TodayFraction(rng, now)

	fields["phase_count"] = len(phases)
	fields["total_days"] = rng.TotalDays
	return resp, nil
}

// placePhases lays every phase out on rng, in phase order.
func placePhases(phases []*domain.Phase, rng timeline.DateRange) ([]contract.GanttRow, error) {
	rows := make([]contract.GanttRow, len(phases))
	for i, ph := range phases {
		pos, err := timeline.Place(ph.StartDate, ph.EndDate, rng)
		if err != nil {
			return nil, &contract.GanttError{
				Code:    contract.GanttErrInvalidPhase,
				Message: fmt.Sprintf("phase %q: %v", ph.Name, err),
				Err:     err,
			}
		}
		rows[i] = contract.GanttRow{Phase: *ph, Position: pos}
	}
	return rows, nil
}
