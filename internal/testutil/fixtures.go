package testutil

import (
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/google/uuid"
)

// Date returns midnight UTC on the given day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectID(id string) ProjectOption {
	return func(p *domain.Project) {
		p.ID = id
	}
}

func WithProgress(pct int) ProjectOption {
	return func(p *domain.Project) {
		p.Progress = pct
	}
}

func WithBudget(b float64) ProjectOption {
	return func(p *domain.Project) {
		p.Budget = b
	}
}

func WithMethodology(m domain.Methodology) ProjectOption {
	return func(p *domain.Project) {
		p.Methodology = m
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:          uuid.New().String(),
		Name:        name,
		Description: name + " description",
		EndDate:     Date(2025, 12, 31),
		Budget:      10000,
		Methodology: domain.MethodologyScrum,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestMember(projectID, name, role string) *domain.TeamMember {
	return &domain.TeamMember{
		ID:              uuid.New().String(),
		ProjectID:       projectID,
		Name:            name,
		Role:            role,
		RoleDescription: role + " duties",
	}
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithPhaseStatus(s domain.Status) PhaseOption {
	return func(p *domain.Phase) {
		p.Status = s
	}
}

func WithPhasePosition(pos int) PhaseOption {
	return func(p *domain.Phase) {
		p.Position = pos
	}
}

func NewTestPhase(projectID, name string, start, end time.Time, opts ...PhaseOption) *domain.Phase {
	p := &domain.Phase{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
		Status:    domain.StatusPending,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.Task)

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

func WithTaskStatus(s domain.Status) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithImages(paths ...string) TaskOption {
	return func(t *domain.Task) {
		t.Images = paths
	}
}

func WithDescription(d string) TaskOption {
	return func(t *domain.Task) {
		t.Description = d
	}
}

// NewTestTask creates a task spanning the phase's dates.
func NewTestTask(phase *domain.Phase, name string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:          uuid.New().String(),
		ProjectID:   phase.ProjectID,
		PhaseID:     phase.ID,
		Name:        name,
		Description: name + " details",
		Priority:    domain.PriorityMedium,
		Assignee:    "Tester",
		Status:      domain.StatusPending,
		StartDate:   phase.StartDate,
		EndDate:     phase.EndDate,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func NewTestKPI(projectID, name string, target, current float64) *domain.KPI {
	return &domain.KPI{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Name:        name,
		Target:      target,
		Current:     current,
		Unit:        "%",
		Description: name + " tracking",
	}
}

func NewTestDocument(name string, typ domain.DocumentType, category string) *domain.Document {
	return &domain.Document{
		ID:         uuid.New().String(),
		Name:       name,
		Type:       typ,
		SizeBytes:  1_200_000,
		UploadDate: Date(2025, 3, 1),
		Category:   category,
	}
}
