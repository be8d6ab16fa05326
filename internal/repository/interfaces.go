package repository

import (
	"context"

	"github.com/alexanderramin/planboard/internal/domain"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// FindByIDPrefix returns projects whose ID starts with prefix.
	FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.Project, error)
	// FindByName matches names case-insensitively.
	FindByName(ctx context.Context, name string) ([]*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type MemberRepo interface {
	Create(ctx context.Context, m *domain.TeamMember) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.TeamMember, error)
}

type PhaseRepo interface {
	Create(ctx context.Context, p *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Phase, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status) error
	// CountByStatus counts tasks across all projects.
	CountByStatus(ctx context.Context, status domain.Status) (int, error)
}

type KPIRepo interface {
	Create(ctx context.Context, k *domain.KPI) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.KPI, error)
}

type DocumentRepo interface {
	Create(ctx context.Context, d *domain.Document) error
	List(ctx context.Context) ([]*domain.Document, error)
}
