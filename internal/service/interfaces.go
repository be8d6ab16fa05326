package service

import (
	"context"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/importer"
)

type ProjectService interface {
	// Create validates the form input and stores the project with its team
	// and phases in one transaction.
	Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error)
	// Resolve finds a project by exact ID, then by unique ID prefix, then by
	// case-insensitive name.
	Resolve(ctx context.Context, ref string) (*domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetDetail(ctx context.Context, id string) (*contract.ProjectDetail, error)
	List(ctx context.Context) ([]*domain.Project, error)
	// Update applies the basic fields of in; members and phases are ignored.
	Update(ctx context.Context, id string, in domain.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, projectID string, in domain.MemberInput) (*domain.TeamMember, error)
	AddPhase(ctx context.Context, projectID string, in domain.PhaseInput) (*domain.Phase, error)
}

type TaskService interface {
	Create(ctx context.Context, projectID string, in domain.TaskInput) (*domain.Task, error)
	List(ctx context.Context, projectID string, filter domain.TaskFilter) ([]domain.Task, error)
	SetStatus(ctx context.Context, id string, status domain.Status) error
}

type KPIService interface {
	Create(ctx context.Context, projectID string, in domain.KPIInput) (*domain.KPI, error)
	Summary(ctx context.Context, projectID string) (*contract.KPISummary, error)
}

type DocumentService interface {
	Library(ctx context.Context, filter domain.DocumentFilter) (*contract.DocumentLibrary, error)
}

type DashboardService interface {
	Stats(ctx context.Context) (*contract.DashboardStats, error)
}

type GanttService interface {
	Build(ctx context.Context, req contract.GanttRequest) (*contract.GanttResponse, error)
}

type ImportService interface {
	ImportFile(ctx context.Context, path string) (*contract.ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.WorkspaceSchema) (*contract.ImportResult, error)
	// Seed imports the demo workspace bundled with the binary.
	Seed(ctx context.Context) (*contract.ImportResult, error)
}
