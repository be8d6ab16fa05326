package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/importer"
	"github.com/alexanderramin/planboard/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService loads workspace files. Everything in one file is written
// in a single transaction, so a failed import leaves the store untouched.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, path string) (*contract.ImportResult, error) {
	schema, err := importer.LoadWorkspace(path)
	if err != nil {
		return nil, fmt.Errorf("loading workspace file: %w", err)
	}
	return s.run(ctx, "import-file", schema, map[string]any{"path": path})
}

func (s *importService) ImportSchema(ctx context.Context, schema *importer.WorkspaceSchema) (*contract.ImportResult, error) {
	return s.run(ctx, "import-schema", schema, map[string]any{})
}

func (s *importService) Seed(ctx context.Context) (*contract.ImportResult, error) {
	schema, err := importer.SeedWorkspace()
	if err != nil {
		return nil, err
	}
	return s.run(ctx, "seed", schema, map[string]any{})
}

func (s *importService) run(ctx context.Context, name string, schema *importer.WorkspaceSchema, fields map[string]any) (result *contract.ImportResult, err error) {
	startedAt := time.Now().UTC()
	defer observe(ctx, s.observer, name, startedAt, fields, &err)

	if errs := importer.ValidateWorkspace(schema); len(errs) > 0 {
		return nil, importer.FormatErrors(errs)
	}
	ws, err := importer.Convert(schema, startedAt)
	if err != nil {
		return nil, fmt.Errorf("converting workspace: %w", err)
	}

	result = &contract.ImportResult{DocumentCount: len(ws.Documents)}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txMembers := repository.NewSQLiteMemberRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txKPIs := repository.NewSQLiteKPIRepo(tx)
		txDocs := repository.NewSQLiteDocumentRepo(tx)

		for _, b := range ws.Projects {
			if err := txProjects.Create(ctx, b.Project); err != nil {
				return fmt.Errorf("creating project %q: %w", b.Project.Name, err)
			}
			for _, m := range b.Members {
				if err := txMembers.Create(ctx, m); err != nil {
					return fmt.Errorf("creating member %q: %w", m.Name, err)
				}
			}
			for _, ph := range b.Phases {
				if err := txPhases.Create(ctx, ph); err != nil {
					return fmt.Errorf("creating phase %q: %w", ph.Name, err)
				}
			}
			for _, t := range b.Tasks {
				if err := txTasks.Create(ctx, t); err != nil {
					return fmt.Errorf("creating task %q: %w", t.Name, err)
				}
			}
			for _, k := range b.KPIs {
				if err := txKPIs.Create(ctx, k); err != nil {
					return fmt.Errorf("creating kpi %q: %w", k.Name, err)
				}
			}
			result.ProjectCount++
			result.MemberCount += len(b.Members)
			result.PhaseCount += len(b.Phases)
			result.TaskCount += len(b.Tasks)
			result.KPICount += len(b.KPIs)
		}
		for _, d := range ws.Documents {
			if err := txDocs.Create(ctx, d); err != nil {
				return fmt.Errorf("creating document %q: %w", d.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["projects"] = result.ProjectCount
	fields["documents"] = result.DocumentCount
	return result, nil
}
