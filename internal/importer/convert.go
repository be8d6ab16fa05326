package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/apperr"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// ProjectBundle is a project with everything it owns, ready for persistence.
type ProjectBundle struct {
	Project *domain.Project
	Members []*domain.TeamMember
	Phases  []*domain.Phase
	Tasks   []*domain.Task
	KPIs    []*domain.KPI
}

type Workspace struct {
	Projects  []ProjectBundle
	Documents []*domain.Document
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

// Convert transforms a validated schema into domain objects stamped with now.
// Call ValidateWorkspace first; Convert assumes the schema is valid.
func Convert(schema *WorkspaceSchema, now time.Time) (*Workspace, error) {
	now = now.UTC().Truncate(time.Second)
	ws := &Workspace{}

	for _, p := range schema.Projects {
		bundle, err := convertProject(&p, now)
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", p.Name, err)
		}
		ws.Projects = append(ws.Projects, bundle)
	}

	for _, d := range schema.Documents {
		doc, err := convertDocument(&d)
		if err != nil {
			return nil, fmt.Errorf("document %q: %w", d.Name, err)
		}
		ws.Documents = append(ws.Documents, doc)
	}
	return ws, nil
}

func convertProject(p *ProjectImport, now time.Time) (ProjectBundle, error) {
	endDate, err := time.Parse(dateLayout, p.EndDate)
	if err != nil {
		return ProjectBundle{}, fmt.Errorf("parsing end_date: %w", err)
	}
	methodology := domain.MethodologyScrum
	if p.Methodology != "" {
		if methodology, err = domain.ParseMethodology(p.Methodology); err != nil {
			return ProjectBundle{}, err
		}
	}

	project := &domain.Project{
		ID:          idOrNew(p.ID),
		Name:        strings.TrimSpace(p.Name),
		Description: strings.TrimSpace(p.Description),
		EndDate:     endDate,
		Budget:      p.Budget,
		Methodology: methodology,
		Progress:    p.Progress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	bundle := ProjectBundle{Project: project}

	for i, m := range p.Members {
		bundle.Members = append(bundle.Members, &domain.TeamMember{
			ID:              idOrNew(m.ID),
			ProjectID:       project.ID,
			Name:            strings.TrimSpace(m.Name),
			Role:            strings.TrimSpace(m.Role),
			RoleDescription: strings.TrimSpace(m.RoleDescription),
			Position:        i,
		})
	}

	for i, ph := range p.Phases {
		start, end, err := parseRange(ph.StartDate, ph.EndDate)
		if err != nil {
			return ProjectBundle{}, fmt.Errorf("phase %q: %w", ph.Name, err)
		}
		status, err := statusOrDefault(ph.Status)
		if err != nil {
			return ProjectBundle{}, err
		}
		bundle.Phases = append(bundle.Phases, &domain.Phase{
			ID:        idOrNew(ph.ID),
			ProjectID: project.ID,
			Name:      strings.TrimSpace(ph.Name),
			StartDate: start,
			EndDate:   end,
			Status:    status,
			Position:  i,
		})
	}

	for _, t := range p.Tasks {
		start, end, err := parseRange(t.StartDate, t.EndDate)
		if err != nil {
			return ProjectBundle{}, fmt.Errorf("task %q: %w", t.Name, err)
		}
		status, err := statusOrDefault(t.Status)
		if err != nil {
			return ProjectBundle{}, err
		}
		priority := domain.PriorityMedium
		if t.Priority != "" {
			if priority, err = domain.ParsePriority(t.Priority); err != nil {
				return ProjectBundle{}, err
			}
		}
		bundle.Tasks = append(bundle.Tasks, &domain.Task{
			ID:          idOrNew(t.ID),
			ProjectID:   project.ID,
			PhaseID:     t.PhaseID,
			Name:        strings.TrimSpace(t.Name),
			Description: strings.TrimSpace(t.Description),
			Priority:    priority,
			Assignee:    strings.TrimSpace(t.Assignee),
			Status:      status,
			StartDate:   start,
			EndDate:     end,
			Images:      append([]string(nil), t.Images...),
			CreatedAt:   now,
		})
	}

	for i, k := range p.KPIs {
		bundle.KPIs = append(bundle.KPIs, &domain.KPI{
			ID:            idOrNew(k.ID),
			ProjectID:     project.ID,
			Name:          strings.TrimSpace(k.Name),
			Target:        k.Target,
			Current:       k.Current,
			Unit:          strings.TrimSpace(k.Unit),
			Description:   strings.TrimSpace(k.Description),
			LowerIsBetter: k.LowerIsBetter,
			Position:      i,
		})
	}

	return bundle, nil
}

func convertDocument(d *DocumentImport) (*domain.Document, error) {
	typ, err := domain.ParseDocumentType(d.Type)
	if err != nil {
		return nil, err
	}
	size, err := humanize.ParseBytes(d.Size)
	if err != nil {
		return nil, fmt.Errorf("parsing size: %w", err)
	}
	uploaded, err := time.Parse(dateLayout, d.UploadDate)
	if err != nil {
		return nil, fmt.Errorf("parsing upload_date: %w", err)
	}
	return &domain.Document{
		ID:         idOrNew(d.ID),
		Name:       strings.TrimSpace(d.Name),
		Type:       typ,
		SizeBytes:  int64(size),
		UploadDate: uploaded,
		Category:   strings.TrimSpace(d.Category),
	}, nil
}

func parseRange(start, end string) (time.Time, time.Time, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing start_date: %w", err)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing end_date: %w", err)
	}
	return s, e, nil
}

func statusOrDefault(s string) (domain.Status, error) {
	if s == "" {
		return domain.StatusPending, nil
	}
	return domain.ParseStatus(s)
}

// FormatErrors joins validation errors into one error, wrapping
// apperr.ErrValidation, that lists each problem on its own line.
func FormatErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	var b strings.Builder
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return fmt.Errorf("%w: workspace has %d problems:%s", apperr.ErrValidation, len(errs), b.String())
}
