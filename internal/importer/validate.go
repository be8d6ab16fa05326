package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/dustin/go-humanize"
)

const dateLayout = "2006-01-02"

// ValidateWorkspace checks the schema before conversion. It returns every
// problem found rather than stopping at the first.
func ValidateWorkspace(schema *WorkspaceSchema) []error {
	var errs []error
	ids := make(map[string]string) // id -> path of first use

	if len(schema.Projects) == 0 && len(schema.Documents) == 0 {
		errs = append(errs, fmt.Errorf("workspace is empty: at least one project or document is required"))
	}

	for i := range schema.Projects {
		errs = append(errs, validateProject(fmt.Sprintf("projects[%d]", i), &schema.Projects[i], ids)...)
	}
	for i := range schema.Documents {
		errs = append(errs, validateDocument(fmt.Sprintf("documents[%d]", i), &schema.Documents[i], ids)...)
	}
	return errs
}

// claimID records id under path, reporting a duplicate. Empty IDs are
// generated later and never collide.
func claimID(ids map[string]string, id, path string) error {
	if id == "" {
		return nil
	}
	if prev, ok := ids[id]; ok {
		return fmt.Errorf("%s.id: duplicate id %q (first used by %s)", path, id, prev)
	}
	ids[id] = path
	return nil
}

func required(path, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s.%s is required", path, field)
	}
	return nil
}

func parseDateField(path, field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s.%s is required", path, field)
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s.%s: invalid date format %q (expected YYYY-MM-DD)", path, field, value)
	}
	return t, nil
}

func appendErr(errs []error, err error) []error {
	if err != nil {
		return append(errs, err)
	}
	return errs
}

// validateRange checks both dates and that start is not after end.
func validateRange(errs []error, path, start, end string) []error {
	s, sErr := parseDateField(path, "start_date", start)
	e, eErr := parseDateField(path, "end_date", end)
	errs = appendErr(errs, sErr)
	errs = appendErr(errs, eErr)
	if sErr == nil && eErr == nil && s.After(e) {
		errs = append(errs, fmt.Errorf("%s: start_date %s is after end_date %s", path, start, end))
	}
	return errs
}

func validateProject(path string, p *ProjectImport, ids map[string]string) []error {
	var errs []error

	errs = appendErr(errs, claimID(ids, p.ID, path))
	errs = appendErr(errs, required(path, "name", p.Name))
	errs = appendErr(errs, required(path, "description", p.Description))
	_, err := parseDateField(path, "end_date", p.EndDate)
	errs = appendErr(errs, err)
	if p.Budget <= 0 {
		errs = append(errs, fmt.Errorf("%s.budget must be greater than 0", path))
	}
	if p.Methodology != "" {
		if _, err := domain.ParseMethodology(p.Methodology); err != nil {
			errs = append(errs, fmt.Errorf("%s.methodology: %w", path, err))
		}
	}
	if p.Progress < 0 || p.Progress > 100 {
		errs = append(errs, fmt.Errorf("%s.progress must be between 0 and 100, got %d", path, p.Progress))
	}

	for i, m := range p.Members {
		mp := fmt.Sprintf("%s.members[%d]", path, i)
		errs = appendErr(errs, claimID(ids, m.ID, mp))
		errs = appendErr(errs, required(mp, "name", m.Name))
		errs = appendErr(errs, required(mp, "role", m.Role))
		errs = appendErr(errs, required(mp, "role_description", m.RoleDescription))
	}

	phaseIDs := make(map[string]bool)
	for i, ph := range p.Phases {
		pp := fmt.Sprintf("%s.phases[%d]", path, i)
		errs = appendErr(errs, claimID(ids, ph.ID, pp))
		if ph.ID != "" {
			phaseIDs[ph.ID] = true
		}
		errs = appendErr(errs, required(pp, "name", ph.Name))
		errs = validateRange(errs, pp, ph.StartDate, ph.EndDate)
		if ph.Status != "" {
			if _, err := domain.ParseStatus(ph.Status); err != nil {
				errs = append(errs, fmt.Errorf("%s.status: %w", pp, err))
			}
		}
	}

	for i, t := range p.Tasks {
		tp := fmt.Sprintf("%s.tasks[%d]", path, i)
		errs = appendErr(errs, claimID(ids, t.ID, tp))
		errs = appendErr(errs, required(tp, "name", t.Name))
		errs = appendErr(errs, required(tp, "description", t.Description))
		errs = appendErr(errs, required(tp, "assignee", t.Assignee))
		if t.PhaseID == "" {
			errs = append(errs, fmt.Errorf("%s.phase_id is required", tp))
		} else if !phaseIDs[t.PhaseID] {
			errs = append(errs, fmt.Errorf("%s.phase_id: unknown phase %q", tp, t.PhaseID))
		}
		errs = validateRange(errs, tp, t.StartDate, t.EndDate)
		if t.Priority != "" {
			if _, err := domain.ParsePriority(t.Priority); err != nil {
				errs = append(errs, fmt.Errorf("%s.priority: %w", tp, err))
			}
		}
		if t.Status != "" {
			if _, err := domain.ParseStatus(t.Status); err != nil {
				errs = append(errs, fmt.Errorf("%s.status: %w", tp, err))
			}
		}
	}

	for i, k := range p.KPIs {
		kp := fmt.Sprintf("%s.kpis[%d]", path, i)
		errs = appendErr(errs, claimID(ids, k.ID, kp))
		errs = appendErr(errs, required(kp, "name", k.Name))
		errs = appendErr(errs, required(kp, "unit", k.Unit))
		errs = appendErr(errs, required(kp, "description", k.Description))
		switch {
		case k.LowerIsBetter && k.Target < 0:
			errs = append(errs, fmt.Errorf("%s.target must not be negative", kp))
		case !k.LowerIsBetter && k.Target <= 0:
			errs = append(errs, fmt.Errorf("%s.target must be greater than 0", kp))
		}
		if k.Current < 0 {
			errs = append(errs, fmt.Errorf("%s.current must not be negative", kp))
		}
	}

	return errs
}

func validateDocument(path string, d *DocumentImport, ids map[string]string) []error {
	var errs []error

	errs = appendErr(errs, claimID(ids, d.ID, path))
	errs = appendErr(errs, required(path, "name", d.Name))
	errs = appendErr(errs, required(path, "category", d.Category))
	if _, err := domain.ParseDocumentType(d.Type); err != nil {
		errs = append(errs, fmt.Errorf("%s.type: %w", path, err))
	}
	if d.Size == "" {
		errs = append(errs, fmt.Errorf("%s.size is required", path))
	} else if _, err := humanize.ParseBytes(d.Size); err != nil {
		errs = append(errs, fmt.Errorf("%s.size: invalid size %q", path, d.Size))
	}
	_, err := parseDateField(path, "upload_date", d.UploadDate)
	errs = appendErr(errs, err)

	return errs
}
