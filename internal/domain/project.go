package domain

import "time"

// DeleteThreshold is the progress percentage at or above which a project can
// no longer be deleted.
const DeleteThreshold = 20

type Project struct {
	ID          string
	Name        string
	Description string
	EndDate     time.Time
	Budget      float64
	Methodology Methodology
	Progress    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CanDelete reports whether the project is still early enough to delete.
func (p *Project) CanDelete() bool {
	return p.Progress < DeleteThreshold
}

// IsActive is true for projects that have started but not finished.
func (p *Project) IsActive() bool {
	return p.Progress > 0 && p.Progress < 100
}

// DisplayID returns a short identifier for display. Seeded IDs are already
// short; generated UUIDs are truncated to 8 characters.
func (p *Project) DisplayID() string {
	return ShortID(p.ID)
}

func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

type TeamMember struct {
	ID              string
	ProjectID       string
	Name            string
	Role            string
	RoleDescription string
	Position        int
}

type Phase struct {
	ID        string
	ProjectID string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    Status
	Position  int
}

type Task struct {
	ID          string
	ProjectID   string
	PhaseID     string
	Name        string
	Description string
	Priority    Priority
	Assignee    string
	Status      Status
	StartDate   time.Time
	EndDate     time.Time
	Images      []string
	CreatedAt   time.Time
}

type Document struct {
	ID         string
	Name       string
	Type       DocumentType
	SizeBytes  int64
	UploadDate time.Time
	Category   string
}
