package domain

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// required rejects strings that are empty after trimming.
var required = validation.By(func(value interface{}) error {
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
})

// positive requires a non-zero value greater than 0.
var positive = []validation.Rule{validation.Required, validation.Min(0.0).Exclusive()}

func notBefore(start time.Time, field string) validation.Rule {
	return validation.When(!start.IsZero(),
		validation.Min(start).Error("must not be before "+field))
}

// ProjectInput carries the fields of the create-project form. Members and
// phases come from the second step and may be empty.
type ProjectInput struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	EndDate     time.Time     `json:"end_date"`
	Budget      float64       `json:"budget"`
	Methodology Methodology   `json:"methodology"`
	Members     []MemberInput `json:"members"`
	Phases      []PhaseInput  `json:"phases"`
}

// Normalize trims text fields and fills defaults.
func (in ProjectInput) Normalize() ProjectInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Methodology == "" {
		in.Methodology = MethodologyScrum
	}
	members := make([]MemberInput, len(in.Members))
	for i, m := range in.Members {
		members[i] = m.Normalize()
	}
	in.Members = members
	phases := make([]PhaseInput, len(in.Phases))
	for i, p := range in.Phases {
		phases[i] = p.Normalize()
	}
	in.Phases = phases
	return in
}

func (in ProjectInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, required),
		validation.Field(&in.Description, required),
		validation.Field(&in.EndDate, validation.Required),
		validation.Field(&in.Budget, positive...),
		validation.Field(&in.Methodology, validation.In(MethodologyScrum, MethodologyKanban, MethodologyWaterfall)),
		validation.Field(&in.Members),
		validation.Field(&in.Phases),
	)
}

// Basics drops the team and phases, leaving the fields an edit can change.
func (in ProjectInput) Basics() ProjectInput {
	in.Members = nil
	in.Phases = nil
	return in
}

type MemberInput struct {
	Name            string `json:"name"`
	Role            string `json:"role"`
	RoleDescription string `json:"role_description"`
}

func (in MemberInput) Normalize() MemberInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)
	in.RoleDescription = strings.TrimSpace(in.RoleDescription)
	return in
}

func (in MemberInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, required),
		validation.Field(&in.Role, required),
		validation.Field(&in.RoleDescription, required),
	)
}

type PhaseInput struct {
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    Status    `json:"status"`
}

func (in PhaseInput) Normalize() PhaseInput {
	in.Name = strings.TrimSpace(in.Name)
	if in.Status == "" {
		in.Status = StatusPending
	}
	return in
}

func (in PhaseInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, required),
		validation.Field(&in.StartDate, validation.Required),
		validation.Field(&in.EndDate, validation.Required, notBefore(in.StartDate, "start_date")),
		validation.Field(&in.Status, validation.In(StatusPending, StatusInProgress, StatusCompleted)),
	)
}

type TaskInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Assignee    string    `json:"assignee"`
	PhaseID     string    `json:"phase_id"`
	Status      Status    `json:"status"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Images      []string  `json:"images"`
}

func (in TaskInput) Normalize() TaskInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Assignee = strings.TrimSpace(in.Assignee)
	in.PhaseID = strings.TrimSpace(in.PhaseID)
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if in.Status == "" {
		in.Status = StatusPending
	}
	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	in.Images = images
	return in
}

func (in TaskInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, required),
		validation.Field(&in.Description, required),
		validation.Field(&in.Priority, validation.In(PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow)),
		validation.Field(&in.Assignee, required),
		validation.Field(&in.PhaseID, required),
		validation.Field(&in.Status, validation.In(StatusPending, StatusInProgress, StatusCompleted)),
		validation.Field(&in.StartDate, validation.Required),
		validation.Field(&in.EndDate, validation.Required, notBefore(in.StartDate, "start_date")),
	)
}

type KPIInput struct {
	Name          string  `json:"name"`
	Target        float64 `json:"target"`
	Current       float64 `json:"current"`
	Unit          string  `json:"unit"`
	Description   string  `json:"description"`
	LowerIsBetter bool    `json:"lower_is_better"`
}

func (in KPIInput) Normalize() KPIInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	in.Description = strings.TrimSpace(in.Description)
	return in
}

func (in KPIInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, required),
		validation.Field(&in.Target,
			validation.When(!in.LowerIsBetter, positive...),
			validation.When(in.LowerIsBetter, validation.Min(0.0)),
		),
		validation.Field(&in.Current, validation.Min(0.0)),
		validation.Field(&in.Unit, required),
		validation.Field(&in.Description, required),
	)
}
