package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/planboard/internal/apperr"
	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/contract"
	"github.com/alexanderramin/planboard/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// planboardHuhTheme styles forms with the formatter palette.
func planboardHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(planboardHuhTheme()).WithShowHelp(false)
}

// runAction runs a service call off the UI loop and reports its outcome as
// an actionDoneMsg.
func runAction(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := fn(context.Background())
		if err != nil {
			return actionDoneMsg{output: shellError(err)}
		}
		return actionDoneMsg{output: out}
	}
}

// ── field validators ─────────────────────────────────────────────────────────

func requiredText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validDate(s string) error {
	if err := requiredText(s); err != nil {
		return err
	}
	_, err := parseDate(s)
	return err
}

func validAmount(s string) error {
	if err := requiredText(s); err != nil {
		return err
	}
	_, err := parseAmount(s)
	return err
}

func validMemberLines(s string) error {
	_, err := parseMemberLines(s)
	return err
}

func validPhaseLines(s string) error {
	_, err := parsePhaseLines(s)
	return err
}

// formError tags a conversion failure as a validation error.
func formError(field string, err error) error {
	return fmt.Errorf("%w: %s: %w", apperr.ErrValidation, field, err)
}

// optionalDate parses s, leaving the zero time for blank input so the
// service reports the missing field.
func optionalDate(field, s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return time.Time{}, formError(field, err)
	}
	return t, nil
}

func optionalAmount(field, s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	v, err := parseAmount(s)
	if err != nil {
		return 0, formError(field, err)
	}
	return v, nil
}

func formatAmount(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

// ── project ──────────────────────────────────────────────────────────────────

// projectForm holds the raw text of the two-step project wizard.
type projectForm struct {
	Name        string
	Description string
	EndDate     string
	Budget      string
	Methodology domain.Methodology
	Members     string
	Phases      string
}

func newProjectForm() *projectForm {
	return &projectForm{Methodology: domain.MethodologyScrum}
}

func projectFormFrom(p *domain.Project) *projectForm {
	return &projectForm{
		Name:        p.Name,
		Description: p.Description,
		EndDate:     formatter.FormatDate(p.EndDate),
		Budget:      formatAmount(p.Budget),
		Methodology: p.Methodology,
	}
}

func (f *projectForm) input() (domain.ProjectInput, error) {
	in := domain.ProjectInput{
		Name:        f.Name,
		Description: f.Description,
		Methodology: f.Methodology,
	}
	var err error
	if in.EndDate, err = optionalDate("end date", f.EndDate); err != nil {
		return in, err
	}
	if in.Budget, err = optionalAmount("budget", f.Budget); err != nil {
		return in, err
	}
	if in.Members, err = parseMemberLines(f.Members); err != nil {
		return in, formError("team", err)
	}
	if in.Phases, err = parsePhaseLines(f.Phases); err != nil {
		return in, formError("phases", err)
	}
	return in, nil
}

func (f *projectForm) basicsGroup() *huh.Group {
	options := make([]huh.Option[domain.Methodology], 0, len(domain.Methodologies))
	for _, m := range domain.Methodologies {
		options = append(options, huh.NewOption(m.Label(), m))
	}
	return huh.NewGroup(
		huh.NewInput().Title("Name").Value(&f.Name).Validate(requiredText),
		huh.NewText().Title("Description").Lines(3).Value(&f.Description).Validate(requiredText),
		huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").Value(&f.EndDate).Validate(validDate),
		huh.NewInput().Title("Budget").Placeholder("150000").Value(&f.Budget).Validate(validAmount),
		huh.NewSelect[domain.Methodology]().Title("Methodology").Options(options...).Value(&f.Methodology),
	)
}

func (f *projectForm) teamGroup() *huh.Group {
	return huh.NewGroup(
		huh.NewText().
			Title("Team").
			Description("One member per line: Name | Role | Description (ctrl+j for a new line)").
			Lines(4).Value(&f.Members).Validate(validMemberLines),
		huh.NewText().
			Title("Phases").
			Description("One phase per line: Name | YYYY-MM-DD | YYYY-MM-DD [| status]").
			Lines(4).Value(&f.Phases).Validate(validPhaseLines),
	)
}

// newProjectWizard collects the basics, then the team and phases, and
// creates everything in one call.
func newProjectWizard(state *SharedState) tea.Cmd {
	f := newProjectForm()
	app := state.App
	return startWizardCmd(state, "New project", newForm(f.basicsGroup()), func() tea.Cmd {
		return startWizardCmd(state, "New project · team and phases", newForm(f.teamGroup()), func() tea.Cmd {
			return runAction(func(ctx context.Context) (string, error) {
				in, err := f.input()
				if err != nil {
					return "", err
				}
				p, err := app.Projects.Create(ctx, in)
				if err != nil {
					return "", err
				}
				return formatter.Success(fmt.Sprintf("Created project %s [%s]", formatter.Bold(p.Name), p.DisplayID())), nil
			})
		})
	})
}

func editProjectWizard(state *SharedState, p *domain.Project) tea.Cmd {
	f := projectFormFrom(p)
	app, id := state.App, p.ID
	return startWizardCmd(state, "Edit "+p.Name, newForm(f.basicsGroup()), func() tea.Cmd {
		return runAction(func(ctx context.Context) (string, error) {
			in, err := f.input()
			if err != nil {
				return "", err
			}
			updated, err := app.Projects.Update(ctx, id, in.Basics())
			if err != nil {
				return "", err
			}
			return formatter.Success("Updated project " + formatter.Bold(updated.Name)), nil
		})
	})
}

// deleteProjectWizard asks for confirmation. Projects past the delete
// threshold skip the prompt so the refusal is shown straight away.
func deleteProjectWizard(state *SharedState, p *domain.Project) tea.Cmd {
	app, id, name := state.App, p.ID, p.Name
	remove := func() tea.Cmd {
		return runAction(func(ctx context.Context) (string, error) {
			if err := app.Projects.Delete(ctx, id); err != nil {
				return "", err
			}
			return formatter.Success("Deleted project " + formatter.Bold(name)), nil
		})
	}
	if !p.CanDelete() {
		return remove()
	}

	confirmed := false
	form := newForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s?", name)).
			Description("Its team, phases, tasks and KPIs are deleted too.").
			Affirmative("Delete").Negative("Keep").
			Value(&confirmed),
	))
	return startWizardCmd(state, "Delete "+name, form, func() tea.Cmd {
		if !confirmed {
			return outputCmd(formatter.Dim("Kept " + name + "."))
		}
		return remove()
	})
}

// ── member and phase ─────────────────────────────────────────────────────────

type memberForm struct {
	Name        string
	Role        string
	Description string
}

func (f *memberForm) input() domain.MemberInput {
	return domain.MemberInput{Name: f.Name, Role: f.Role, RoleDescription: f.Description}
}

func addMemberWizard(state *SharedState, p *domain.Project) tea.Cmd {
	f := &memberForm{}
	app, id, project := state.App, p.ID, p.Name
	form := newForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&f.Name).Validate(requiredText),
		huh.NewInput().Title("Role").Value(&f.Role).Validate(requiredText),
		huh.NewInput().Title("Role description").Value(&f.Description).Validate(requiredText),
	))
	return startWizardCmd(state, "Add member", form, func() tea.Cmd {
		return runAction(func(ctx context.Context) (string, error) {
			m, err := app.Projects.AddMember(ctx, id, f.input())
			if err != nil {
				return "", err
			}
			return formatter.Success(fmt.Sprintf("Added %s (%s) to %s", formatter.Bold(m.Name), m.Role, project)), nil
		})
	})
}

type phaseForm struct {
	Name      string
	StartDate string
	EndDate   string
	Status    domain.Status
}

func (f *phaseForm) input() (domain.PhaseInput, error) {
	in := domain.PhaseInput{Name: f.Name, Status: f.Status}
	var err error
	if in.StartDate, err = optionalDate("start date", f.StartDate); err != nil {
		return in, err
	}
	if in.EndDate, err = optionalDate("end date", f.EndDate); err != nil {
		return in, err
	}
	return in, nil
}

func statusOptions() []huh.Option[domain.Status] {
	options := make([]huh.Option[domain.Status], 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		options = append(options, huh.NewOption(s.Label(), s))
	}
	return options
}

func addPhaseWizard(state *SharedState, p *domain.Project) tea.Cmd {
	f := &phaseForm{Status: domain.StatusPending}
	app, id, project := state.App, p.ID, p.Name
	form := newForm(huh.NewGroup(
		huh.NewInput().Title("Phase name").Value(&f.Name).Validate(requiredText),
		huh.NewInput().Title("Start date").Placeholder("YYYY-MM-DD").Value(&f.StartDate).Validate(validDate),
		huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").Value(&f.EndDate).Validate(validDate),
		huh.NewSelect[domain.Status]().Title("Status").Options(statusOptions()...).Value(&f.Status),
	))
	return startWizardCmd(state, "Add phase", form, func() tea.Cmd {
		return runAction(func(ctx context.Context) (string, error) {
			in, err := f.input()
			if err != nil {
				return "", err
			}
			ph, err := app.Projects.AddPhase(ctx, id, in)
			if err != nil {
				return "", err
			}
			return formatter.Success(fmt.Sprintf("Added phase %s to %s", formatter.Bold(ph.Name), project)), nil
		})
	})
}

// ── task ─────────────────────────────────────────────────────────────────────

type taskForm struct {
	Name        string
	Description string
	Priority    domain.Priority
	Assignee    string
	PhaseID     string
	Status      domain.Status
	StartDate   string
	EndDate     string
	Images      string
}

func (f *taskForm) input() (domain.TaskInput, error) {
	in := domain.TaskInput{
		Name:        f.Name,
		Description: f.Description,
		Priority:    f.Priority,
		Assignee:    f.Assignee,
		PhaseID:     f.PhaseID,
		Status:      f.Status,
		Images:      splitList(f.Images),
	}
	var err error
	if in.StartDate, err = optionalDate("start date", f.StartDate); err != nil {
		return in, err
	}
	if in.EndDate, err = optionalDate("end date", f.EndDate); err != nil {
		return in, err
	}
	return in, nil
}

// addTaskWizard needs at least one phase to attach the task to.
func addTaskWizard(state *SharedState, detail *contract.ProjectDetail) tea.Cmd {
	if len(detail.Phases) == 0 {
		return outputCmd(formatter.StyleYellow.Render("Add a phase before adding tasks."))
	}

	f := &taskForm{
		Priority: domain.PriorityMedium,
		Status:   domain.StatusPending,
		PhaseID:  detail.Phases[0].ID,
	}
	phases := make([]huh.Option[string], 0, len(detail.Phases))
	for _, ph := range detail.Phases {
		phases = append(phases, huh.NewOption(ph.Name, ph.ID))
	}
	priorities := make([]huh.Option[domain.Priority], 0, len(domain.Priorities))
	for _, p := range domain.Priorities {
		priorities = append(priorities, huh.NewOption(p.Label(), p))
	}
	var members []string
	for _, m := range detail.Members {
		members = append(members, m.Name)
	}

	form := newForm(
		huh.NewGroup(
			huh.NewInput().Title("Task name").Value(&f.Name).Validate(requiredText),
			huh.NewText().Title("Description").Lines(3).Value(&f.Description).Validate(requiredText),
			huh.NewSelect[domain.Priority]().Title("Priority").Options(priorities...).Value(&f.Priority),
			huh.NewInput().Title("Assignee").Suggestions(members).Value(&f.Assignee).Validate(requiredText),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Phase").Options(phases...).Value(&f.PhaseID),
			huh.NewSelect[domain.Status]().Title("Status").Options(statusOptions()...).Value(&f.Status),
			huh.NewInput().Title("Start date").Placeholder("YYYY-MM-DD").Value(&f.StartDate).Validate(validDate),
			huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").Value(&f.EndDate).Validate(validDate),
			huh.NewInput().Title("Images").Description("Comma-separated file names, optional").Value(&f.Images),
		),
	)

	app, id := state.App, detail.Project.ID
	return startWizardCmd(state, "Add task", form, func() tea.Cmd {
		return runAction(func(ctx context.Context) (string, error) {
			in, err := f.input()
			if err != nil {
				return "", err
			}
			t, err := app.Tasks.Create(ctx, id, in)
			if err != nil {
				return "", err
			}
			return formatter.Success(fmt.Sprintf("Added task %s [%s]", formatter.Bold(t.Name), domain.ShortID(t.ID))), nil
		})
	})
}

// ── KPI ──────────────────────────────────────────────────────────────────────

type kpiForm struct {
	Name          string
	Target        string
	Current       string
	Unit          string
	Description   string
	LowerIsBetter bool
}

func (f *kpiForm) input() (domain.KPIInput, error) {
	in := domain.KPIInput{
		Name:          f.Name,
		Unit:          f.Unit,
		Description:   f.Description,
		LowerIsBetter: f.LowerIsBetter,
	}
	var err error
	if in.Target, err = optionalAmount("target", f.Target); err != nil {
		return in, err
	}
	if in.Current, err = optionalAmount("current", f.Current); err != nil {
		return in, err
	}
	return in, nil
}

func addKPIWizard(state *SharedState, p *domain.Project) tea.Cmd {
	f := &kpiForm{}
	app, id, project := state.App, p.ID, p.Name
	form := newForm(huh.NewGroup(
		huh.NewInput().Title("KPI name").Value(&f.Name).Validate(requiredText),
		huh.NewInput().Title("Target").Value(&f.Target).Validate(validAmount),
		huh.NewInput().Title("Current value").Value(&f.Current).Validate(validAmount),
		huh.NewInput().Title("Unit").Placeholder("%, ms, users").Value(&f.Unit).Validate(requiredText),
		huh.NewInput().Title("Description").Value(&f.Description).Validate(requiredText),
		huh.NewConfirm().Title("Lower is better?").Value(&f.LowerIsBetter),
	))
	return startWizardCmd(state, "Add KPI", form, func() tea.Cmd {
		return runAction(func(ctx context.Context) (string, error) {
			in, err := f.input()
			if err != nil {
				return "", err
			}
			k, err := app.KPIs.Create(ctx, id, in)
			if err != nil {
				return "", err
			}
			return formatter.Success(fmt.Sprintf("Added KPI %s to %s", formatter.Bold(k.Name), project)), nil
		})
	})
}
