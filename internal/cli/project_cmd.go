package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/apperr"
	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/spf13/cobra"
)

// projectArg returns the PROJECT argument, falling back to the active project.
func projectArg(app *App, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if app.ActiveProject != "" {
		return app.ActiveProject, nil
	}
	return "", fmt.Errorf("%w: a PROJECT argument (ID, ID prefix or name) is required", apperr.ErrValidation)
}

func resolveProject(ctx context.Context, app *App, args []string) (*domain.Project, error) {
	ref, err := projectArg(app, args)
	if err != nil {
		return nil, err
	}
	return app.Projects.Resolve(ctx, ref)
}

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectAddCmd(app),
		newProjectEditCmd(app),
		newProjectDeleteCmd(app),
		newProjectAddMemberCmd(app),
		newProjectAddPhaseCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [PROJECT]",
		Short: "Show a project with its team and phases",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args)
			if err != nil {
				return err
			}
			detail, err := app.Projects.GetDetail(ctx, p.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectOverview(detail))
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s %d tasks, %d of %d KPIs on target\n",
				formatter.Dim("Summary"), len(detail.Tasks), domain.CountOnTarget(detail.KPIs), len(detail.KPIs))
			return nil
		},
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	var (
		in      domain.ProjectInput
		members []string
		phases  []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project with its team and phases",
		Example: `  planboard project add --name "CRM" --description "Sales pipeline" \
    --end 2025-12-31 --budget 90000 --methodology kanban \
    --member "Ana | PM | Owns the roadmap" \
    --phase "Discovery | 2025-02-01 | 2025-02-28"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if in.Members, err = parseMemberSpecs(members); err != nil {
				return fmt.Errorf("%w: --member %w", apperr.ErrValidation, err)
			}
			if in.Phases, err = parsePhaseSpecs(phases); err != nil {
				return fmt.Errorf("%w: --phase %w", apperr.ErrValidation, err)
			}
			p, err := app.Projects.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created project %s [%s]", formatter.Bold(p.Name), p.DisplayID())))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Project name")
	f.StringVar(&in.Description, "description", "", "Project description")
	f.Var(dateFlag(&in.EndDate), "end", "End date (YYYY-MM-DD)")
	f.Float64Var(&in.Budget, "budget", 0, "Budget")
	f.Var(methodologyFlag(&in.Methodology), "methodology", "scrum, kanban or waterfall (default scrum)")
	f.StringArrayVar(&members, "member", nil, `Team member "Name | Role | Description" (repeatable)`)
	f.StringArrayVar(&phases, "phase", nil, `Phase "Name | YYYY-MM-DD | YYYY-MM-DD [| status]" (repeatable)`)

	return cmd
}

func newProjectEditCmd(app *App) *cobra.Command {
	var (
		name, description string
		end               time.Time
		budget            float64
		methodology       domain.Methodology
	)

	cmd := &cobra.Command{
		Use:   "edit [PROJECT]",
		Short: "Change a project's name, description, end date, budget or methodology",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args)
			if err != nil {
				return err
			}

			in := projectInputFrom(p)
			f := cmd.Flags()
			if f.Changed("name") {
				in.Name = name
			}
			if f.Changed("description") {
				in.Description = description
			}
			if f.Changed("end") {
				in.EndDate = end
			}
			if f.Changed("budget") {
				in.Budget = budget
			}
			if f.Changed("methodology") {
				in.Methodology = methodology
			}

			updated, err := app.Projects.Update(ctx, p.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Updated project "+formatter.Bold(updated.Name)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&name, "name", "", "New name")
	f.StringVar(&description, "description", "", "New description")
	f.Var(dateFlag(&end), "end", "New end date (YYYY-MM-DD)")
	f.Float64Var(&budget, "budget", 0, "New budget")
	f.Var(methodologyFlag(&methodology), "methodology", "scrum, kanban or waterfall")

	return cmd
}

// projectInputFrom returns the editable fields of p.
func projectInputFrom(p *domain.Project) domain.ProjectInput {
	return domain.ProjectInput{
		Name:        p.Name,
		Description: p.Description,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		Methodology: p.Methodology,
	}
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete [PROJECT]",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Delete a project below %d%% progress", domain.DeleteThreshold),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args)
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Deleted project "+formatter.Bold(p.Name)))
			return nil
		},
	}
}

func newProjectAddMemberCmd(app *App) *cobra.Command {
	var in domain.MemberInput

	cmd := &cobra.Command{
		Use:   "add-member [PROJECT]",
		Short: "Add a team member to a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args)
			if err != nil {
				return err
			}
			m, err := app.Projects.AddMember(ctx, p.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added %s (%s) to %s", formatter.Bold(m.Name), m.Role, p.Name)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Member name")
	f.StringVar(&in.Role, "role", "", "Role")
	f.StringVar(&in.RoleDescription, "description", "", "Role description")

	return cmd
}

func newProjectAddPhaseCmd(app *App) *cobra.Command {
	var in domain.PhaseInput

	cmd := &cobra.Command{
		Use:   "add-phase [PROJECT]",
		Short: "Add a phase to a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args)
			if err != nil {
				return err
			}
			ph, err := app.Projects.AddPhase(ctx, p.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added phase %s [%s] to %s",
				formatter.Bold(ph.Name), domain.ShortID(ph.ID), p.Name)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Phase name")
	f.Var(dateFlag(&in.StartDate), "start", "Start date (YYYY-MM-DD)")
	f.Var(dateFlag(&in.EndDate), "end", "End date (YYYY-MM-DD)")
	f.Var(statusFlag(&in.Status), "status", "pending, in_progress or completed (default pending)")

	return cmd
}
