package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/apperr"
	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage project tasks",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskAddCmd(app),
		newTaskStatusCmd(app),
	)

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var filter domain.TaskFilter

	cmd := &cobra.Command{
		Use:   "list [PROJECT]",
		Short: "List a project's tasks",
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
			tasks, err := app.Tasks.List(ctx, p.ID, filter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(fmt.Sprintf("Tasks · %s", p.Name)))
			if desc := formatter.FormatTaskFilter(filter); desc != "" {
				fmt.Fprintln(out, desc)
			}
			fmt.Fprintln(out, formatter.FormatTaskList(tasks, detail.Phases))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "Match name or description")
	cmd.Flags().VarP(priorityFilterFlag(&filter.Priority), "priority", "p", "critical, high, medium, low or all")

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		in    domain.TaskInput
		phase string
	)

	cmd := &cobra.Command{
		Use:   "add [PROJECT]",
		Short: "Add a task to one of a project's phases",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args)
			if err != nil {
				return err
			}
			if in.PhaseID, err = resolvePhase(ctx, app, p.ID, phase); err != nil {
				return err
			}
			t, err := app.Tasks.Create(ctx, p.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created task %s [%s] in %s",
				formatter.Bold(t.Name), domain.ShortID(t.ID), p.Name)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "Task name")
	f.StringVar(&in.Description, "description", "", "Task description")
	f.Var(priorityFlag(&in.Priority), "priority", "critical, high, medium or low (default medium)")
	f.StringVar(&in.Assignee, "assignee", "", "Assignee")
	f.StringVar(&phase, "phase", "", "Phase ID or name")
	f.Var(statusFlag(&in.Status), "status", "pending, in_progress or completed (default pending)")
	f.Var(dateFlag(&in.StartDate), "start", "Start date (YYYY-MM-DD)")
	f.Var(dateFlag(&in.EndDate), "end", "End date (YYYY-MM-DD)")
	f.StringArrayVar(&in.Images, "image", nil, "Attached image path (repeatable)")

	return cmd
}

// resolvePhase accepts a phase ID or a case-insensitive phase name. Unknown
// references are passed through for the task service to reject.
func resolvePhase(ctx context.Context, app *App, projectID, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", nil
	}
	detail, err := app.Projects.GetDetail(ctx, projectID)
	if err != nil {
		return "", err
	}
	var byName []string
	for _, ph := range detail.Phases {
		if ph.ID == ref {
			return ph.ID, nil
		}
		if strings.EqualFold(ph.Name, ref) {
			byName = append(byName, ph.ID)
		}
	}
	switch len(byName) {
	case 0:
		return ref, nil
	case 1:
		return byName[0], nil
	}
	return "", fmt.Errorf("phase %q matches %d phases: %w", ref, len(byName), apperr.ErrAmbiguous)
}

func newTaskStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status TASK STATUS",
		Short: "Set a task's status (pending, in_progress, completed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Tasks.SetStatus(cmd.Context(), args[0], domain.Status(args[1])); err != nil {
				return err
			}
			status, _ := domain.ParseStatus(args[1])
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Task %s is now %s", args[0], formatter.StatusPill(status))))
			return nil
		},
	}
}
