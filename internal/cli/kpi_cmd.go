package cli

import (
	"fmt"

	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/spf13/cobra"
)

func newKPICmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "kpi",
		Aliases: []string{"kpis"},
		Short:   "Track project KPIs",
	}
	cmd.AddCommand(newKPIListCmd(app), newKPIAddCmd(app))
	return cmd
}

func newKPIListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [PROJECT]",
		Short: "List a project's KPIs and how many are on target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args)
			if err != nil {
				return err
			}
			summary, err := app.KPIs.Summary(ctx, p.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("KPIs · "+p.Name))
			fmt.Fprintln(out, formatter.FormatKPISummary(summary))
			return nil
		},
	}
}

func newKPIAddCmd(app *App) *cobra.Command {
	var in domain.KPIInput

	cmd := &cobra.Command{
		Use:   "add [PROJECT]",
		Short: "Add a KPI to a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args)
			if err != nil {
				return err
			}
			k, err := app.KPIs.Create(ctx, p.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Added KPI %s to %s (%s)",
				formatter.Bold(k.Name), p.Name, formatter.KPIStatusBadge(k.Status()))))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "KPI name")
	f.Float64Var(&in.Target, "target", 0, "Target value")
	f.Float64Var(&in.Current, "current", 0, "Current value")
	f.StringVar(&in.Unit, "unit", "", "Unit, e.g. % or bugs")
	f.StringVar(&in.Description, "description", "", "What the KPI measures")
	f.BoolVar(&in.LowerIsBetter, "lower-is-better", false, "The goal is to stay at or below the target")

	return cmd
}
