package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/planboard/internal/apperr"
	"github.com/alexanderramin/planboard/internal/cli/formatter"
	"github.com/alexanderramin/planboard/internal/config"
	"github.com/alexanderramin/planboard/internal/contract"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cobra"
)

func newGanttCmd(app *App) *cobra.Command {
	var (
		today time.Time
		width int
	)

	cmd := &cobra.Command{
		Use:   "gantt [PROJECT]",
		Short: "Draw a project's phases on a timeline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("width") {
				if err := validateGanttWidth(width); err != nil {
					return err
				}
			} else {
				width = app.ganttWidth()
			}

			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, args)
			if err != nil {
				return err
			}
			req := contract.NewGanttRequest(p.ID)
			if cmd.Flags().Changed("today") {
				req.Now = &today
			}
			resp, err := app.Gantt.Build(ctx, req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Timeline · "+resp.Project.Name))
			fmt.Fprintln(out, formatter.RenderGantt(resp, width))
			return nil
		},
	}

	cmd.Flags().Var(dateFlag(&today), "today", "Date to mark as today (YYYY-MM-DD)")
	cmd.Flags().IntVar(&width, "width", 0,
		fmt.Sprintf("Track width in cells (%d-%d, default from display.gantt_width)", config.MinGanttWidth, config.MaxGanttWidth))

	return cmd
}

// validateGanttWidth applies the same bounds as display.gantt_width.
func validateGanttWidth(width int) error {
	errs := validation.Errors{
		"width": validation.Validate(width, validation.Min(config.MinGanttWidth), validation.Max(config.MaxGanttWidth)),
	}.Filter()
	if errs != nil {
		return fmt.Errorf("%w: %w", apperr.ErrValidation, errs)
	}
	return nil
}
