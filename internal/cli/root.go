package cli

import (
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/alexanderramin/planboard/internal/timeline"
	"github.com/spf13/cobra"
)

// DefaultGanttWidth is the track width used when App.GanttWidth is unset.
const DefaultGanttWidth = 60

// App holds the services and display settings shared by commands and the TUI.
type App struct {
	Projects  service.ProjectService
	Tasks     service.TaskService
	KPIs      service.KPIService
	Documents service.DocumentService
	Dashboard service.DashboardService
	Gantt     service.GanttService
	Import    service.ImportService

	// Clock supplies "today" for the Gantt marker and export stamps.
	Clock      timeline.Clock
	GanttWidth int
	// Interactive makes the bare root command open the TUI.
	Interactive bool

	// ActiveProject is the default PROJECT argument. The TUI sets it while a
	// project is open so command-bar commands can omit it.
	ActiveProject string
}

func (a *App) clock() timeline.Clock {
	return timeline.ClockOrSystem(a.Clock)
}

func (a *App) ganttWidth() int {
	if a.GanttWidth <= 0 {
		return DefaultGanttWidth
	}
	return a.GanttWidth
}

// NewRootCmd creates the top-level "planboard" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "planboard",
		Short: "Project dashboard with a Gantt timeline",
		Long: "planboard tracks projects, their team, phases, tasks, KPIs and documents,\n" +
			"and lays the phases out on a Gantt timeline.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Interactive {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newStatsCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newKPICmd(app),
		newDocsCmd(app),
		newGanttCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newTUICmd(app),
	)

	return root
}
