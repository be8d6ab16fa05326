package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/planboard/internal/cli"
	"github.com/alexanderramin/planboard/internal/config"
	"github.com/alexanderramin/planboard/internal/db"
	"github.com/alexanderramin/planboard/internal/domain"
	"github.com/alexanderramin/planboard/internal/logging"
	"github.com/alexanderramin/planboard/internal/repository"
	"github.com/alexanderramin/planboard/internal/service"
	"github.com/alexanderramin/planboard/internal/timeline"
	_ "github.com/joho/godotenv/autoload"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.ErrorMessage(err))
		os.Exit(1)
	}
}

// configPath picks --config out of args before cobra sees them, since the
// configuration decides how the command tree is wired.
func configPath(args []string) string {
	fs := pflag.NewFlagSet("planboard", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	path := fs.String("config", "", "")
	fs.BoolP("help", "h", false, "")
	_ = fs.Parse(args)
	return *path
}

func run(args []string) error {
	cfg, err := config.Resolve(configPath(args))
	if err != nil {
		return err
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if interactive && cfg.Log.Level == config.NewDefaultConfig().Log.Level {
		// info records would draw over the TUI's alt screen.
		cfg.Log.Level = "warn"
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	var clock timeline.Clock = timeline.SystemClock{}
	if today, ok, err := cfg.Display.TodayDate(); err != nil {
		return err
	} else if ok {
		clock = timeline.FixedClock{At: today}
	}

	projectRepo := repository.NewSQLiteProjectRepo(database)
	memberRepo := repository.NewSQLiteMemberRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	kpiRepo := repository.NewSQLiteKPIRepo(database)
	documentRepo := repository.NewSQLiteDocumentRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	app := &cli.App{
		Projects:  service.NewProjectService(projectRepo, memberRepo, phaseRepo, taskRepo, kpiRepo, uow, observer),
		Tasks:     service.NewTaskService(projectRepo, taskRepo, uow, observer),
		KPIs:      service.NewKPIService(projectRepo, kpiRepo, uow, observer),
		Documents: service.NewDocumentService(documentRepo),
		Dashboard: service.NewDashboardService(projectRepo, taskRepo),
		Gantt:     service.NewGanttService(projectRepo, phaseRepo, clock, observer),
		Import:    service.NewImportService(uow, observer),

		Clock:       clock,
		GanttWidth:  cfg.Display.GanttWidth,
		Interactive: interactive,
	}

	if err := seed(context.Background(), cfg.Seed, app); err != nil {
		return err
	}

	root := cli.NewRootCmd(app)
	root.PersistentFlags().String("config", "", "path to a planboard.yaml file")
	root.SetArgs(args)
	return root.Execute()
}

// seed loads the demo workspace into an empty store. A database that already
// holds projects or documents is left alone.
func seed(ctx context.Context, cfg config.SeedConfig, app *cli.App) error {
	if !cfg.Enabled {
		return nil
	}
	existing, err := app.Projects.List(ctx)
	if err != nil {
		return err
	}
	docs, err := app.Documents.Library(ctx, domain.DocumentFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 || docs.Total() > 0 {
		return nil
	}
	if cfg.File != "" {
		_, err = app.Import.ImportFile(ctx, cfg.File)
	} else {
		_, err = app.Import.Seed(ctx)
	}
	if err != nil {
		return fmt.Errorf("seeding workspace: %w", err)
	}
	return nil
}
