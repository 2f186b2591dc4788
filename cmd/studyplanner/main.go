package main

import (
	"fmt"
	"os"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/cli"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/config"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/db"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/docsource"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/events"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/repository"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("STUDYPLANNER_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	taskRepo := repository.NewSQLiteTaskRepo(database)
	availRepo := repository.NewSQLiteAvailabilityRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	syllabusRepo := repository.NewSQLiteSyllabusRepo(database)
	extractionRepo := repository.NewSQLiteExtractionRepo(database)
	outcomeRepo := repository.NewSQLiteOutcomeRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Events and telemetry go to stderr so stdout stays parseable.
	sink := events.NewLogSink(os.Stderr)
	observer := service.NewLogUseCaseObserver(os.Stderr)

	scheduleSvc := service.NewScheduleService(taskRepo, availRepo, planRepo, profileRepo, uow, cfg, sink, observer)
	riskSvc := service.NewRiskService(taskRepo, outcomeRepo, cfg, observer)

	app := &cli.App{
		Tasks:        service.NewTaskService(taskRepo, uow, sink, scheduleSvc, observer),
		Availability: service.NewAvailabilityService(availRepo, planRepo, scheduleSvc, observer),
		Syllabi: service.NewSyllabusService(
			syllabusRepo, extractionRepo, profileRepo, uow,
			docsource.PlainText{}, cfg, sink, scheduleSvc, observer,
		),
		Schedule:  scheduleSvc,
		Risk:      riskSvc,
		Recommend: service.NewRecommendService(taskRepo, planRepo, riskSvc, observer),
		Profiles:  service.NewProfileService(profileRepo, cfg, observer),
		Out:       os.Stdout,
	}

	return cli.NewRootCmd(app).Execute()
}
