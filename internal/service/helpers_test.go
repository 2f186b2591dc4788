package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/config"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/db"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/docsource"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/repository"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/testutil"
)

// testEnv wires every repository and the shared schedule service over one
// in-memory database, the same shape main assembles in production.
type testEnv struct {
	database *sql.DB
	tasks    *repository.SQLiteTaskRepo
	blocks   *repository.SQLiteAvailabilityRepo
	plans    *repository.SQLitePlanRepo
	profiles *repository.SQLiteProfileRepo
	syllabi  *repository.SQLiteSyllabusRepo
	extracts *repository.SQLiteExtractionRepo
	outcomes *repository.SQLiteOutcomeRepo
	uow      db.UnitOfWork
	cfg      config.Config
	sink     *testutil.CollectingSink
	schedule *scheduleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	e := &testEnv{
		database: database,
		tasks:    repository.NewSQLiteTaskRepo(database),
		blocks:   repository.NewSQLiteAvailabilityRepo(database),
		plans:    repository.NewSQLitePlanRepo(database),
		profiles: repository.NewSQLiteProfileRepo(database),
		syllabi:  repository.NewSQLiteSyllabusRepo(database),
		extracts: repository.NewSQLiteExtractionRepo(database),
		outcomes: repository.NewSQLiteOutcomeRepo(database),
		uow:      testutil.NewTestUoW(database),
		cfg:      config.Default(),
		sink:     &testutil.CollectingSink{},
	}
	e.schedule = NewScheduleService(e.tasks, e.blocks, e.plans, e.profiles, e.uow, e.cfg, e.sink)
	return e
}

func (e *testEnv) taskService() TaskService {
	return NewTaskService(e.tasks, e.uow, e.sink, e.schedule)
}

func (e *testEnv) availabilityService() AvailabilityService {
	return NewAvailabilityService(e.blocks, e.plans, e.schedule)
}

func (e *testEnv) syllabusService() SyllabusService {
	return NewSyllabusService(e.syllabi, e.extracts, e.profiles, e.uow, docsource.PlainText{}, e.cfg, e.sink, e.schedule)
}

func (e *testEnv) riskService() RiskService {
	return NewRiskService(e.tasks, e.outcomes, e.cfg)
}

func (e *testEnv) profileService() ProfileService {
	return NewProfileService(e.profiles, e.cfg)
}

func (e *testEnv) recommendService() RecommendService {
	return NewRecommendService(e.tasks, e.plans, e.riskService())
}

// upcomingWeek returns the start of the week after the current one, so
// recomputes triggered against the real clock never hit the elapsed-week
// guard.
func upcomingWeek() time.Time {
	return domain.WeekStart(time.Now().UTC()).AddDate(0, 0, 7)
}
