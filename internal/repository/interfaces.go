package repository

import (
	"context"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, userID, id string) (*domain.Task, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Task, error)
	// ListEligible returns tasks that can compete for slots in the week
	// starting at weekStart: not done, and due within or after that week
	// (tasks without a due date stay eligible).
	ListEligible(ctx context.Context, userID string, weekStart time.Time) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, userID, id string) error
}

type AvailabilityRepo interface {
	Create(ctx context.Context, b *domain.AvailabilityBlock) error
	GetByID(ctx context.Context, userID, id string) (*domain.AvailabilityBlock, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.AvailabilityBlock, error)
	Update(ctx context.Context, b *domain.AvailabilityBlock) error
	Delete(ctx context.Context, userID, id string) error
}

type PlanRepo interface {
	// CurrentVersion returns the highest plan version for (user, week),
	// or 0 when no plan exists yet.
	CurrentVersion(ctx context.Context, userID string, weekStart time.Time) (int, error)
	GetCurrent(ctx context.Context, userID string, weekStart time.Time) (*domain.SchedulePlan, error)
	ListVersions(ctx context.Context, userID string, weekStart time.Time) ([]*domain.SchedulePlan, error)
	// ListPlannedWeeks returns the distinct week starts at or after from
	// that already hold at least one plan version.
	ListPlannedWeeks(ctx context.Context, userID string, from time.Time) ([]time.Time, error)
	CreatePlan(ctx context.Context, p *domain.SchedulePlan) error
	InsertItems(ctx context.Context, items []domain.ScheduleItem) error
	ListItems(ctx context.Context, planID string) ([]domain.ScheduleItem, error)
	// ListItemsByTask returns items referencing the task across all plan
	// versions, newest plan first.
	ListItemsByTask(ctx context.Context, taskID string) ([]domain.ScheduleItem, error)
}

type SyllabusRepo interface {
	Create(ctx context.Context, s *domain.Syllabus) error
	GetByID(ctx context.Context, userID, id string) (*domain.Syllabus, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Syllabus, error)
	Update(ctx context.Context, s *domain.Syllabus) error
}

type ExtractionRepo interface {
	Create(ctx context.Context, e *domain.Extraction) error
	GetByID(ctx context.Context, id string) (*domain.Extraction, error)
	ListBySyllabus(ctx context.Context, syllabusID string) ([]*domain.Extraction, error)
	Update(ctx context.Context, e *domain.Extraction) error
	// DeleteBySyllabus clears all candidates before a failed syllabus is
	// re-processed, so a re-run never duplicates rows.
	DeleteBySyllabus(ctx context.Context, syllabusID string) error
}

type OutcomeRepo interface {
	Create(ctx context.Context, o *domain.TaskOutcome) error
	ListByTask(ctx context.Context, taskID string) ([]domain.TaskOutcome, error)
	ListByUser(ctx context.Context, userID string) ([]domain.TaskOutcome, error)
}

type ProfileRepo interface {
	Get(ctx context.Context, userID string) (*domain.PlannerProfile, error)
	Upsert(ctx context.Context, p *domain.PlannerProfile) error
}
