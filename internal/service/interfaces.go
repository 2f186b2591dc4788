package service

import (
	"context"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, userID, id string) (*domain.Task, error)
	List(ctx context.Context, userID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// MarkDone transitions the task to done and records its immutable
	// outcome in the same transaction.
	MarkDone(ctx context.Context, userID, id string, minutesSpent int, now *time.Time) (*domain.Task, error)
	Delete(ctx context.Context, userID, id string, now *time.Time) error
}

type AvailabilityService interface {
	Create(ctx context.Context, b *domain.AvailabilityBlock, now *time.Time) error
	List(ctx context.Context, userID string) ([]*domain.AvailabilityBlock, error)
	Update(ctx context.Context, b *domain.AvailabilityBlock, now *time.Time) error
	Delete(ctx context.Context, userID, id string, now *time.Time) error
}

type SyllabusService interface {
	Upload(ctx context.Context, req contract.UploadRequest) (*domain.Syllabus, error)
	GetByID(ctx context.Context, userID, id string) (*domain.Syllabus, error)
	List(ctx context.Context, userID string) ([]*domain.Syllabus, error)
	ListExtractions(ctx context.Context, userID, syllabusID string) ([]*domain.Extraction, error)
	// Process runs the extraction pipeline: uploaded -> processing ->
	// needs_review, or failed when the document source errors out.
	Process(ctx context.Context, userID, syllabusID string, now *time.Time) (*domain.Syllabus, error)
	// Cancel aborts a processing run; the syllabus lands in failed with
	// the cancellation reason retained.
	Cancel(ctx context.Context, userID, syllabusID string) (*domain.Syllabus, error)
	// Rerun takes a failed syllabus back through processing, clearing
	// the previous candidate set first.
	Rerun(ctx context.Context, userID, syllabusID string, now *time.Time) (*domain.Syllabus, error)
	Review(ctx context.Context, req contract.ReviewRequest) (*domain.Extraction, error)
	// Confirm materializes accepted and edited extractions into tasks,
	// auto-promoting still-pending ones, in a single transaction.
	Confirm(ctx context.Context, userID, syllabusID string, now *time.Time) ([]*domain.Task, error)
}

type ScheduleService interface {
	Recompute(ctx context.Context, req contract.RecomputeRequest) (*contract.RecomputeResult, error)
	GetCurrent(ctx context.Context, userID string, weekStart time.Time) (*domain.SchedulePlan, []domain.ScheduleItem, error)
	ListVersions(ctx context.Context, userID string, weekStart time.Time) ([]*domain.SchedulePlan, error)
	AddManualItem(ctx context.Context, req contract.ManualItemRequest) (*contract.RecomputeResult, error)
}

// Recomputer is the narrow trigger surface task, availability, and
// syllabus mutations use to refresh affected weeks. Elapsed weeks are
// skipped; the full ScheduleService surface stays behind its own
// interface.
type Recomputer interface {
	RecomputeWeeks(ctx context.Context, userID string, weeks []time.Time, trigger contract.RecomputeTrigger, now time.Time) error
}

type RiskService interface {
	Assess(ctx context.Context, req contract.RiskRequest) ([]contract.RiskAssessment, error)
	AssessTask(ctx context.Context, userID, taskID string, now *time.Time) (*contract.RiskAssessment, error)
}

type RecommendService interface {
	Recommend(ctx context.Context, req contract.RecommendRequest) ([]contract.Recommendation, error)
}

type ProfileService interface {
	// Get returns the stored per-user profile, or one synthesized from
	// the process configuration when none exists.
	Get(ctx context.Context, userID string) (*domain.PlannerProfile, error)
	Update(ctx context.Context, p *domain.PlannerProfile) error
}
