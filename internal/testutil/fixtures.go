package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

// TestUser is the user ID fixtures default to.
const TestUser = "user-1"

// Task options
type TaskOption func(*domain.Task)

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithEstimate(min int) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedMin = &min
	}
}

func WithImportance(v int) TaskOption {
	return func(t *domain.Task) {
		t.Importance = &v
	}
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithCourse(course string) TaskOption {
	return func(t *domain.Task) {
		t.Course = course
	}
}

func WithTaskUser(userID string) TaskOption {
	return func(t *domain.Task) {
		t.UserID = userID
	}
}

func NewTestTask(title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		UserID:    TestUser,
		Title:     title,
		TaskType:  domain.ItemAssignment,
		Status:    domain.TaskPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// AvailabilityBlock options
type BlockOption func(*domain.AvailabilityBlock)

func WithBlockUser(userID string) BlockOption {
	return func(b *domain.AvailabilityBlock) {
		b.UserID = userID
	}
}

// NewTestBlock builds a recurring block on the given weekday (0=Monday)
// spanning [startMin, endMin) minutes since midnight.
func NewTestBlock(weekday, startMin, endMin int, opts ...BlockOption) *domain.AvailabilityBlock {
	now := time.Now().UTC()
	b := &domain.AvailabilityBlock{
		ID:        uuid.New().String(),
		UserID:    TestUser,
		Weekday:   weekday,
		StartMin:  startMin,
		EndMin:    endMin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Syllabus options
type SyllabusOption func(*domain.Syllabus)

func WithSyllabusStatus(s domain.SyllabusStatus) SyllabusOption {
	return func(sy *domain.Syllabus) {
		sy.Status = s
	}
}

func WithRawText(text string) SyllabusOption {
	return func(sy *domain.Syllabus) {
		sy.RawText = text
	}
}

func NewTestSyllabus(course string, opts ...SyllabusOption) *domain.Syllabus {
	now := time.Now().UTC()
	sy := &domain.Syllabus{
		ID:        uuid.New().String(),
		UserID:    TestUser,
		Course:    course,
		Term:      "Fall 2026",
		FileName:  course + ".txt",
		Status:    domain.SyllabusUploaded,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(sy)
	}
	return sy
}

// Extraction options
type ExtractionOption func(*domain.Extraction)

func WithReviewStatus(s domain.ReviewStatus) ExtractionOption {
	return func(e *domain.Extraction) {
		e.ReviewStatus = s
	}
}

func WithConfidence(c float64) ExtractionOption {
	return func(e *domain.Extraction) {
		e.Confidence = c
	}
}

func WithExtractionDue(d time.Time) ExtractionOption {
	return func(e *domain.Extraction) {
		e.DueDate = &d
	}
}

func NewTestExtraction(syllabusID, title string, opts ...ExtractionOption) *domain.Extraction {
	now := time.Now().UTC()
	e := &domain.Extraction{
		ID:           uuid.New().String(),
		SyllabusID:   syllabusID,
		ItemType:     domain.ItemAssignment,
		Title:        title,
		Confidence:   0.8,
		SourcePage:   1,
		SourceLine:   title,
		ReviewStatus: domain.ReviewPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Outcome options
type OutcomeOption func(*domain.TaskOutcome)

func WithOnTime(onTime bool) OutcomeOption {
	return func(o *domain.TaskOutcome) {
		o.OnTime = onTime
	}
}

func WithMinutesSpent(min int) OutcomeOption {
	return func(o *domain.TaskOutcome) {
		o.MinutesSpent = min
	}
}

func WithCompletedAt(at time.Time) OutcomeOption {
	return func(o *domain.TaskOutcome) {
		o.CompletedAt = &at
	}
}

func NewTestOutcome(taskID string, opts ...OutcomeOption) *domain.TaskOutcome {
	now := time.Now().UTC()
	o := &domain.TaskOutcome{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		OnTime:    true,
		CreatedAt: now,
	}
	completed := now
	o.CompletedAt = &completed
	for _, opt := range opts {
		opt(o)
	}
	return o
}
