package contract

import (
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

type RecomputeTrigger string

const (
	TriggerManual           RecomputeTrigger = "MANUAL"
	TriggerTaskChanged      RecomputeTrigger = "TASK_CHANGED"
	TriggerConfirmation     RecomputeTrigger = "CONFIRMATION"
	TriggerAvailabilityEdit RecomputeTrigger = "AVAILABILITY_EDIT"
)

type RecomputeRequest struct {
	UserID    string
	WeekStart time.Time
	Trigger   RecomputeTrigger
	Now       *time.Time // test override; defaults to time.Now().UTC()
}

// OverflowEntry reports task effort that found no slot in the target week.
// Overflow is never silently dropped.
type OverflowEntry struct {
	TaskID          string
	Title           string
	RemainingMin    int
	ExceedsCapacity bool
}

type RecomputeResult struct {
	Plan     *domain.SchedulePlan
	Items    []domain.ScheduleItem
	Overflow []OverflowEntry
	Warnings []string
}
