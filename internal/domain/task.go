package domain

import (
	"fmt"
	"time"
)

type Task struct {
	ID           string
	UserID       string
	Title        string
	Course       string
	Description  string
	TaskType     ItemType
	DueDate      *time.Time
	EstimatedMin *int
	Importance   *int // 1-5, nil means unset
	Status       TaskStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks field-level constraints before any mutation is persisted.
func (t *Task) Validate() error {
	if t.UserID == "" {
		return fmt.Errorf("user ID is required")
	}
	if t.Title == "" {
		return fmt.Errorf("title is required")
	}
	if t.Importance != nil && (*t.Importance < 1 || *t.Importance > 5) {
		return fmt.Errorf("importance %d out of range 1-5", *t.Importance)
	}
	if t.EstimatedMin != nil && *t.EstimatedMin < 0 {
		return fmt.Errorf("estimated minutes must be non-negative")
	}
	if !ValidTaskStatuses[string(t.Status)] {
		return fmt.Errorf("invalid task status %q", t.Status)
	}
	return nil
}

// EffortMin returns the estimated effort in minutes, or 0 when unset.
func (t *Task) EffortMin() int {
	if t.EstimatedMin == nil {
		return 0
	}
	return *t.EstimatedMin
}

// DueWeek returns the Monday week start containing the due date, or nil
// when the task has no deadline.
func (t *Task) DueWeek() *time.Time {
	if t.DueDate == nil {
		return nil
	}
	w := WeekStart(*t.DueDate)
	return &w
}
