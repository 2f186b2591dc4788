package domain

import "time"

// SchedulePlan is an immutable snapshot of one user's week. The current
// plan for a (user, week) is the row with the highest version; versions
// are never edited in place.
type SchedulePlan struct {
	ID        string
	UserID    string
	WeekStart time.Time
	Version   int
	CreatedAt time.Time
}

// ScheduleItem assigns a task to a concrete time range inside exactly one
// plan version.
type ScheduleItem struct {
	ID      string
	PlanID  string
	TaskID  string
	StartAt time.Time
	EndAt   time.Time
	Source  ScheduleSource
}

// Overlaps reports whether two items collide in time. Touching boundaries
// do not overlap.
func (i *ScheduleItem) Overlaps(other *ScheduleItem) bool {
	return i.StartAt.Before(other.EndAt) && other.StartAt.Before(i.EndAt)
}
