package domain

import "time"

// TaskOutcome records how a task actually finished. Created once when the
// task transitions to done and immutable afterward: it is the label source
// for risk scoring and must never be edited retroactively.
type TaskOutcome struct {
	ID           string
	TaskID       string
	CompletedAt  *time.Time
	OnTime       bool
	MinutesSpent int
	CreatedAt    time.Time
}
