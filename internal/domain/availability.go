package domain

import (
	"fmt"
	"time"
)

// AvailabilityBlock is a recurring weekly window of assignable time.
// Weekday 0 is Monday, matching the week-start boundary, and the window
// is expressed as minutes since midnight.
type AvailabilityBlock struct {
	ID        string
	UserID    string
	Weekday   int // 0=Monday .. 6=Sunday
	StartMin  int
	EndMin    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *AvailabilityBlock) Validate() error {
	if b.UserID == "" {
		return fmt.Errorf("user ID is required")
	}
	if b.Weekday < 0 || b.Weekday > 6 {
		return fmt.Errorf("weekday %d out of range 0-6", b.Weekday)
	}
	if b.StartMin < 0 || b.EndMin > 24*60 {
		return fmt.Errorf("block window must lie within a single day")
	}
	if b.StartMin >= b.EndMin {
		return fmt.Errorf("block start %d must precede end %d", b.StartMin, b.EndMin)
	}
	return nil
}

// WindowIn resolves the block to concrete start/end timestamps inside the
// week beginning at weekStart.
func (b *AvailabilityBlock) WindowIn(weekStart time.Time) (time.Time, time.Time) {
	day := weekStart.AddDate(0, 0, b.Weekday)
	return day.Add(time.Duration(b.StartMin) * time.Minute),
		day.Add(time.Duration(b.EndMin) * time.Minute)
}
