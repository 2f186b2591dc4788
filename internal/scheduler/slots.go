// Package scheduler is the pure scheduling core: availability expansion,
// priority scoring, and greedy slot allocation. Nothing here touches
// storage or the clock; callers inject both.
package scheduler

import (
	"sort"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

type Slot struct {
	Start time.Time
	End   time.Time
}

func (s Slot) Minutes() int {
	return int(s.End.Sub(s.Start) / time.Minute)
}

// ExpandWeek turns a user's availability blocks into fixed-size slots for
// the week beginning at weekStart, in chronological order. A block shorter
// than the granularity, or a trailing remainder, still yields one short
// slot so that small windows remain assignable.
func ExpandWeek(blocks []domain.AvailabilityBlock, weekStart time.Time, granularityMin int) []Slot {
	if granularityMin <= 0 {
		granularityMin = 30
	}
	step := time.Duration(granularityMin) * time.Minute

	var slots []Slot
	for _, b := range blocks {
		start, end := b.WindowIn(weekStart)
		for cur := start; cur.Before(end); cur = cur.Add(step) {
			slotEnd := cur.Add(step)
			if slotEnd.After(end) {
				slotEnd = end
			}
			slots = append(slots, Slot{Start: cur, End: slotEnd})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start.Before(slots[j].Start)
	})
	return slots
}

// TotalMinutes sums the capacity of a slot set.
func TotalMinutes(slots []Slot) int {
	var total int
	for _, s := range slots {
		total += s.Minutes()
	}
	return total
}
