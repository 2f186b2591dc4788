package scheduler

import "time"

// Placement assigns one task to one concrete time range.
type Placement struct {
	TaskID string
	Start  time.Time
	End    time.Time
}

// Overflow reports effort that found no slot. ExceedsCapacity marks a
// task whose estimate is larger than the whole week's availability.
type Overflow struct {
	TaskID          string
	Title           string
	RemainingMin    int
	ExceedsCapacity bool
}

type Assignment struct {
	Placements []Placement
	Overflow   []Overflow
}

// Allocate walks tasks in their given (canonical) order and greedily
// consumes the earliest still-free slots until each task's effort is
// satisfied or availability runs out. Partially satisfied tasks keep their
// placements and report the remainder as overflow; nothing is silently
// dropped. Slots colliding with reserved placements (manual items carried
// across plan versions) are never assigned.
func Allocate(slots []Slot, tasks []ScoredTask, reserved []Placement) Assignment {
	free := make([]bool, len(slots))
	capacityMin := 0
	for i, s := range slots {
		free[i] = !collides(s, reserved)
		capacityMin += s.Minutes()
	}

	var out Assignment
	for _, t := range tasks {
		remaining := t.Input.EstimatedMin
		if remaining <= 0 {
			continue
		}
		for i, s := range slots {
			if remaining <= 0 {
				break
			}
			if !free[i] {
				continue
			}
			free[i] = false
			end := s.End
			if mins := s.Minutes(); mins > remaining {
				end = s.Start.Add(time.Duration(remaining) * time.Minute)
			}
			out.Placements = append(out.Placements, Placement{
				TaskID: t.Input.TaskID,
				Start:  s.Start,
				End:    end,
			})
			remaining -= int(end.Sub(s.Start) / time.Minute)
		}
		if remaining > 0 {
			out.Overflow = append(out.Overflow, Overflow{
				TaskID:          t.Input.TaskID,
				Title:           t.Input.Title,
				RemainingMin:    remaining,
				ExceedsCapacity: t.Input.EstimatedMin > capacityMin,
			})
		}
	}
	return out
}

func collides(s Slot, reserved []Placement) bool {
	for _, r := range reserved {
		if s.Start.Before(r.End) && r.Start.Before(s.End) {
			return true
		}
	}
	return false
}
