package scheduler

import (
	"math"
	"time"
)

// Weights tune the task priority score. ImportanceDefault is the neutral
// value substituted when a task has no user-set importance; UrgencyCap
// bounds the urgency term so past-due tasks cannot drown out everything.
type Weights struct {
	W1Urgency         float64
	W2Importance      float64
	W3Effort          float64
	ImportanceDefault float64
	UrgencyCap        float64
}

func DefaultWeights() Weights {
	return Weights{
		W1Urgency:         10.0,
		W2Importance:      1.0,
		W3Effort:          0.25,
		ImportanceDefault: 3.0,
		UrgencyCap:        1.0,
	}
}

// TaskInput is the scheduler's view of one eligible task.
type TaskInput struct {
	TaskID       string
	Title        string
	DueDate      *time.Time
	Importance   *int // 1-5, nil means unset
	EstimatedMin int
	Now          time.Time
}

type ScoredTask struct {
	Input TaskInput
	Score float64
}

// ScoreTask computes score = w1*urgency + w2*importance + w3*effort_units.
// Urgency is 1/max(1, days_to_deadline), capped; a task with no due date
// gets urgency 0 but stays eligible. Effort units are slot-granularity
// chunks of estimated effort.
func ScoreTask(in TaskInput, w Weights, granularityMin int) ScoredTask {
	if granularityMin <= 0 {
		granularityMin = 30
	}

	var urgency float64
	if in.DueDate != nil {
		days := daysUntil(in.Now, *in.DueDate)
		urgency = math.Min(w.UrgencyCap, 1.0/math.Max(1, float64(days)))
	}

	importance := w.ImportanceDefault
	if in.Importance != nil {
		importance = float64(*in.Importance)
	}

	effortUnits := math.Ceil(float64(in.EstimatedMin) / float64(granularityMin))

	return ScoredTask{
		Input: in,
		Score: w.W1Urgency*urgency + w.W2Importance*importance + w.W3Effort*effortUnits,
	}
}

// ScoreTasks scores every input with the same weights.
func ScoreTasks(inputs []TaskInput, w Weights, granularityMin int) []ScoredTask {
	scored := make([]ScoredTask, 0, len(inputs))
	for _, in := range inputs {
		scored = append(scored, ScoreTask(in, w, granularityMin))
	}
	return scored
}

func daysUntil(now, due time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}
