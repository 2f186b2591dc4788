package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestScoreTask_UrgencyGrowsAsDeadlineNears(t *testing.T) {
	now := time.Date(2026, time.September, 14, 8, 0, 0, 0, time.UTC)
	w := DefaultWeights()

	mk := func(daysOut int) float64 {
		due := now.AddDate(0, 0, daysOut)
		return ScoreTask(TaskInput{TaskID: "t", DueDate: &due, EstimatedMin: 60, Now: now}, w, 30).Score
	}

	assert.Greater(t, mk(1), mk(5))
	assert.Greater(t, mk(5), mk(20))
}

// Past-due tasks hit the urgency cap instead of dominating without bound.
func TestScoreTask_UrgencyCapped(t *testing.T) {
	now := time.Date(2026, time.September, 14, 8, 0, 0, 0, time.UTC)
	w := DefaultWeights()

	overdue := now.AddDate(0, 0, -10)
	barely := now.Add(12 * time.Hour)

	a := ScoreTask(TaskInput{TaskID: "a", DueDate: &overdue, EstimatedMin: 60, Now: now}, w, 30)
	b := ScoreTask(TaskInput{TaskID: "b", DueDate: &barely, EstimatedMin: 60, Now: now}, w, 30)
	assert.Equal(t, a.Score, b.Score, "both sit at the urgency cap")
}

func TestScoreTask_NoDueDateStillScored(t *testing.T) {
	now := time.Date(2026, time.September, 14, 8, 0, 0, 0, time.UTC)
	w := DefaultWeights()

	s := ScoreTask(TaskInput{TaskID: "t", EstimatedMin: 60, Now: now}, w, 30)
	// importance default 3.0 plus two 30-minute effort units.
	assert.InDelta(t, w.W2Importance*3.0+w.W3Effort*2.0, s.Score, 1e-9)
}

func TestScoreTask_ImportanceOverridesDefault(t *testing.T) {
	now := time.Date(2026, time.September, 14, 8, 0, 0, 0, time.UTC)
	w := DefaultWeights()

	low := ScoreTask(TaskInput{TaskID: "a", Importance: intPtr(1), EstimatedMin: 30, Now: now}, w, 30)
	high := ScoreTask(TaskInput{TaskID: "b", Importance: intPtr(5), EstimatedMin: 30, Now: now}, w, 30)
	assert.Greater(t, high.Score, low.Score)
}

func TestScoreTask_EffortUnitsRoundUp(t *testing.T) {
	now := time.Date(2026, time.September, 14, 8, 0, 0, 0, time.UTC)
	w := DefaultWeights()

	s31 := ScoreTask(TaskInput{TaskID: "a", EstimatedMin: 31, Now: now}, w, 30)
	s60 := ScoreTask(TaskInput{TaskID: "b", EstimatedMin: 60, Now: now}, w, 30)
	assert.Equal(t, s31.Score, s60.Score, "31 minutes occupies two 30-minute units")
}
