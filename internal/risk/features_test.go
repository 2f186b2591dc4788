package risk

import (
	"testing"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/testutil"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, time.September, 14, 12, 0, 0, 0, time.UTC)

// A brand-new user with no history must still be scorable: every missing
// signal collapses to its neutral default.
func TestExtract_ColdStartNeutrals(t *testing.T) {
	task := testutil.NewTestTask("Essay")

	f := Extract(*task, nil, now)
	assert.Equal(t, NeutralOnTimeRate, f.OnTimeRate)
	assert.Equal(t, float64(NeutralDaysToDeadline), f.DaysToDeadline)
	assert.Equal(t, float64(NeutralEstimatedMin), f.EstimatedMin)
	assert.Zero(t, f.PriorMissedCount)
	assert.Zero(t, f.AvgDailyStudyMin)
}

func TestExtract_OnTimeRateFromRecentWindow(t *testing.T) {
	task := testutil.NewTestTask("Essay")
	history := []domain.TaskOutcome{
		*testutil.NewTestOutcome("t1", testutil.WithOnTime(true), testutil.WithCompletedAt(now.AddDate(0, 0, -5))),
		*testutil.NewTestOutcome("t2", testutil.WithOnTime(false), testutil.WithCompletedAt(now.AddDate(0, 0, -10))),
		// Outside the trailing window: ignored for the rate.
		*testutil.NewTestOutcome("t3", testutil.WithOnTime(false), testutil.WithCompletedAt(now.AddDate(0, 0, -90))),
	}

	f := Extract(*task, history, now)
	assert.InDelta(t, 0.5, f.OnTimeRate, 1e-9)
	assert.Equal(t, 2.0, f.PriorMissedCount, "missed count is all-time")
}

func TestExtract_DeadlineAndEffortFromTask(t *testing.T) {
	due := now.AddDate(0, 0, 3)
	task := testutil.NewTestTask("Essay", testutil.WithDueDate(due), testutil.WithEstimate(240))

	f := Extract(*task, nil, now)
	assert.InDelta(t, 3.0, f.DaysToDeadline, 1e-9)
	assert.Equal(t, 240.0, f.EstimatedMin)
}

func TestExtract_PastDueClampsToZeroDays(t *testing.T) {
	due := now.AddDate(0, 0, -4)
	task := testutil.NewTestTask("Essay", testutil.WithDueDate(due))

	f := Extract(*task, nil, now)
	assert.Zero(t, f.DaysToDeadline)
}

func TestExtract_StudyVolumeAveragedOverWindow(t *testing.T) {
	task := testutil.NewTestTask("Essay")
	history := []domain.TaskOutcome{
		*testutil.NewTestOutcome("t1", testutil.WithMinutesSpent(300), testutil.WithCompletedAt(now.AddDate(0, 0, -1))),
		*testutil.NewTestOutcome("t2", testutil.WithMinutesSpent(300), testutil.WithCompletedAt(now.AddDate(0, 0, -2))),
	}

	f := Extract(*task, history, now)
	assert.InDelta(t, 20.0, f.AvgDailyStudyMin, 1e-9)
}
