package risk

import (
	"testing"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neutralFeatures() Features {
	return Features{
		OnTimeRate:     NeutralOnTimeRate,
		DaysToDeadline: NeutralDaysToDeadline,
		EstimatedMin:   NeutralEstimatedMin,
	}
}

func TestScore_MonotonicInDeadlinePressure(t *testing.T) {
	c := DefaultCoefficients()

	far := neutralFeatures()
	far.DaysToDeadline = 20
	near := neutralFeatures()
	near.DaysToDeadline = 1

	farScore, _ := Score(far, c)
	nearScore, _ := Score(near, c)
	assert.Greater(t, nearScore, farScore)
}

func TestScore_MonotonicInOnTimeRate(t *testing.T) {
	c := DefaultCoefficients()

	reliable := neutralFeatures()
	reliable.OnTimeRate = 1.0
	flaky := neutralFeatures()
	flaky.OnTimeRate = 0.2

	r, _ := Score(reliable, c)
	f, _ := Score(flaky, c)
	assert.Greater(t, f, r)
}

func TestScore_ClampedToUnitInterval(t *testing.T) {
	c := DefaultCoefficients()

	worst := Features{OnTimeRate: 0, DaysToDeadline: 0, EstimatedMin: 10000, PriorMissedCount: 100, AvgDailyStudyMin: 0}
	score, _ := Score(worst, c)
	assert.LessOrEqual(t, score, 1.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

// Reasons are the top contributing terms, largest first, capped at three,
// and every surfaced reason carries a positive contribution.
func TestScore_ReasonsSortedAndCapped(t *testing.T) {
	c := DefaultCoefficients()

	f := Features{OnTimeRate: 0.1, DaysToDeadline: 1, EstimatedMin: 480, PriorMissedCount: 4, AvgDailyStudyMin: 10}
	_, reasons := Score(f, c)
	require.Len(t, reasons, 3)
	for i := 1; i < len(reasons); i++ {
		assert.GreaterOrEqual(t, reasons[i-1].Contribution, reasons[i].Contribution)
	}
	for _, r := range reasons {
		assert.Positive(t, r.Contribution)
		assert.NotEmpty(t, r.Message)
	}
	assert.Equal(t, contract.ReasonDeadlinePressure, reasons[0].Code,
		"a one-day deadline dominates this profile")
}

func TestScore_Deterministic(t *testing.T) {
	c := DefaultCoefficients()
	f := Features{OnTimeRate: 0.4, DaysToDeadline: 3, EstimatedMin: 200, PriorMissedCount: 2, AvgDailyStudyMin: 45}

	firstScore, firstReasons := Score(f, c)
	for i := 0; i < 5; i++ {
		score, reasons := Score(f, c)
		assert.Equal(t, firstScore, score)
		assert.Equal(t, firstReasons, reasons)
	}
}

func TestThresholds_Banding(t *testing.T) {
	th := DefaultThresholds()
	assert.Equal(t, domain.RiskHigh, th.Band(0.6), "band boundaries are inclusive")
	assert.Equal(t, domain.RiskHigh, th.Band(0.9))
	assert.Equal(t, domain.RiskModerate, th.Band(0.35))
	assert.Equal(t, domain.RiskModerate, th.Band(0.59))
	assert.Equal(t, domain.RiskLow, th.Band(0.34))
	assert.Equal(t, domain.RiskLow, th.Band(0.0))
}
