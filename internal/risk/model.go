package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

// Coefficients are the inspectable weights of the linear model. External
// retraining only replaces these values; the feature set and the scoring
// contract stay fixed.
type Coefficients struct {
	Bias             float64
	DeadlinePressure float64
	OnTimeRate       float64
	Effort           float64
	MissedHistory    float64
	StudyVolume      float64
}

func DefaultCoefficients() Coefficients {
	return Coefficients{
		Bias:             0.05,
		DeadlinePressure: 0.35,
		OnTimeRate:       0.25,
		Effort:           0.15,
		MissedHistory:    0.12,
		StudyVolume:      0.08,
	}
}

// Thresholds band a score for display. The same table backs the
// recommendation engine's risk bucketing.
type Thresholds struct {
	High     float64
	Moderate float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{High: 0.6, Moderate: 0.35}
}

func (t Thresholds) Band(score float64) domain.RiskBand {
	switch {
	case score >= t.High:
		return domain.RiskHigh
	case score >= t.Moderate:
		return domain.RiskModerate
	default:
		return domain.RiskLow
	}
}

// maxReasons caps how many reason codes are surfaced per assessment.
const maxReasons = 3

// Score evaluates the linear model over the feature vector and returns
// the clamped score plus the top contributing reasons, largest first.
// Each term is normalized to [0,1] before weighting, so the score is a
// plain weighted sum a user can audit.
func Score(f Features, c Coefficients) (float64, []contract.ReasonContribution) {
	terms := []contract.ReasonContribution{
		{
			Code:         contract.ReasonDeadlinePressure,
			Message:      deadlineMessage(f.DaysToDeadline),
			Contribution: c.DeadlinePressure * (1.0 / math.Max(1, f.DaysToDeadline)),
		},
		{
			Code:         contract.ReasonLowOnTimeRate,
			Message:      fmt.Sprintf("On-time rate over the last 30 days is %.0f%%", f.OnTimeRate*100),
			Contribution: c.OnTimeRate * (1.0 - clamp01(f.OnTimeRate)),
		},
		{
			Code:         contract.ReasonLargeEffort,
			Message:      fmt.Sprintf("Estimated effort is %.0f minutes", f.EstimatedMin),
			Contribution: c.Effort * clamp01(f.EstimatedMin/480.0),
		},
		{
			Code:         contract.ReasonMissedHistory,
			Message:      fmt.Sprintf("%.0f deadlines missed before", f.PriorMissedCount),
			Contribution: c.MissedHistory * clamp01(f.PriorMissedCount/5.0),
		},
		{
			Code:         contract.ReasonLowStudyVolume,
			Message:      fmt.Sprintf("Averaging %.0f study minutes per day", f.AvgDailyStudyMin),
			Contribution: c.StudyVolume * (1.0 - clamp01(f.AvgDailyStudyMin/120.0)),
		},
	}

	score := c.Bias
	for _, t := range terms {
		score += t.Contribution
	}

	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Contribution > terms[j].Contribution
	})
	var reasons []contract.ReasonContribution
	for _, t := range terms {
		if len(reasons) >= maxReasons {
			break
		}
		if t.Contribution <= 0 {
			continue
		}
		reasons = append(reasons, t)
	}

	return clamp01(score), reasons
}

func deadlineMessage(days float64) string {
	switch {
	case days < 1:
		return "Due now or past due"
	case days < 2:
		return "Due tomorrow"
	case days <= 7:
		return "Due this week"
	default:
		return "Deadline still comfortable"
	}
}

func clamp01(v float64) float64 {
	return math.Min(1.0, math.Max(0.0, v))
}
