// Package risk scores each task's probability of missing its deadline
// from behavioral features. The model stays interpretable: every score is
// a sum over named feature contributions, never an opaque value.
package risk

import (
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

// Neutral defaults substituted when a historical signal is missing, so
// scoring is always computable even for brand-new users (cold start).
const (
	NeutralOnTimeRate     = 0.75
	NeutralDaysToDeadline = 14
	NeutralEstimatedMin   = 60
)

// outcomeWindowDays is the trailing window for behavioral features.
const outcomeWindowDays = 30

// Features is the fixed feature contract consumed by the model.
// Retraining replaces coefficients only; this set stays stable so
// in-flight explanations remain valid.
type Features struct {
	OnTimeRate       float64 // trailing-30d completion-on-time rate
	DaysToDeadline   float64
	EstimatedMin     float64
	PriorMissedCount float64
	AvgDailyStudyMin float64
}

// Extract computes the feature vector for one task from the user's
// outcome history. It fails closed: missing signals default to neutral
// values rather than raising an error.
func Extract(task domain.Task, history []domain.TaskOutcome, now time.Time) Features {
	now = now.UTC()
	cutoff := now.AddDate(0, 0, -outcomeWindowDays)

	var recentTotal, recentOnTime, missedTotal, recentMinutes int
	for _, o := range history {
		if !o.OnTime {
			missedTotal++
		}
		if o.CompletedAt == nil || o.CompletedAt.Before(cutoff) {
			continue
		}
		recentTotal++
		if o.OnTime {
			recentOnTime++
		}
		recentMinutes += o.MinutesSpent
	}

	f := Features{
		OnTimeRate:       NeutralOnTimeRate,
		DaysToDeadline:   NeutralDaysToDeadline,
		EstimatedMin:     NeutralEstimatedMin,
		PriorMissedCount: float64(missedTotal),
		AvgDailyStudyMin: float64(recentMinutes) / float64(outcomeWindowDays),
	}
	if recentTotal > 0 {
		f.OnTimeRate = float64(recentOnTime) / float64(recentTotal)
	}
	if task.DueDate != nil {
		days := task.DueDate.Sub(now).Hours() / 24
		if days < 0 {
			days = 0
		}
		f.DaysToDeadline = days
	}
	if task.EstimatedMin != nil && *task.EstimatedMin > 0 {
		f.EstimatedMin = float64(*task.EstimatedMin)
	}
	return f
}
