package contract

import (
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

// ReasonCode names a feature whose contribution to a risk score is
// surfaced for interpretability.
type ReasonCode string

const (
	ReasonDeadlinePressure ReasonCode = "DEADLINE_PRESSURE"
	ReasonLowOnTimeRate    ReasonCode = "LOW_ON_TIME_RATE"
	ReasonLargeEffort      ReasonCode = "LARGE_EFFORT"
	ReasonMissedHistory    ReasonCode = "MISSED_HISTORY"
	ReasonLowStudyVolume   ReasonCode = "LOW_STUDY_VOLUME"
)

// ReasonContribution is one named term of the linear risk score.
type ReasonContribution struct {
	Code         ReasonCode
	Message      string
	Contribution float64
}

type RiskAssessment struct {
	TaskID  string
	Title   string
	Score   float64
	Band    domain.RiskBand
	Reasons []ReasonContribution
}

type RiskRequest struct {
	UserID string
	Now    *time.Time
}
