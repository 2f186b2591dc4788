package domain

import "time"

// PlannerProfile holds per-user tuning knobs. Missing profiles fall back
// to the process-level configuration defaults.
type PlannerProfile struct {
	UserID              string
	W1Urgency           float64
	W2Importance        float64
	W3Effort            float64
	ImportanceDefault   float64
	UrgencyCap          float64
	AutoAcceptThreshold float64
	SlotGranularityMin  int
	RetryLimit          int
	UpdatedAt           time.Time
}
