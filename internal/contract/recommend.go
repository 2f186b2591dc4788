package contract

import "time"

type RecommendationCode string

const (
	RecommendPrioritize    RecommendationCode = "PRIORITIZE"
	RecommendSplit         RecommendationCode = "SPLIT_INTO_BLOCKS"
	RecommendScheduleTime  RecommendationCode = "SCHEDULE_TIME"
	RecommendAddDueDate    RecommendationCode = "ADD_DUE_DATE"
	RecommendEncouragement RecommendationCode = "ON_TRACK"
)

type Recommendation struct {
	Code    RecommendationCode
	TaskID  string // empty for the default encouragement
	Message string
}

type RecommendRequest struct {
	UserID string
	Now    *time.Time
}
