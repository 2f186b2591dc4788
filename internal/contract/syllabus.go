package contract

import (
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

type UploadRequest struct {
	UserID   string
	Course   string
	Term     string
	FileName string
	Data     []byte
}

// ReviewRequest records one human decision for a single extraction.
// Edit fields are applied only when Action is edited; nil fields keep
// the extracted value.
type ReviewRequest struct {
	UserID       string
	SyllabusID   string
	ExtractionID string
	Action       domain.ReviewStatus
	Title        *string
	DueDate      *time.Time
	ItemType     *domain.ItemType
}

// ManualItemRequest pins one task to a concrete time range. The pinned
// item survives subsequent automatic recomputes of its week.
type ManualItemRequest struct {
	UserID  string
	TaskID  string
	StartAt time.Time
	EndAt   time.Time
	Now     *time.Time
}
