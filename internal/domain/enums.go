package domain

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"pending": true, "in_progress": true, "done": true,
}

type SyllabusStatus string

const (
	SyllabusUploaded    SyllabusStatus = "uploaded"
	SyllabusProcessing  SyllabusStatus = "processing"
	SyllabusNeedsReview SyllabusStatus = "needs_review"
	SyllabusConfirmed   SyllabusStatus = "confirmed"
	SyllabusFailed      SyllabusStatus = "failed"
)

// syllabusTransitions holds the only legal status edges. confirmed is
// terminal; failed allows an explicit re-run back to processing.
var syllabusTransitions = map[SyllabusStatus][]SyllabusStatus{
	SyllabusUploaded:    {SyllabusProcessing},
	SyllabusProcessing:  {SyllabusNeedsReview, SyllabusFailed},
	SyllabusNeedsReview: {SyllabusConfirmed},
	SyllabusFailed:      {SyllabusProcessing},
}

// CanTransition reports whether moving from one syllabus status to another
// follows a legal edge. No transition skips a state.
func (s SyllabusStatus) CanTransition(to SyllabusStatus) bool {
	for _, next := range syllabusTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewAccepted ReviewStatus = "accepted"
	ReviewRejected ReviewStatus = "rejected"
	ReviewEdited   ReviewStatus = "edited"
)

// Materializes reports whether an extraction in this review status becomes
// a task at confirmation time.
func (r ReviewStatus) Materializes() bool {
	return r == ReviewAccepted || r == ReviewEdited
}

type ItemType string

const (
	ItemAssignment ItemType = "assignment"
	ItemExam       ItemType = "exam"
	ItemReading    ItemType = "reading"
	ItemOther      ItemType = "other"
)

// ValidItemTypes is the canonical set of accepted extraction item types.
var ValidItemTypes = map[string]bool{
	"assignment": true, "exam": true, "reading": true, "other": true,
}

type ScheduleSource string

const (
	SourceAuto   ScheduleSource = "auto"
	SourceManual ScheduleSource = "manual"
)

type RiskBand string

const (
	RiskLow      RiskBand = "low"
	RiskModerate RiskBand = "moderate"
	RiskHigh     RiskBand = "high"
)
