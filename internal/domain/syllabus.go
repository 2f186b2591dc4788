package domain

import "time"

type Syllabus struct {
	ID       string
	UserID   string
	Course   string
	Term     string
	FileName string
	Status   SyllabusStatus
	// ErrorMessage and RawText are retained on failure for diagnosis.
	ErrorMessage string
	RawText      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Extraction is a single candidate deadline detected from a syllabus,
// awaiting human review. SourceLine keeps the raw text for audit.
type Extraction struct {
	ID           string
	SyllabusID   string
	ItemType     ItemType
	Title        string
	DueDate      *time.Time // nil when the date could not be parsed
	Confidence   float64
	SourcePage   int
	SourceLine   string
	ReviewStatus ReviewStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
