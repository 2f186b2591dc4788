// Package extract turns page-indexed syllabus text into confidence-scored
// candidate deadlines. Everything here is pure: identical input always
// yields identical output, which keeps re-extraction idempotent.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

// typeKeywords maps candidate item types to their trigger keywords,
// checked in this order. Quiz/project/lab style keywords fold into the
// assignment/exam buckets of the task model.
var typeKeywords = []struct {
	Type     domain.ItemType
	Keywords []string
}{
	{domain.ItemExam, []string{"exam", "midterm", "final", "quiz", "test"}},
	{domain.ItemAssignment, []string{"assignment", "homework", "problem set", "pset", "project", "worksheet", "lab", "paper", "essay", "due"}},
	{domain.ItemReading, []string{"reading", "chapter", "pages"}},
}

// headingKeywords mark schedule-like section headings; a candidate found
// under one gains confidence.
var headingKeywords = []string{"schedule", "deadline", "due date", "assignments", "exams", "important dates", "calendar"}

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

type Page struct {
	Index int
	Text  string
}

// Candidate is one detected deadline item before review. KeywordDistance
// is the token distance between the nearest trigger keyword and the date
// token; -1 means no keyword matched.
type Candidate struct {
	Title           string
	ItemType        domain.ItemType
	DueDate         *time.Time
	DateText        string
	DateParsed      bool
	KeywordDistance int
	HeadingMatch    bool
	RepeatCount     int
	SourcePage      int
	SourceLine      string
}

// ScanPages walks every page line by line and returns the deduplicated
// candidates, in page-then-line order. ref anchors year-less dates.
func ScanPages(pages []Page, ref time.Time) []Candidate {
	var candidates []Candidate
	repeat := make(map[string]int)  // (title, date) -> occurrences across pages
	first := make(map[string]int)   // (title, date) -> index into candidates

	for _, page := range pages {
		underHeading := false
		for _, rawLine := range strings.Split(page.Text, "\n") {
			line := strings.Join(strings.Fields(rawLine), " ")
			if len(line) < 6 {
				continue
			}
			if isHeading(line) {
				underHeading = true
				continue
			}

			tokens := findDateTokens(line)
			if len(tokens) == 0 {
				continue
			}

			itemType, keyword := classifyLine(line)
			for _, tok := range tokens {
				c := Candidate{
					ItemType:        itemType,
					DateText:        tok.Text,
					KeywordDistance: keywordDistance(line, keyword, tok.Offset),
					HeadingMatch:    underHeading,
					SourcePage:      page.Index,
					SourceLine:      line,
				}
				if due, ok := ParseDate(tok.Text, ref); ok {
					c.DueDate = &due
					c.DateParsed = true
				}
				c.Title = buildTitle(line, tok.Text, itemType)

				key := dedupeKey(c)
				if idx, seen := first[key]; seen {
					repeat[key]++
					candidates[idx].RepeatCount = repeat[key]
					continue
				}
				repeat[key] = 1
				c.RepeatCount = 1
				first[key] = len(candidates)
				candidates = append(candidates, c)
			}
		}
	}
	return candidates
}

func dedupeKey(c Candidate) string {
	date := c.DateText
	if c.DueDate != nil {
		date = c.DueDate.Format("2006-01-02")
	}
	return strings.ToLower(c.Title) + "|" + date
}

func isHeading(line string) bool {
	if len(line) > 60 {
		return false
	}
	lowered := strings.ToLower(line)
	for _, kw := range headingKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// classifyLine returns the item type for a line plus the keyword that
// triggered it, or ItemOther with an empty keyword.
func classifyLine(line string) (domain.ItemType, string) {
	lowered := strings.ToLower(line)
	for _, entry := range typeKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(lowered, kw) {
				return entry.Type, kw
			}
		}
	}
	return domain.ItemOther, ""
}

// keywordDistance measures how many characters separate the trigger
// keyword from the date token. Closer keywords make stronger candidates.
func keywordDistance(line, keyword string, dateOffset int) int {
	if keyword == "" {
		return -1
	}
	idx := strings.Index(strings.ToLower(line), keyword)
	if idx < 0 {
		return -1
	}
	d := dateOffset - (idx + len(keyword))
	if d < 0 {
		d = idx - dateOffset
	}
	if d < 0 {
		d = 0
	}
	return d
}

// buildTitle strips the date token out of the line and normalizes the
// remainder, falling back to the item type when nothing is left.
func buildTitle(line, dateText string, itemType domain.ItemType) string {
	cleaned := strings.Replace(line, dateText, "", 1)
	cleaned = strings.Trim(cleaned, " -:|\t")
	cleaned = strings.TrimSpace(multiSpaceRe.ReplaceAllString(cleaned, " "))
	if cleaned != "" {
		return cleaned
	}
	return strings.ToUpper(string(itemType)[:1]) + string(itemType)[1:]
}
