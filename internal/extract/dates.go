package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const monthPattern = `(?:jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|` +
	`sep|sept|september|oct|october|nov|november|dec|december)`

var dateRegexes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b` + monthPattern + `\.?\s+\d{1,2}(?:,\s*\d{4})?\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}(?:/\d{2,4})?\b`),
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
}

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

var monthDayRe = regexp.MustCompile(`(?i)^(` + monthPattern + `)\.?\s+(\d{1,2})(?:,\s*(\d{4}))?$`)
var slashRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?$`)
var isoRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// findDateTokens returns every date-looking token in a line, in order of
// appearance with the byte offset where each was found.
func findDateTokens(line string) []dateToken {
	var tokens []dateToken
	for _, re := range dateRegexes {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			tokens = append(tokens, dateToken{Text: line[loc[0]:loc[1]], Offset: loc[0]})
		}
	}
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].Offset < tokens[j].Offset
	})
	return tokens
}

type dateToken struct {
	Text   string
	Offset int
}

// ParseDate parses a detected date token deterministically. Tokens without
// a year resolve to the first occurrence on or after ref (future
// preference, matching re-extraction idempotency).
func ParseDate(text string, ref time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	ref = ref.UTC()

	if m := isoRe.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return buildDate(year, time.Month(month), day)
	}

	if m := monthDayRe.FindStringSubmatch(text); m != nil {
		month, ok := monthNames[strings.ToLower(m[1])]
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[2])
		if m[3] != "" {
			year, _ := strconv.Atoi(m[3])
			return buildDate(year, month, day)
		}
		return futureDate(month, day, ref)
	}

	if m := slashRe.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if m[3] != "" {
			year, _ := strconv.Atoi(m[3])
			if year < 100 {
				year += 2000
			}
			return buildDate(year, time.Month(month), day)
		}
		return futureDate(time.Month(month), day, ref)
	}

	return time.Time{}, false
}

func buildDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// Reject normalized overflows like Feb 30.
	if d.Day() != day || d.Month() != month {
		return time.Time{}, false
	}
	return d, true
}

func futureDate(month time.Month, day int, ref time.Time) (time.Time, bool) {
	d, ok := buildDate(ref.Year(), month, day)
	if !ok {
		return time.Time{}, false
	}
	today := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		return buildDate(ref.Year()+1, month, day)
	}
	return d, true
}
