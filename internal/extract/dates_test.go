package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ref = time.Date(2026, time.September, 15, 10, 0, 0, 0, time.UTC)

func TestParseDate_ISOFormat(t *testing.T) {
	d, ok := ParseDate("2026-10-03", ref)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.October, 3, 0, 0, 0, 0, time.UTC), d)
}

func TestParseDate_MonthNameWithYear(t *testing.T) {
	for _, text := range []string{"October 3, 2026", "Oct 3, 2026", "oct. 3, 2026"} {
		d, ok := ParseDate(text, ref)
		require.True(t, ok, text)
		assert.Equal(t, time.Date(2026, time.October, 3, 0, 0, 0, 0, time.UTC), d, text)
	}
}

// A month/day token with no year resolves to the first occurrence on or
// after the reference date, never into the past.
func TestParseDate_YearlessPrefersFuture(t *testing.T) {
	d, ok := ParseDate("Oct 3", ref)
	require.True(t, ok)
	assert.Equal(t, 2026, d.Year(), "date after ref stays in ref year")

	d, ok = ParseDate("Mar 3", ref)
	require.True(t, ok)
	assert.Equal(t, 2027, d.Year(), "date already past rolls to next year")

	// The reference day itself counts as "on or after".
	d, ok = ParseDate("Sep 15", ref)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC), d)
}

func TestParseDate_SlashFormats(t *testing.T) {
	d, ok := ParseDate("10/3/2026", ref)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.October, 3, 0, 0, 0, 0, time.UTC), d)

	d, ok = ParseDate("10/3/26", ref)
	require.True(t, ok)
	assert.Equal(t, 2026, d.Year(), "two-digit year expands to 20xx")

	d, ok = ParseDate("3/3", ref)
	require.True(t, ok)
	assert.Equal(t, time.Date(2027, time.March, 3, 0, 0, 0, 0, time.UTC), d)
}

func TestParseDate_RejectsInvalid(t *testing.T) {
	for _, text := range []string{"2026-02-30", "13/40", "Feb 30", "not a date", ""} {
		_, ok := ParseDate(text, ref)
		assert.False(t, ok, text)
	}
}

func TestParseDate_Deterministic(t *testing.T) {
	first, ok := ParseDate("Nov 20", ref)
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		again, ok := ParseDate("Nov 20", ref)
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestFindDateTokens_MultiplePerLine(t *testing.T) {
	tokens := findDateTokens("Midterm Oct 12 and Final Dec 14, 2026")
	require.Len(t, tokens, 2)
	assert.Equal(t, "Oct 12", tokens[0].Text)
	assert.Equal(t, "Dec 14, 2026", tokens[1].Text)
}

// Tokens matched by different regexes still come back in the order they
// appear in the line, not grouped by format.
func TestFindDateTokens_MixedFormatsKeepLineOrder(t *testing.T) {
	tokens := findDateTokens("Quiz 10/12 then paper due Dec 14 then exam 2026-12-18")
	require.Len(t, tokens, 3)
	assert.Equal(t, "10/12", tokens[0].Text)
	assert.Equal(t, "Dec 14", tokens[1].Text)
	assert.Equal(t, "2026-12-18", tokens[2].Text)
	assert.True(t, tokens[0].Offset < tokens[1].Offset)
	assert.True(t, tokens[1].Offset < tokens[2].Offset)
}
