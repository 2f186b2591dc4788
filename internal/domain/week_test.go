package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart_TruncatesToMonday(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"midweek",
			time.Date(2026, time.September, 16, 15, 30, 0, 0, time.UTC),
			time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			"monday stays put",
			time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday belongs to the preceding monday",
			time.Date(2026, time.September, 20, 23, 59, 0, 0, time.UTC),
			time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			"non-utc input normalizes first",
			time.Date(2026, time.September, 15, 1, 0, 0, 0, time.FixedZone("AEST", 10*3600)),
			time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeekStart(tc.in))
		})
	}
}

func TestWeekElapsed(t *testing.T) {
	week := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)

	assert.False(t, WeekElapsed(week, week.AddDate(0, 0, 3)))
	assert.False(t, WeekElapsed(week, week.AddDate(0, 0, 7).Add(-time.Second)))
	assert.True(t, WeekElapsed(week, week.AddDate(0, 0, 7)))
	assert.True(t, WeekElapsed(week, week.AddDate(0, 0, 30)))
}
