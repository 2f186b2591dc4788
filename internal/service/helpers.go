package service

import (
	"errors"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/contract"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/repository"
)

// nowOrDefault resolves an optional injected clock to a concrete UTC time.
func nowOrDefault(t *time.Time) time.Time {
	if t != nil {
		return t.UTC()
	}
	return time.Now().UTC()
}

// affectedWeeks returns the distinct week starts touched by a due-date
// change. A move between weeks yields both the old and the new week.
func affectedWeeks(dues ...*time.Time) []time.Time {
	var weeks []time.Time
	seen := make(map[time.Time]bool)
	for _, due := range dues {
		if due == nil {
			continue
		}
		w := domain.WeekStart(*due)
		if seen[w] {
			continue
		}
		seen[w] = true
		weeks = append(weeks, w)
	}
	return weeks
}

// notFoundAs converts a repository ErrNotFound into the typed contract
// error; any other error passes through unchanged.
func notFoundAs(err error, format string, args ...any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return contract.NewNotFoundError(format, args...)
	}
	return err
}
