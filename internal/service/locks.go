package service

import (
	"sync"
	"time"
)

// weekLocks serializes recomputes per (user, week) inside this process.
// The unique (user_id, week_start, version) index is the cross-process
// backstop; this lock just keeps local callers from burning retries
// against each other.
type weekLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newWeekLocks() *weekLocks {
	return &weekLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire blocks until the (user, week) lock is held and returns the
// release function.
func (l *weekLocks) acquire(userID string, weekStart time.Time) func() {
	key := userID + "|" + weekStart.UTC().Format("2006-01-02")

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
