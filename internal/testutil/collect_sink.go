package testutil

import (
	"context"
	"sync"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/events"
)

// CollectingSink records every published event for assertions.
type CollectingSink struct {
	mu     sync.Mutex
	events []events.Event
}

func (s *CollectingSink) Publish(_ context.Context, e events.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

// Events returns a copy of everything published so far.
func (s *CollectingSink) Events() []events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]events.Event, len(s.events))
	copy(out, s.events)
	return out
}

// OfType filters recorded events by type.
func (s *CollectingSink) OfType(t events.Type) []events.Event {
	var out []events.Event
	for _, e := range s.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
