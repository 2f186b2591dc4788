package events

import (
	"context"
	"io"
	"log/slog"
	"time"
)

type Type string

const (
	TaskChanged         Type = "task_changed"
	SyllabusUploaded    Type = "syllabus_uploaded"
	ExtractionCompleted Type = "extraction_completed"
	ScheduleRecomputed  Type = "schedule_recomputed"
)

// Event is consumed by external workers and notification systems; the
// core only produces them. PlanVersion is set for schedule events.
type Event struct {
	Type        Type
	UserID      string
	EntityID    string
	PlanVersion int
	At          time.Time
}

type Sink interface {
	Publish(ctx context.Context, e Event)
}

// NoopSink discards all events.
type NoopSink struct{}

func (NoopSink) Publish(context.Context, Event) {}

type logSink struct {
	logger *slog.Logger
}

// NewLogSink writes events to the given writer as structured log lines.
func NewLogSink(w io.Writer) Sink {
	if w == nil {
		return NoopSink{}
	}
	return &logSink{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (s *logSink) Publish(ctx context.Context, e Event) {
	attrs := []any{
		"event", string(e.Type),
		"user_id", e.UserID,
		"entity_id", e.EntityID,
	}
	if e.Type == ScheduleRecomputed {
		attrs = append(attrs, "plan_version", e.PlanVersion)
	}
	s.logger.InfoContext(ctx, "domain_event", attrs...)
}
