package events

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogSink_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(&buf)

	sink.Publish(context.Background(), Event{
		Type:     TaskChanged,
		UserID:   "user-1",
		EntityID: "task-1",
		At:       time.Now().UTC(),
	})

	line := buf.String()
	assert.Contains(t, line, "domain_event")
	assert.Contains(t, line, "event=task_changed")
	assert.Contains(t, line, "user_id=user-1")
	assert.Contains(t, line, "entity_id=task-1")
	assert.NotContains(t, line, "plan_version")
}

func TestLogSink_ScheduleEventCarriesVersion(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(&buf)

	sink.Publish(context.Background(), Event{
		Type:        ScheduleRecomputed,
		UserID:      "user-1",
		EntityID:    "plan-1",
		PlanVersion: 4,
	})

	assert.Contains(t, buf.String(), "plan_version=4")
}

func TestNewLogSink_NilWriterIsNoop(t *testing.T) {
	sink := NewLogSink(nil)
	assert.IsType(t, NoopSink{}, sink)
	sink.Publish(context.Background(), Event{Type: SyllabusUploaded})
}
