package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/db"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

const outcomeColumns = `id, task_id, completed_at, on_time, minutes_spent, created_at`

// SQLiteOutcomeRepo implements OutcomeRepo. Outcomes are insert-only:
// they are the label source for the risk model, and training-data
// integrity depends on rows never being edited after the fact.
type SQLiteOutcomeRepo struct {
	q db.DBTX
}

func NewSQLiteOutcomeRepo(q db.DBTX) *SQLiteOutcomeRepo {
	return &SQLiteOutcomeRepo{q: q}
}

func (r *SQLiteOutcomeRepo) Create(ctx context.Context, o *domain.TaskOutcome) error {
	query := `INSERT INTO task_outcomes (id, task_id, completed_at, on_time, minutes_spent, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		o.ID,
		o.TaskID,
		nullableTimeToString(o.CompletedAt, time.RFC3339),
		boolToInt(o.OnTime),
		o.MinutesSpent,
		o.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task outcome: %w", err)
	}
	return nil
}

func (r *SQLiteOutcomeRepo) ListByTask(ctx context.Context, taskID string) ([]domain.TaskOutcome, error) {
	query := `SELECT ` + outcomeColumns + ` FROM task_outcomes WHERE task_id = ? ORDER BY created_at`
	rows, err := r.q.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing outcomes by task: %w", err)
	}
	defer rows.Close()
	return scanOutcomes(rows)
}

func (r *SQLiteOutcomeRepo) ListByUser(ctx context.Context, userID string) ([]domain.TaskOutcome, error) {
	query := `SELECT o.id, o.task_id, o.completed_at, o.on_time, o.minutes_spent, o.created_at
		FROM task_outcomes o
		JOIN tasks t ON o.task_id = t.id
		WHERE t.user_id = ?
		ORDER BY o.created_at`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing outcomes by user: %w", err)
	}
	defer rows.Close()
	return scanOutcomes(rows)
}

func scanOutcomes(rows *sql.Rows) ([]domain.TaskOutcome, error) {
	var out []domain.TaskOutcome
	for rows.Next() {
		var o domain.TaskOutcome
		var completedStr sql.NullString
		var onTimeInt int
		var createdAtStr string
		if err := rows.Scan(&o.ID, &o.TaskID, &completedStr, &onTimeInt, &o.MinutesSpent, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning task outcome: %w", err)
		}
		o.CompletedAt = parseNullableTime(completedStr, time.RFC3339)
		o.OnTime = intToBool(onTimeInt)
		var parseErr error
		o.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing created_at: %w", parseErr)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task outcomes: %w", err)
	}
	return out, nil
}
