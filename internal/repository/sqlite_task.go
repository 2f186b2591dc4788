package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/db"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, user_id, title, course, description, task_type,
		due_date, estimated_min, importance, status, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo over a DBTX, so the same type works
// against the pool and inside a unit-of-work transaction.
type SQLiteTaskRepo struct {
	q db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(q db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{q: q}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, user_id, title, course, description, task_type,
		due_date, estimated_min, importance, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.Title,
		t.Course,
		t.Description,
		string(t.TaskType),
		nullableTimeToString(t.DueDate, time.RFC3339),
		nullableIntToValue(t.EstimatedMin),
		nullableIntToValue(t.Importance),
		string(t.Status),
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`
	row := r.q.QueryRowContext(ctx, query, id, userID)
	return scanTask(row)
}

func (r *SQLiteTaskRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?
		ORDER BY due_date IS NULL, due_date, id`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) ListEligible(ctx context.Context, userID string, weekStart time.Time) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ?
		  AND status != 'done'
		  AND (due_date IS NULL OR due_date >= ?)
		ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query, userID, weekStart.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing eligible tasks: %w", err)
	}
	defer rows.Close()
	return scanTasks(rows)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, course = ?, description = ?, task_type = ?,
		due_date = ?, estimated_min = ?, importance = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`
	res, err := r.q.ExecContext(ctx, query,
		t.Title,
		t.Course,
		t.Description,
		string(t.TaskType),
		nullableTimeToString(t.DueDate, time.RFC3339),
		nullableIntToValue(t.EstimatedMin),
		nullableIntToValue(t.Importance),
		string(t.Status),
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
		t.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task: %w", ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(sc rowScanner) (*domain.Task, error) {
	var t domain.Task
	var taskTypeStr, statusStr string
	var dueDateStr sql.NullString
	var estimatedMin, importance sql.NullInt64
	var createdAtStr, updatedAtStr string

	err := sc.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Course, &t.Description, &taskTypeStr,
		&dueDateStr, &estimatedMin, &importance, &statusStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	t.TaskType = domain.ItemType(taskTypeStr)
	t.Status = domain.TaskStatus(statusStr)
	t.DueDate = parseNullableTime(dueDateStr, time.RFC3339)
	t.EstimatedMin = parseNullableInt(estimatedMin)
	t.Importance = parseNullableInt(importance)

	var parseErr error
	t.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	t.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &t, nil
}

func scanTask(row *sql.Row) (*domain.Task, error) {
	t, err := scanTaskRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return t, nil
}

func scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}
