package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/db"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

const planColumns = `id, user_id, week_start, version, created_at`
const itemColumns = `id, plan_id, task_id, start_at, end_at, source`

// SQLitePlanRepo implements PlanRepo. Plans are append-only: a new
// version is a new row, never an in-place edit, and the UNIQUE
// (user_id, week_start, version) index is the cross-process backstop
// against two recomputes claiming the same next version.
type SQLitePlanRepo struct {
	q db.DBTX
}

func NewSQLitePlanRepo(q db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{q: q}
}

func (r *SQLitePlanRepo) CurrentVersion(ctx context.Context, userID string, weekStart time.Time) (int, error) {
	query := `SELECT COALESCE(MAX(version), 0) FROM schedule_plans
		WHERE user_id = ? AND week_start = ?`
	var v int
	err := r.q.QueryRowContext(ctx, query, userID, weekStart.UTC().Format(dateLayout)).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("reading current plan version: %w", err)
	}
	return v, nil
}

func (r *SQLitePlanRepo) GetCurrent(ctx context.Context, userID string, weekStart time.Time) (*domain.SchedulePlan, error) {
	query := `SELECT ` + planColumns + ` FROM schedule_plans
		WHERE user_id = ? AND week_start = ?
		ORDER BY version DESC LIMIT 1`
	row := r.q.QueryRowContext(ctx, query, userID, weekStart.UTC().Format(dateLayout))
	p, err := scanPlanRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("schedule plan: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule plan: %w", err)
	}
	return p, nil
}

func (r *SQLitePlanRepo) ListVersions(ctx context.Context, userID string, weekStart time.Time) ([]*domain.SchedulePlan, error) {
	query := `SELECT ` + planColumns + ` FROM schedule_plans
		WHERE user_id = ? AND week_start = ? ORDER BY version`
	rows, err := r.q.QueryContext(ctx, query, userID, weekStart.UTC().Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing plan versions: %w", err)
	}
	defer rows.Close()

	var plans []*domain.SchedulePlan
	for rows.Next() {
		p, err := scanPlanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning plan row: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan versions: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) ListPlannedWeeks(ctx context.Context, userID string, from time.Time) ([]time.Time, error) {
	query := `SELECT DISTINCT week_start FROM schedule_plans
		WHERE user_id = ? AND week_start >= ? ORDER BY week_start`
	rows, err := r.q.QueryContext(ctx, query, userID, from.UTC().Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("listing planned weeks: %w", err)
	}
	defer rows.Close()

	var weeks []time.Time
	for rows.Next() {
		var weekStr string
		if err := rows.Scan(&weekStr); err != nil {
			return nil, fmt.Errorf("scanning planned week: %w", err)
		}
		w, err := time.Parse(dateLayout, weekStr)
		if err != nil {
			return nil, fmt.Errorf("parsing week_start: %w", err)
		}
		weeks = append(weeks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating planned weeks: %w", err)
	}
	return weeks, nil
}

func (r *SQLitePlanRepo) CreatePlan(ctx context.Context, p *domain.SchedulePlan) error {
	query := `INSERT INTO schedule_plans (id, user_id, week_start, version, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.WeekStart.UTC().Format(dateLayout),
		p.Version,
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) InsertItems(ctx context.Context, items []domain.ScheduleItem) error {
	query := `INSERT INTO schedule_items (id, plan_id, task_id, start_at, end_at, source)
		VALUES (?, ?, ?, ?, ?, ?)`
	for _, it := range items {
		_, err := r.q.ExecContext(ctx, query,
			it.ID,
			it.PlanID,
			it.TaskID,
			it.StartAt.UTC().Format(time.RFC3339),
			it.EndAt.UTC().Format(time.RFC3339),
			string(it.Source),
		)
		if err != nil {
			return fmt.Errorf("inserting schedule item: %w", err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) ListItems(ctx context.Context, planID string) ([]domain.ScheduleItem, error) {
	query := `SELECT ` + itemColumns + ` FROM schedule_items WHERE plan_id = ? ORDER BY start_at, id`
	rows, err := r.q.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing schedule items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *SQLitePlanRepo) ListItemsByTask(ctx context.Context, taskID string) ([]domain.ScheduleItem, error) {
	query := `SELECT ` + aliasedItemColumns() + ` FROM schedule_items i
		JOIN schedule_plans p ON i.plan_id = p.id
		WHERE i.task_id = ?
		ORDER BY p.version DESC, i.start_at`
	rows, err := r.q.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing items by task: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func aliasedItemColumns() string {
	return `i.id, i.plan_id, i.task_id, i.start_at, i.end_at, i.source`
}

func scanPlanRow(sc rowScanner) (*domain.SchedulePlan, error) {
	var p domain.SchedulePlan
	var weekStartStr, createdAtStr string
	if err := sc.Scan(&p.ID, &p.UserID, &weekStartStr, &p.Version, &createdAtStr); err != nil {
		return nil, err
	}
	var parseErr error
	p.WeekStart, parseErr = time.Parse(dateLayout, weekStartStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing week_start: %w", parseErr)
	}
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return &p, nil
}

func scanItems(rows *sql.Rows) ([]domain.ScheduleItem, error) {
	var items []domain.ScheduleItem
	for rows.Next() {
		var it domain.ScheduleItem
		var startStr, endStr, sourceStr string
		if err := rows.Scan(&it.ID, &it.PlanID, &it.TaskID, &startStr, &endStr, &sourceStr); err != nil {
			return nil, fmt.Errorf("scanning schedule item: %w", err)
		}
		var parseErr error
		it.StartAt, parseErr = time.Parse(time.RFC3339, startStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing start_at: %w", parseErr)
		}
		it.EndAt, parseErr = time.Parse(time.RFC3339, endStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parsing end_at: %w", parseErr)
		}
		it.Source = domain.ScheduleSource(sourceStr)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedule items: %w", err)
	}
	return items, nil
}
