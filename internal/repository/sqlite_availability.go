package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/db"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

const availabilityColumns = `id, user_id, weekday, start_min, end_min, created_at, updated_at`

// SQLiteAvailabilityRepo implements AvailabilityRepo.
type SQLiteAvailabilityRepo struct {
	q db.DBTX
}

func NewSQLiteAvailabilityRepo(q db.DBTX) *SQLiteAvailabilityRepo {
	return &SQLiteAvailabilityRepo{q: q}
}

func (r *SQLiteAvailabilityRepo) Create(ctx context.Context, b *domain.AvailabilityBlock) error {
	query := `INSERT INTO availability_blocks (id, user_id, weekday, start_min, end_min, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		b.ID,
		b.UserID,
		b.Weekday,
		b.StartMin,
		b.EndMin,
		b.CreatedAt.Format(time.RFC3339),
		b.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting availability block: %w", err)
	}
	return nil
}

func (r *SQLiteAvailabilityRepo) GetByID(ctx context.Context, userID, id string) (*domain.AvailabilityBlock, error) {
	query := `SELECT ` + availabilityColumns + ` FROM availability_blocks WHERE id = ? AND user_id = ?`
	row := r.q.QueryRowContext(ctx, query, id, userID)
	b, err := scanBlockRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("availability block: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning availability block: %w", err)
	}
	return b, nil
}

func (r *SQLiteAvailabilityRepo) ListByUser(ctx context.Context, userID string) ([]*domain.AvailabilityBlock, error) {
	query := `SELECT ` + availabilityColumns + ` FROM availability_blocks
		WHERE user_id = ? ORDER BY weekday, start_min`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing availability blocks: %w", err)
	}
	defer rows.Close()

	var blocks []*domain.AvailabilityBlock
	for rows.Next() {
		b, err := scanBlockRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning availability row: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating availability blocks: %w", err)
	}
	return blocks, nil
}

func (r *SQLiteAvailabilityRepo) Update(ctx context.Context, b *domain.AvailabilityBlock) error {
	query := `UPDATE availability_blocks SET weekday = ?, start_min = ?, end_min = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`
	res, err := r.q.ExecContext(ctx, query,
		b.Weekday, b.StartMin, b.EndMin, b.UpdatedAt.Format(time.RFC3339), b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("updating availability block: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating availability block: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("availability block: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteAvailabilityRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM availability_blocks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting availability block: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting availability block: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("availability block: %w", ErrNotFound)
	}
	return nil
}

func scanBlockRow(sc rowScanner) (*domain.AvailabilityBlock, error) {
	var b domain.AvailabilityBlock
	var createdAtStr, updatedAtStr string
	err := sc.Scan(&b.ID, &b.UserID, &b.Weekday, &b.StartMin, &b.EndMin, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}
	var parseErr error
	b.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	b.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &b, nil
}
