package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/db"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

const extractionColumns = `id, syllabus_id, item_type, title, due_date, confidence,
		source_page, source_line, review_status, created_at, updated_at`

// SQLiteExtractionRepo implements ExtractionRepo.
type SQLiteExtractionRepo struct {
	q db.DBTX
}

func NewSQLiteExtractionRepo(q db.DBTX) *SQLiteExtractionRepo {
	return &SQLiteExtractionRepo{q: q}
}

func (r *SQLiteExtractionRepo) Create(ctx context.Context, e *domain.Extraction) error {
	query := `INSERT INTO extractions (id, syllabus_id, item_type, title, due_date, confidence,
		source_page, source_line, review_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		e.ID,
		e.SyllabusID,
		string(e.ItemType),
		e.Title,
		nullableTimeToString(e.DueDate, time.RFC3339),
		e.Confidence,
		e.SourcePage,
		e.SourceLine,
		string(e.ReviewStatus),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting extraction: %w", err)
	}
	return nil
}

func (r *SQLiteExtractionRepo) GetByID(ctx context.Context, id string) (*domain.Extraction, error) {
	query := `SELECT ` + extractionColumns + ` FROM extractions WHERE id = ?`
	row := r.q.QueryRowContext(ctx, query, id)
	e, err := scanExtractionRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("extraction: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning extraction: %w", err)
	}
	return e, nil
}

func (r *SQLiteExtractionRepo) ListBySyllabus(ctx context.Context, syllabusID string) ([]*domain.Extraction, error) {
	query := `SELECT ` + extractionColumns + ` FROM extractions
		WHERE syllabus_id = ?
		ORDER BY source_page, due_date IS NULL, due_date, id`
	rows, err := r.q.QueryContext(ctx, query, syllabusID)
	if err != nil {
		return nil, fmt.Errorf("listing extractions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Extraction
	for rows.Next() {
		e, err := scanExtractionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning extraction row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating extractions: %w", err)
	}
	return out, nil
}

func (r *SQLiteExtractionRepo) Update(ctx context.Context, e *domain.Extraction) error {
	query := `UPDATE extractions SET item_type = ?, title = ?, due_date = ?,
		review_status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.q.ExecContext(ctx, query,
		string(e.ItemType),
		e.Title,
		nullableTimeToString(e.DueDate, time.RFC3339),
		string(e.ReviewStatus),
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating extraction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating extraction: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("extraction: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteExtractionRepo) DeleteBySyllabus(ctx context.Context, syllabusID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM extractions WHERE syllabus_id = ?`, syllabusID)
	if err != nil {
		return fmt.Errorf("deleting extractions: %w", err)
	}
	return nil
}

func scanExtractionRow(sc rowScanner) (*domain.Extraction, error) {
	var e domain.Extraction
	var itemTypeStr, reviewStr string
	var dueDateStr sql.NullString
	var createdAtStr, updatedAtStr string
	err := sc.Scan(&e.ID, &e.SyllabusID, &itemTypeStr, &e.Title, &dueDateStr, &e.Confidence,
		&e.SourcePage, &e.SourceLine, &reviewStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}
	e.ItemType = domain.ItemType(itemTypeStr)
	e.ReviewStatus = domain.ReviewStatus(reviewStr)
	e.DueDate = parseNullableTime(dueDateStr, time.RFC3339)
	var parseErr error
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	e.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &e, nil
}
