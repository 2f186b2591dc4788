package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/db"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

const syllabusColumns = `id, user_id, course, term, file_name, status,
		error_message, raw_text, created_at, updated_at`

// SQLiteSyllabusRepo implements SyllabusRepo.
type SQLiteSyllabusRepo struct {
	q db.DBTX
}

func NewSQLiteSyllabusRepo(q db.DBTX) *SQLiteSyllabusRepo {
	return &SQLiteSyllabusRepo{q: q}
}

func (r *SQLiteSyllabusRepo) Create(ctx context.Context, s *domain.Syllabus) error {
	query := `INSERT INTO syllabi (id, user_id, course, term, file_name, status,
		error_message, raw_text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.Course,
		s.Term,
		s.FileName,
		string(s.Status),
		s.ErrorMessage,
		s.RawText,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting syllabus: %w", err)
	}
	return nil
}

func (r *SQLiteSyllabusRepo) GetByID(ctx context.Context, userID, id string) (*domain.Syllabus, error) {
	query := `SELECT ` + syllabusColumns + ` FROM syllabi WHERE id = ? AND user_id = ?`
	row := r.q.QueryRowContext(ctx, query, id, userID)
	s, err := scanSyllabusRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("syllabus: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning syllabus: %w", err)
	}
	return s, nil
}

func (r *SQLiteSyllabusRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Syllabus, error) {
	query := `SELECT ` + syllabusColumns + ` FROM syllabi WHERE user_id = ? ORDER BY created_at DESC, id`
	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing syllabi: %w", err)
	}
	defer rows.Close()

	var out []*domain.Syllabus
	for rows.Next() {
		s, err := scanSyllabusRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning syllabus row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating syllabi: %w", err)
	}
	return out, nil
}

func (r *SQLiteSyllabusRepo) Update(ctx context.Context, s *domain.Syllabus) error {
	query := `UPDATE syllabi SET course = ?, term = ?, file_name = ?, status = ?,
		error_message = ?, raw_text = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`
	res, err := r.q.ExecContext(ctx, query,
		s.Course,
		s.Term,
		s.FileName,
		string(s.Status),
		s.ErrorMessage,
		s.RawText,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
		s.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating syllabus: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating syllabus: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("syllabus: %w", ErrNotFound)
	}
	return nil
}

func scanSyllabusRow(sc rowScanner) (*domain.Syllabus, error) {
	var s domain.Syllabus
	var statusStr, createdAtStr, updatedAtStr string
	err := sc.Scan(&s.ID, &s.UserID, &s.Course, &s.Term, &s.FileName, &statusStr,
		&s.ErrorMessage, &s.RawText, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, err
	}
	s.Status = domain.SyllabusStatus(statusStr)
	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &s, nil
}
