package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/brodyboswell/study-planner-syllabus-beta/internal/db"
	"github.com/brodyboswell/study-planner-syllabus-beta/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo.
type SQLiteProfileRepo struct {
	q db.DBTX
}

func NewSQLiteProfileRepo(q db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{q: q}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context, userID string) (*domain.PlannerProfile, error) {
	query := `SELECT user_id, w1_urgency, w2_importance, w3_effort, importance_default,
		urgency_cap, auto_accept_threshold, slot_granularity_min, retry_limit, updated_at
		FROM planner_profiles WHERE user_id = ?`
	row := r.q.QueryRowContext(ctx, query, userID)

	var p domain.PlannerProfile
	var updatedAtStr string
	err := row.Scan(
		&p.UserID, &p.W1Urgency, &p.W2Importance, &p.W3Effort, &p.ImportanceDefault,
		&p.UrgencyCap, &p.AutoAcceptThreshold, &p.SlotGranularityMin, &p.RetryLimit, &updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("planner profile: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning planner profile: %w", err)
	}
	p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.PlannerProfile) error {
	query := `INSERT INTO planner_profiles (user_id, w1_urgency, w2_importance, w3_effort,
		importance_default, urgency_cap, auto_accept_threshold, slot_granularity_min, retry_limit, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			w1_urgency = excluded.w1_urgency,
			w2_importance = excluded.w2_importance,
			w3_effort = excluded.w3_effort,
			importance_default = excluded.importance_default,
			urgency_cap = excluded.urgency_cap,
			auto_accept_threshold = excluded.auto_accept_threshold,
			slot_granularity_min = excluded.slot_granularity_min,
			retry_limit = excluded.retry_limit,
			updated_at = excluded.updated_at`
	_, err := r.q.ExecContext(ctx, query,
		p.UserID,
		p.W1Urgency,
		p.W2Importance,
		p.W3Effort,
		p.ImportanceDefault,
		p.UrgencyCap,
		p.AutoAcceptThreshold,
		p.SlotGranularityMin,
		p.RetryLimit,
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting planner profile: %w", err)
	}
	return nil
}
