package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE duplicates are tolerated because the whole slice re-runs on every
// startup.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		title         TEXT NOT NULL,
		course        TEXT NOT NULL DEFAULT '',
		description   TEXT NOT NULL DEFAULT '',
		task_type     TEXT NOT NULL DEFAULT 'other'
		              CHECK(task_type IN ('assignment','exam','reading','other')),
		due_date      TEXT,
		estimated_min INTEGER,
		importance    INTEGER CHECK(importance IS NULL OR importance BETWEEN 1 AND 5),
		status        TEXT NOT NULL DEFAULT 'pending'
		              CHECK(status IN ('pending','in_progress','done')),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id)`,

	`CREATE TABLE IF NOT EXISTS availability_blocks (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		weekday    INTEGER NOT NULL CHECK(weekday BETWEEN 0 AND 6),
		start_min  INTEGER NOT NULL CHECK(start_min >= 0),
		end_min    INTEGER NOT NULL CHECK(end_min <= 1440),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK(start_min < end_min)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_availability_user ON availability_blocks(user_id)`,

	`CREATE TABLE IF NOT EXISTS schedule_plans (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		week_start TEXT NOT NULL,
		version    INTEGER NOT NULL CHECK(version >= 1),
		created_at TEXT NOT NULL,
		UNIQUE(user_id, week_start, version)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plans_user_week ON schedule_plans(user_id, week_start)`,

	`CREATE TABLE IF NOT EXISTS schedule_items (
		id       TEXT PRIMARY KEY,
		plan_id  TEXT NOT NULL REFERENCES schedule_plans(id) ON DELETE CASCADE,
		task_id  TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		start_at TEXT NOT NULL,
		end_at   TEXT NOT NULL,
		source   TEXT NOT NULL DEFAULT 'auto' CHECK(source IN ('auto','manual'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_items_plan ON schedule_items(plan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_task ON schedule_items(task_id)`,

	`CREATE TABLE IF NOT EXISTS syllabi (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		course        TEXT NOT NULL DEFAULT '',
		term          TEXT NOT NULL DEFAULT '',
		file_name     TEXT NOT NULL DEFAULT '',
		status        TEXT NOT NULL DEFAULT 'uploaded'
		              CHECK(status IN ('uploaded','processing','needs_review','confirmed','failed')),
		error_message TEXT NOT NULL DEFAULT '',
		raw_text      TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_syllabi_user ON syllabi(user_id)`,

	`CREATE TABLE IF NOT EXISTS extractions (
		id            TEXT PRIMARY KEY,
		syllabus_id   TEXT NOT NULL REFERENCES syllabi(id) ON DELETE CASCADE,
		item_type     TEXT NOT NULL DEFAULT 'other'
		              CHECK(item_type IN ('assignment','exam','reading','other')),
		title         TEXT NOT NULL,
		due_date      TEXT,
		confidence    REAL NOT NULL CHECK(confidence BETWEEN 0 AND 1),
		source_page   INTEGER NOT NULL DEFAULT 0,
		source_line   TEXT NOT NULL DEFAULT '',
		review_status TEXT NOT NULL DEFAULT 'pending'
		              CHECK(review_status IN ('pending','accepted','rejected','edited')),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_extractions_syllabus ON extractions(syllabus_id)`,

	`CREATE TABLE IF NOT EXISTS task_outcomes (
		id            TEXT PRIMARY KEY,
		task_id       TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		completed_at  TEXT,
		on_time       INTEGER NOT NULL,
		minutes_spent INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_outcomes_task ON task_outcomes(task_id)`,

	`CREATE TABLE IF NOT EXISTS planner_profiles (
		user_id               TEXT PRIMARY KEY,
		w1_urgency            REAL NOT NULL,
		w2_importance         REAL NOT NULL,
		w3_effort             REAL NOT NULL,
		importance_default    REAL NOT NULL,
		urgency_cap           REAL NOT NULL,
		auto_accept_threshold REAL NOT NULL,
		slot_granularity_min  INTEGER NOT NULL,
		retry_limit           INTEGER NOT NULL,
		updated_at            TEXT NOT NULL
	)`,
}
