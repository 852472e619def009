package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables are created with raw DDL; queries against them go through the
// ent dialect builders.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS progress (
		scope TEXT NOT NULL,
		question_id TEXT NOT NULL,
		box INTEGER NOT NULL DEFAULT 1,
		correct_streak INTEGER NOT NULL DEFAULT 0,
		incorrect_count INTEGER NOT NULL DEFAULT 0,
		last_seen TEXT,
		due TEXT,
		PRIMARY KEY (scope, question_id)
	)`,
	`CREATE TABLE IF NOT EXISTS game_states (
		player TEXT PRIMARY KEY,
		points INTEGER NOT NULL DEFAULT 0,
		rank_name TEXT NOT NULL DEFAULT 'Unranked',
		answer_streak INTEGER NOT NULL DEFAULT 0,
		daily_streak INTEGER NOT NULL DEFAULT 0,
		last_active TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS points_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		player TEXT NOT NULL,
		ts TEXT NOT NULL,
		delta INTEGER NOT NULL,
		reason TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		player TEXT NOT NULL,
		pool_id TEXT NOT NULL,
		question_id TEXT NOT NULL,
		correct INTEGER NOT NULL,
		new_box INTEGER NOT NULL,
		ts TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		session_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		pool_id TEXT NOT NULL,
		pool_size INTEGER NOT NULL,
		chapters TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '',
		player TEXT NOT NULL,
		questions_served INTEGER NOT NULL,
		correct_answers INTEGER NOT NULL,
		duration_secs INTEGER NOT NULL,
		ts TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pools (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		path TEXT NOT NULL,
		orig_name TEXT NOT NULL DEFAULT '',
		question_count INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_session ON answer_events (session_id)`,
	`CREATE INDEX IF NOT EXISTS points_history_player ON points_history (player)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
