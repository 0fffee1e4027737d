package store

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	tableQuestions = "questions"
	tableChoices   = "choices"
	tableKV        = "kv"
	tableMistakes  = "mistakes"
	tableSessions  = "sessions"
)

// Group modes stored in questions.mode.
const (
	modeExam  = "exam"
	modeDaily = "daily"
)

// schema is applied in order on every Open. Statements must be idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS questions (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		group_key   TEXT    NOT NULL,
		mode        TEXT    NOT NULL,
		level       TEXT    NOT NULL,
		year        INTEGER,
		month       TEXT,
		item_number INTEGER NOT NULL,
		section     TEXT    NOT NULL,
		stem        TEXT    NOT NULL,
		passage     TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_group ON questions (group_key, item_number)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_exam ON questions (mode, level, year, month, section)`,
	`CREATE TABLE IF NOT EXISTS choices (
		question_id INTEGER NOT NULL REFERENCES questions (id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		content     TEXT    NOT NULL,
		is_correct  INTEGER NOT NULL DEFAULT 0,
		explanation TEXT,
		PRIMARY KEY (question_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS kv (
		key        TEXT    PRIMARY KEY,
		value      TEXT    NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS mistakes (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence        INTEGER NOT NULL UNIQUE,
		session_id      TEXT    NOT NULL,
		group_key       TEXT    NOT NULL,
		item_number     INTEGER NOT NULL,
		picked_position INTEGER NOT NULL,
		created_at      INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mistakes_question ON mistakes (group_key, item_number)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id          TEXT    PRIMARY KEY,
		sequence    INTEGER NOT NULL UNIQUE,
		mode        TEXT    NOT NULL,
		filter      TEXT    NOT NULL,
		started_at  INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		total       INTEGER NOT NULL,
		answered    INTEGER NOT NULL,
		correct     INTEGER NOT NULL
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
