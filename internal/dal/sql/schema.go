package sql

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS words (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL UNIQUE,
		translation TEXT NOT NULL,
		pronunciation TEXT,
		part_of_speech TEXT,
		definition TEXT,
		example TEXT,
		example_translation TEXT,
		difficulty TEXT NOT NULL DEFAULT 'beginner',
		category TEXT NOT NULL DEFAULT '',
		frequency_rank INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		word_id INTEGER PRIMARY KEY,
		attempts INTEGER NOT NULL DEFAULT 0,
		correct_answers INTEGER NOT NULL DEFAULT 0,
		mastery_level INTEGER NOT NULL DEFAULT 0,
		first_seen TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_seen TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (word_id) REFERENCES words(id)
	)`,
	`CREATE TABLE IF NOT EXISTS learning_sessions (
		id TEXT PRIMARY KEY,
		session_type TEXT NOT NULL,
		started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		ended_at TIMESTAMP,
		words_studied INTEGER NOT NULL DEFAULT 0,
		correct_answers INTEGER NOT NULL DEFAULT 0,
		total_questions INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS quiz_answers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		word_id INTEGER NOT NULL,
		is_correct BOOLEAN NOT NULL,
		time_taken_seconds INTEGER NOT NULL DEFAULT 0,
		answered_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES learning_sessions(id),
		FOREIGN KEY (word_id) REFERENCES words(id)
	)`,
	`CREATE TABLE IF NOT EXISTS user_stats (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		words_learned INTEGER NOT NULL DEFAULT 0,
		total_points INTEGER NOT NULL DEFAULT 0,
		streak_days INTEGER NOT NULL DEFAULT 0,
		total_sessions INTEGER NOT NULL DEFAULT 0,
		last_activity_date TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS user_badges (
		badge TEXT PRIMARY KEY,
		awarded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_words_difficulty ON words(difficulty)`,
	`CREATE INDEX IF NOT EXISTS idx_quiz_answers_session ON quiz_answers(session_id)`,
}

// InitSchema creates the store tables if they do not exist yet.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
