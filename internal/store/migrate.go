package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema lists the DDL applied on every Open. Statements must be idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS global_sequence (
		id       INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL,
		timestamp     INTEGER NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL DEFAULT '',
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       BOOLEAN NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_sequence ON llm_request_events (sequence)`,

	`CREATE TABLE IF NOT EXISTS practice_states (
		topic_id   TEXT    NOT NULL,
		text_id    TEXT    NOT NULL,
		data       BLOB    NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (topic_id, text_id)
	)`,

	`CREATE TABLE IF NOT EXISTS progress (
		topic_id     TEXT    NOT NULL,
		text_id      TEXT    NOT NULL,
		mode_key     TEXT    NOT NULL,
		completed_at INTEGER NOT NULL,
		PRIMARY KEY (topic_id, text_id, mode_key)
	)`,

	`CREATE TABLE IF NOT EXISTS vocabulary (
		id          TEXT    PRIMARY KEY,
		sequence    INTEGER NOT NULL,
		topic_id    TEXT    NOT NULL,
		text_id     TEXT    NOT NULL,
		term_key    TEXT    NOT NULL,
		source_term TEXT    NOT NULL,
		base_form   TEXT    NOT NULL DEFAULT '',
		target_term TEXT    NOT NULL,
		context     TEXT    NOT NULL DEFAULT '',
		created_at  INTEGER NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS vocabulary_term ON vocabulary (topic_id, text_id, term_key)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
