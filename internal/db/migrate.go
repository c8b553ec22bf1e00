package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Statements are idempotent and re-run on every
// open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id                    TEXT PRIMARY KEY,
		event_name            TEXT NOT NULL DEFAULT '',
		seed                  INTEGER NOT NULL,
		fingerprint           TEXT NOT NULL,
		preferences_total     INTEGER NOT NULL DEFAULT 0,
		preferences_fulfilled INTEGER NOT NULL DEFAULT 0,
		created_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,

	`CREATE TABLE IF NOT EXISTS run_slots (
		run_id   TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		slot_idx INTEGER NOT NULL CHECK(slot_idx >= 0),
		start_at TEXT NOT NULL,
		end_at   TEXT NOT NULL,
		PRIMARY KEY (run_id, slot_idx)
	)`,

	`CREATE TABLE IF NOT EXISTS run_meetings (
		run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		meeting_id INTEGER NOT NULL,
		slot_idx   INTEGER NOT NULL,
		requester  TEXT NOT NULL,
		phase      TEXT NOT NULL
		           CHECK(phase IN ('pinned','coverage','emergency','preference','fill')),
		PRIMARY KEY (run_id, meeting_id),
		FOREIGN KEY (run_id, slot_idx) REFERENCES run_slots(run_id, slot_idx)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_run_meetings_slot ON run_meetings(run_id, slot_idx)`,

	`CREATE TABLE IF NOT EXISTS run_meeting_providers (
		run_id     TEXT NOT NULL,
		meeting_id INTEGER NOT NULL,
		position   INTEGER NOT NULL,
		provider   TEXT NOT NULL,
		PRIMARY KEY (run_id, meeting_id, position),
		FOREIGN KEY (run_id, meeting_id) REFERENCES run_meetings(run_id, meeting_id) ON DELETE CASCADE
	)`,

	`CREATE TABLE IF NOT EXISTS run_shortfalls (
		run_id         TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq            INTEGER NOT NULL,
		kind           TEXT NOT NULL
		               CHECK(kind IN ('UNSCHEDULED_PARTICIPANT','UNFULFILLED_PREFERENCE','REJECTED_PIN','UNKNOWN_PARTICIPANT')),
		role           TEXT NOT NULL DEFAULT '',
		participant_id TEXT NOT NULL DEFAULT '',
		requester_id   TEXT NOT NULL DEFAULT '',
		provider_id    TEXT NOT NULL DEFAULT '',
		slot_idx       INTEGER NOT NULL DEFAULT -1,
		reason         TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (run_id, seq)
	)`,

	`ALTER TABLE runs ADD COLUMN config_yaml TEXT NOT NULL DEFAULT ''`,
}
