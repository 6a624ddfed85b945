package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS todos (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		completed    INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		completed_at TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_todos_created ON todos(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_completed ON todos(completed)`,
}
