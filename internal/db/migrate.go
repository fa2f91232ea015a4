package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type migration struct {
	version    int
	statements []string
}

var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS profiles (
				user_id INTEGER PRIMARY KEY,
				name TEXT NOT NULL,
				due_date TEXT NOT NULL,
				is_first_pregnancy INTEGER NOT NULL DEFAULT 1,
				created_at TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS chat_messages (
				id TEXT PRIMARY KEY,
				user_id INTEGER NOT NULL,
				sender TEXT NOT NULL,
				text TEXT NOT NULL,
				created_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS chat_messages_user_idx ON chat_messages(user_id, created_at)`,
			`CREATE TABLE IF NOT EXISTS gobag_items (
				user_id INTEGER NOT NULL,
				item_id INTEGER NOT NULL,
				checked INTEGER NOT NULL DEFAULT 0,
				updated_at TEXT NOT NULL,
				PRIMARY KEY (user_id, item_id)
			)`,
		},
	},
	{
		version: 2,
		statements: []string{
			`ALTER TABLE gobag_items ADD COLUMN revision INTEGER NOT NULL DEFAULT 0`,
		},
	},
}

// Migrate applies pending schema migrations. It is safe to call repeatedly.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	current, err := db.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		m := m
		err := db.TransactionWithRetry(ctx, 0, 0, func(tx *sql.Tx) error {
			for _, stmt := range m.statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`,
				m.version, time.Now().UTC().Format(time.RFC3339),
			)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
		db.logger.Debug().Int("version", m.version).Msg("migration applied")
	}
	return nil
}

// SchemaVersion returns the highest applied migration, or 0.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var version sql.NullInt64
	if err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}
