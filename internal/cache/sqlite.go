// Package cache persists the last successful notification snapshot in a
// local SQLite database. It mirrors exactly what the service returned so
// a restarted console has something to show before the first fetch; it
// is never consulted for mutations.
package cache

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/th33k/resourcehub-console/internal/model"
)

// SQLiteCache stores notification snapshots in a local SQLite database.
type SQLiteCache struct {
	db *sqlx.DB
}

// notificationRow is the database representation of a cached notification.
type notificationRow struct {
	ID              string `db:"id"`
	Type            string `db:"notification_type"`
	Title           string `db:"title"`
	Message         string `db:"message"`
	Priority        string `db:"priority"`
	CreatedAt       string `db:"created_at"`
	IsRead          bool   `db:"is_read"`
	SenderUsername  string `db:"sender_username"`
	SenderAvatarURL string `db:"sender_avatar_url"`
	Position        int    `db:"position"`
}

// NewSQLiteCache opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	c := &SQLiteCache{db: db}
	if err := c.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the underlying database connection.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (c *SQLiteCache) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := c.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = c.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := c.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ReplaceSnapshot replaces the cached snapshot with the given records,
// preserving their order.
func (c *SQLiteCache) ReplaceSnapshot(
	ctx context.Context,
	records []model.Notification,
) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM notifications"); err != nil {
		return fmt.Errorf("clearing cached notifications: %w", err)
	}

	const insert = `
INSERT INTO notifications (
	id, notification_type, title, message, priority, created_at,
	is_read, sender_username, sender_avatar_url, position
) VALUES (
	:id, :notification_type, :title, :message, :priority, :created_at,
	:is_read, :sender_username, :sender_avatar_url, :position
)`

	for i, n := range records {
		row := notificationRow{
			ID:        n.ID,
			Type:      n.RawType,
			Title:     n.Title,
			Message:   n.Message,
			Priority:  n.Priority,
			CreatedAt: n.CreatedAt,
			IsRead:    n.IsRead,
			Position:  i,
		}
		if n.Sender != nil {
			row.SenderUsername = n.Sender.Username
			row.SenderAvatarURL = n.Sender.AvatarURL
		}

		if _, err := tx.NamedExecContext(ctx, insert, row); err != nil {
			return fmt.Errorf("caching notification %s: %w", n.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Snapshot returns the cached notifications in their original order.
func (c *SQLiteCache) Snapshot(ctx context.Context) ([]model.Notification, error) {
	var rows []notificationRow
	err := c.db.SelectContext(
		ctx,
		&rows,
		"SELECT * FROM notifications ORDER BY position ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("reading cached notifications: %w", err)
	}

	records := make([]model.Notification, len(rows))
	for i, row := range rows {
		n := model.Notification{
			ID:        row.ID,
			RawType:   row.Type,
			Title:     row.Title,
			Message:   row.Message,
			Priority:  row.Priority,
			CreatedAt: row.CreatedAt,
			IsRead:    row.IsRead,
		}
		if row.SenderUsername != "" || row.SenderAvatarURL != "" {
			n.Sender = &model.SenderProfile{
				Username:  row.SenderUsername,
				AvatarURL: row.SenderAvatarURL,
			}
		}
		records[i] = n
	}
	return records, nil
}
