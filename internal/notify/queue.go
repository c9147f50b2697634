// Package notify provides the local notification queue the scheduler
// registers reminders with, backed by SQLite.
package notify

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/greenloop/kerbside/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteQueue implements the scheduler's Notifier contract with a SQLite
// pending-reminder table. Registration is an upsert keyed by identifier, so
// registering the same occurrence twice never duplicates.
type SQLiteQueue struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteQueue opens (creating if necessary) the queue database.
func NewSQLiteQueue(dbPath string) (*SQLiteQueue, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("queue database path is required")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create queue directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open queue database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping queue database: %w", err)
	}

	q := &SQLiteQueue{db: db, dbPath: dbPath}
	if err := q.migrate(context.Background()); err != nil {
		return nil, err
	}
	return q, nil
}

func (q *SQLiteQueue) migrate(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS reminders (
		identifier      TEXT PRIMARY KEY,
		fire_at         TEXT NOT NULL,
		expires_at      TEXT NOT NULL,
		category        TEXT NOT NULL,
		collection_date TEXT NOT NULL,
		address         TEXT NOT NULL,
		body            TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reminders_expires_at ON reminders(expires_at);

	CREATE TABLE IF NOT EXISTS problem_reports (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL,
		description TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);`

	if _, err := q.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate queue schema: %w", err)
	}
	return nil
}

// Register stores or replaces a reminder entry.
func (q *SQLiteQueue) Register(ctx context.Context, entry model.ReminderEntry) error {
	if entry.Identifier == "" {
		return fmt.Errorf("reminder identifier is required")
	}
	if entry.FireAt.IsZero() || entry.ExpiresAt.IsZero() {
		return fmt.Errorf("reminder %s has no fire or expiry time", entry.Identifier)
	}

	_, err := q.db.ExecContext(ctx, `
		INSERT INTO reminders (identifier, fire_at, expires_at, category, collection_date, address, body)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(identifier) DO UPDATE SET
			fire_at = excluded.fire_at,
			expires_at = excluded.expires_at,
			category = excluded.category,
			collection_date = excluded.collection_date,
			address = excluded.address,
			body = excluded.body`,
		entry.Identifier,
		entry.FireAt.UTC().Format(time.RFC3339),
		entry.ExpiresAt.UTC().Format(time.RFC3339),
		string(entry.Category),
		entry.CollectionDate.UTC().Format("2006-01-02"),
		entry.Address,
		entry.Body,
	)
	if err != nil {
		return fmt.Errorf("failed to register reminder %s: %w", entry.Identifier, err)
	}
	return nil
}

// CancelPrefix removes every reminder whose identifier starts with the
// prefix.
func (q *SQLiteQueue) CancelPrefix(ctx context.Context, prefix string) error {
	if prefix == "" {
		return fmt.Errorf("cancel prefix is required")
	}

	_, err := q.db.ExecContext(ctx,
		`DELETE FROM reminders WHERE identifier LIKE ? ESCAPE '\'`,
		escapeLike(prefix)+"%")
	if err != nil {
		return fmt.Errorf("failed to cancel reminders with prefix %s: %w", prefix, err)
	}
	return nil
}

// Remove deletes the given identifiers; absent identifiers are ignored.
func (q *SQLiteQueue) Remove(ctx context.Context, identifiers []string) error {
	if len(identifiers) == 0 {
		return nil
	}

	tx, err := q.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin removal: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `DELETE FROM reminders WHERE identifier = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare removal: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, id := range identifiers {
		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return fmt.Errorf("failed to remove reminder %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit removal: %w", err)
	}
	return nil
}

// ListPending returns every queued reminder ordered by fire time.
func (q *SQLiteQueue) ListPending(ctx context.Context) ([]model.ReminderEntry, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT identifier, fire_at, expires_at, category, collection_date, address, body
		FROM reminders
		ORDER BY fire_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.ReminderEntry
	for rows.Next() {
		var entry model.ReminderEntry
		var fireAt, expiresAt, category, collectionDate string
		if err := rows.Scan(&entry.Identifier, &fireAt, &expiresAt, &category, &collectionDate, &entry.Address, &entry.Body); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}

		if entry.FireAt, err = time.Parse(time.RFC3339, fireAt); err != nil {
			return nil, fmt.Errorf("corrupt fire_at for %s: %w", entry.Identifier, err)
		}
		if entry.ExpiresAt, err = time.Parse(time.RFC3339, expiresAt); err != nil {
			return nil, fmt.Errorf("corrupt expires_at for %s: %w", entry.Identifier, err)
		}
		if entry.CollectionDate, err = time.Parse("2006-01-02", collectionDate); err != nil {
			return nil, fmt.Errorf("corrupt collection_date for %s: %w", entry.Identifier, err)
		}
		entry.Category = model.StreamCategory(category)

		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}

	return entries, nil
}

// Close closes the database connection.
func (q *SQLiteQueue) Close() error {
	return q.db.Close()
}

// escapeLike escapes LIKE wildcards so a prefix match stays literal.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
