// Package sqlite provides a SQLite-backed simulation store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mgracey/rapport/internal/axis"
	sqlitemigrate "github.com/mgracey/rapport/internal/platform/storage/sqlitemigrate"
	"github.com/mgracey/rapport/internal/storage"
	"github.com/mgracey/rapport/internal/storage/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Store persists snapshots and the trigger journal in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite simulation store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveSnapshot upserts a named snapshot as a JSON payload.
func (s *Store) SaveSnapshot(ctx context.Context, name string, snapshot axis.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("snapshot name is required")
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO snapshots (name, payload, saved_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at`,
		name,
		string(payload),
		toMillis(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns a named snapshot, or storage.ErrNotFound.
func (s *Store) LoadSnapshot(ctx context.Context, name string) (axis.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return axis.Snapshot{}, err
	}
	if s == nil || s.sqlDB == nil {
		return axis.Snapshot{}, fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return axis.Snapshot{}, fmt.Errorf("snapshot name is required")
	}

	var payload string
	row := s.sqlDB.QueryRowContext(ctx, "SELECT payload FROM snapshots WHERE name = ?", name)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return axis.Snapshot{}, storage.ErrNotFound
		}
		return axis.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	var snapshot axis.Snapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return axis.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snapshot, nil
}

// AppendTrigger journals one accepted trigger emission.
func (s *Store) AppendTrigger(ctx context.Context, record storage.TriggerRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	name := strings.TrimSpace(record.Name)
	if name == "" {
		return fmt.Errorf("trigger name is required")
	}

	payload, err := json.Marshal(record.Payload)
	if err != nil {
		return fmt.Errorf("encode trigger payload: %w", err)
	}
	emittedAt := record.EmittedAt
	if emittedAt.IsZero() {
		emittedAt = time.Now()
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO trigger_journal (trigger_name, source, payload, emitted_at)
		 VALUES (?, ?, ?, ?)`,
		name,
		strings.TrimSpace(record.Source),
		string(payload),
		toMillis(emittedAt),
	)
	if err != nil {
		return fmt.Errorf("append trigger: %w", err)
	}
	return nil
}

// ListTriggers returns the most recent journal entries, newest first.
func (s *Store) ListTriggers(ctx context.Context, limit int) ([]storage.TriggerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, trigger_name, source, payload, emitted_at
		   FROM trigger_journal
		  ORDER BY id DESC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list triggers: %w", err)
	}
	defer rows.Close()

	var records []storage.TriggerRecord
	for rows.Next() {
		var record storage.TriggerRecord
		var payload string
		var emittedAt int64
		if err := rows.Scan(&record.ID, &record.Name, &record.Source, &payload, &emittedAt); err != nil {
			return nil, fmt.Errorf("list triggers: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &record.Payload); err != nil {
			return nil, fmt.Errorf("decode trigger payload: %w", err)
		}
		record.EmittedAt = fromMillis(emittedAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list triggers: %w", err)
	}
	return records, nil
}

var _ storage.Store = (*Store)(nil)
