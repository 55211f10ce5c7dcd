package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"promptdojo/internal/progress"

	_ "modernc.org/sqlite"
)

// ErrCorruptAggregate marks a payload that no longer decodes. Callers are
// expected to discard it and start the user fresh rather than surface it.
var ErrCorruptAggregate = errors.New("corrupt progress payload")

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS user_progress (
			user_id TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_ts TEXT NOT NULL DEFAULT (datetime('now'))
		);`,
		`CREATE TABLE IF NOT EXISTS app_settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Load returns the persisted aggregate for the user, nil when the user has
// never been saved, and ErrCorruptAggregate when the payload is present
// but unreadable.
func (s *SQLiteStore) Load(ctx context.Context, userID string) (*progress.UserProgress, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM user_progress WHERE user_id = ?`, userID)
	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	agg, err := progress.DecodeAggregate([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptAggregate, err)
	}
	return agg, nil
}

func (s *SQLiteStore) Save(ctx context.Context, userID string, p *progress.UserProgress) error {
	userID = strings.TrimSpace(userID)
	if userID == "" || p == nil {
		return nil
	}
	payload, err := progress.EncodeAggregate(p)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_progress(user_id, payload, updated_ts)
		VALUES(?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			payload = excluded.payload,
			updated_ts = excluded.updated_ts
	`, userID, string(payload), time.Now().UTC().Format(timeLayout))
	return err
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for key, value := range values {
		k := strings.TrimSpace(key)
		if k == "" {
			continue
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO app_settings(key, value) VALUES(?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, k, value); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) LoadSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM app_settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
