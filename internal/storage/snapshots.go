package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Snapshots is a key-value store of whole-state JSON blobs, one blob per
// logical store. Saves overwrite the previous blob in full.
type Snapshots struct {
	db *sql.DB
}

func NewSnapshots(db *sql.DB) *Snapshots {
	return &Snapshots{db: db}
}

// Load unmarshals the blob under key into v. It reports false when no
// snapshot exists, leaving v untouched.
func (s *Snapshots) Load(ctx context.Context, key string, v any) (bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE key = ?`, key)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("snapshot get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("snapshot decode %s: %w", key, err)
	}
	return true, nil
}

// Save marshals v and overwrites the blob under key.
func (s *Snapshots) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("snapshot encode %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, key, data)
	if err != nil {
		return fmt.Errorf("snapshot put %s: %w", key, err)
	}
	return nil
}

// Delete removes the blob under key, if any.
func (s *Snapshots) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("snapshot delete %s: %w", key, err)
	}
	return nil
}
