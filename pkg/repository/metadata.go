package repository

import (
	"context"
	"time"
)

// GetMetadata returns the value stored under key, domain.ErrNotFound if missing
func (r *Repository) GetMetadata(ctx context.Context, key string) (string, error) {
	var value string
	if err := r.db.GetContext(ctx, &value, "SELECT value FROM metadata WHERE key = ?", key); err != nil {
		return "", readErr("get metadata "+key, err)
	}
	return value, nil
}

// SetMetadata stores value under key, replacing the previous one
func (r *Repository) SetMetadata(ctx context.Context, key, value string) error {
	return withRetry(ctx, "set metadata "+key, func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, value, time.Now().UTC())
		return err
	})
}
