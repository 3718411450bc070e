package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SetRemote records the remote used by sync and submit
func (t *Tx) SetRemote(ctx context.Context, remote string) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO repo_info (id, remote) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET remote = excluded.remote`, remote)
	if err != nil {
		return fmt.Errorf("failed to set remote: %w", err)
	}
	return nil
}

// GetRemote returns the configured remote, if any
func (t *Tx) GetRemote(ctx context.Context) (string, bool, error) {
	var remote sql.NullString
	err := t.tx.QueryRowContext(ctx, `SELECT remote FROM repo_info WHERE id = 1`).Scan(&remote)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read remote: %w", err)
	}
	if !remote.Valid || remote.String == "" {
		return "", false, nil
	}
	return remote.String, true, nil
}
