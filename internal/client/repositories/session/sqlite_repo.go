package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/client/models"
	"github.com/dmitrijs2005/gophdrive/internal/dbx"
)

const (
	keyToken    = "token"
	keyUserID   = "user_id"
	keySignedIn = "signed_in"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (*models.Session, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM session`)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	if values[keyToken] == "" {
		return nil, nil
	}

	s := &models.Session{Token: values[keyToken], UserID: values[keyUserID]}
	if v := values[keySignedIn]; v != "" {
		if s.SignedIn, err = time.Parse(time.RFC3339, v); err != nil {
			return nil, fmt.Errorf("bad %s value %q: %w", keySignedIn, v, err)
		}
	}
	return s, nil
}

// Save replaces the cached session. db should be a transaction when the
// caller needs the three keys to land together.
func (r *SQLiteRepository) Save(ctx context.Context, s models.Session) error {
	values := [][2]string{
		{keyToken, s.Token},
		{keyUserID, s.UserID},
		{keySignedIn, s.SignedIn.UTC().Format(time.RFC3339)},
	}
	for _, kv := range values {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, kv[0], kv[1])
		if err != nil {
			return fmt.Errorf("failed to save session[%s]: %w", kv[0], err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
