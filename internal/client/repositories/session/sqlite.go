package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskjournal/internal/dbx"
)

const (
	keyEmail        = "email"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyTheme        = "theme"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Load returns the stored state; absent keys stay empty.
func (r *SQLiteRepository) Load(ctx context.Context) (*State, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM session`)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	s := &State{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		switch key {
		case keyEmail:
			s.Email = value
		case keyAccessToken:
			s.AccessToken = value
		case keyRefreshToken:
			s.RefreshToken = value
		case keyTheme:
			s.Theme = value
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	return s, nil
}

// Save upserts every field of s. Callers that need atomicity wrap it in
// dbx.WithTx.
func (r *SQLiteRepository) Save(ctx context.Context, s *State) error {
	values := map[string]string{
		keyEmail:        s.Email,
		keyAccessToken:  s.AccessToken,
		keyRefreshToken: s.RefreshToken,
		keyTheme:        s.Theme,
	}
	for key, value := range values {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO session (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		if err != nil {
			return fmt.Errorf("failed to set session[%s]: %w", key, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session`)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
