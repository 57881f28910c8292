// Package session persists the CLI's login state in a local SQLite table so
// a restarted client can resume with its refresh token.
package session

import "context"

// State is what the CLI remembers between runs. A zero State means
// "logged out".
type State struct {
	Email        string
	AccessToken  string
	RefreshToken string
	Theme        string
}

type Repository interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, s *State) error
	Clear(ctx context.Context) error
}
