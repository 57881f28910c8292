package models

import "time"

// RefreshToken is a server-stored, single-use token that lets a client mint
// a new access token without re-entering credentials.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
