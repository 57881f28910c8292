// Package refreshtokens stores the refresh tokens issued alongside access
// tokens at login.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskjournal/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores a new refresh token for userID with an expiry of now+validity.
	Create(ctx context.Context, userID int64, token string, validity time.Duration) error

	// Find returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a token; deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteForUser revokes every token of the user.
	DeleteForUser(ctx context.Context, userID int64) error
}
