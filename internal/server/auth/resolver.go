package auth

import (
	"context"

	"github.com/dmitrijs2005/taskjournal/internal/server/models"
)

// Resolver turns session evidence into a user id.
type Resolver struct {
	secretKey []byte
}

func NewResolver(secretKey []byte) *Resolver {
	return &Resolver{secretKey: secretKey}
}

// ResolveCurrentUser returns the user id carried by a valid access token, or
// models.Anonymous for missing, malformed, forged or expired tokens.
func (r *Resolver) ResolveCurrentUser(token string) int64 {
	if token == "" {
		return models.Anonymous
	}
	claims, err := ParseToken(token, r.secretKey)
	if err != nil {
		return models.Anonymous
	}
	return claims.UserID
}

type ctxKey struct{}

// WithUserID stores the resolved user id in ctx.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserIDFromContext returns the id stored by WithUserID, or models.Anonymous.
func UserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(ctxKey{}).(int64); ok {
		return id
	}
	return models.Anonymous
}
