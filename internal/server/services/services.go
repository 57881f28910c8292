// Package services contains server-side business logic: AccountService
// (registration, sessions, profile, deletion) and TaskService (task
// lifecycle and owner-scoped views).
package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskjournal/internal/common"
	"github.com/dmitrijs2005/taskjournal/internal/server/models"
)

// TokenIssuer mints access tokens carrying the user id and theme claims.
type TokenIssuer interface {
	Issue(userID int64, theme models.Theme) (string, error)
}

// outcomes are returned to callers unchanged; anything else is a store or
// hashing failure and is wrapped as transient.
var outcomes = []error{
	common.ErrorUnauthorized,
	common.ErrorInvalidInput,
	common.ErrorDuplicateEmail,
	common.ErrorIncorrectPassword,
	common.ErrorInvalidCredentials,
	common.ErrorNotFound,
	common.ErrorNoChanges,
	common.ErrRefreshTokenExpired,
}

func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, o := range outcomes {
		if errors.Is(err, o) {
			return err
		}
	}
	return transient(op, err)
}

func transient(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, common.ErrorTransient, err)
}

func requireIdentity(userID int64) error {
	if userID == models.Anonymous {
		return common.ErrorUnauthorized
	}
	return nil
}
