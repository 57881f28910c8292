package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskjournal/internal/common"
	"github.com/dmitrijs2005/taskjournal/internal/dbx"
	"github.com/dmitrijs2005/taskjournal/internal/server/auth"
	"github.com/dmitrijs2005/taskjournal/internal/server/models"
	"github.com/dmitrijs2005/taskjournal/internal/server/repositories/repomanager"
)

// MaxAge bounds the profile age slot.
const MaxAge = 150

// Session is the result of a successful sign-in or refresh.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       int64
	Theme        models.Theme
}

// AccountService manages the account lifecycle: NonExistent -> Active -> Deleted.
type AccountService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	hasher                       auth.Hasher
	issuer                       TokenIssuer
	refreshTokenValidityDuration time.Duration

	// compared against when the email is unknown, so a miss costs the same
	// as a wrong password
	dummyHash string
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.Hasher, issuer TokenIssuer, refreshTokenValidity time.Duration) *AccountService {
	dummy, _ := hasher.Hash("taskjournal-dummy-password")
	return &AccountService{
		db:                           db,
		repomanager:                  m,
		hasher:                       hasher,
		issuer:                       issuer,
		refreshTokenValidityDuration: refreshTokenValidity,
		dummyHash:                    dummy,
	}
}

// Register creates a user with the default age and theme. It does not sign
// the caller in.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if email == "" {
		return nil, common.NewValidationError("email", "is required")
	}
	if password == "" {
		return nil, common.NewValidationError("password", "is required")
	}
	if name == "" {
		return nil, common.NewValidationError("name", "is required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, transient("register", err)
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			return common.ErrorDuplicateEmail
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		created, err = repo.Create(ctx, &models.User{
			Email:        email,
			PasswordHash: hash,
			Name:         name,
			Age:          models.DefaultAge,
			Theme:        models.ThemeDefault,
		})
		return err
	})
	if err != nil {
		return nil, classify("register", err)
	}
	return created, nil
}

// Authenticate verifies credentials and opens a session whose access token
// carries the user id and current theme.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.verifyCredential(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, transient("authenticate", err)
	}
	if user == nil {
		return nil, common.ErrorInvalidCredentials
	}
	session, err := s.openSession(ctx, s.db, user)
	if err != nil {
		return nil, transient("authenticate", err)
	}
	return session, nil
}

// verifyCredential returns the user on match and nil on a missing user or
// wrong password. The error is reserved for store failures.
func (s *AccountService) verifyCredential(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, nil
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Compare(password, s.dummyHash)
			return nil, nil
		}
		return nil, err
	}
	if !s.hasher.Compare(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}

// RefreshSession rotates a refresh token and mints a new access token with
// the user's current theme.
func (s *AccountService) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.repomanager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, transient("refresh session", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var session *Session
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return err
		}
		user, err := s.repomanager.Users(tx).GetByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return err
		}
		session, err = s.openSession(ctx, tx, user)
		return err
	})
	if err != nil {
		return nil, classify("refresh session", err)
	}
	return session, nil
}

// Logout revokes a refresh token. Unknown tokens are not an error.
func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repomanager.RefreshTokens(s.db).Delete(ctx, refreshToken); err != nil {
		return transient("logout", err)
	}
	return nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, classify("get profile", err)
	}
	return user, nil
}

func (s *AccountService) GetTheme(ctx context.Context, userID int64) (models.Theme, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Theme, nil
}

// UpdateProfile applies the present slots of changes. String slots are
// trimmed before validation.
func (s *AccountService) UpdateProfile(ctx context.Context, userID int64, changes models.ProfileChanges) error {
	if err := requireIdentity(userID); err != nil {
		return err
	}
	if changes.IsEmpty() {
		return common.ErrorNoChanges
	}

	changes, err := normalizeProfileChanges(changes)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if changes.Email != nil {
			other, err := repo.GetByEmail(ctx, *changes.Email)
			switch {
			case err == nil && other.ID != userID:
				return common.ErrorDuplicateEmail
			case err != nil && !errors.Is(err, common.ErrorNotFound):
				return err
			}
		}

		return repo.Update(ctx, userID, changes)
	})
	return classify("update profile", err)
}

func normalizeProfileChanges(c models.ProfileChanges) (models.ProfileChanges, error) {
	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		if name == "" {
			return c, common.NewValidationError("name", "must not be empty")
		}
		c.Name = &name
	}
	if c.Email != nil {
		email := strings.TrimSpace(*c.Email)
		if email == "" {
			return c, common.NewValidationError("email", "must not be empty")
		}
		c.Email = &email
	}
	if c.Age != nil && (*c.Age < 0 || *c.Age > MaxAge) {
		return c, common.NewValidationError("age", "must be between 0 and 150")
	}
	if c.Theme != nil && !c.Theme.Valid() {
		return c, common.NewValidationError("theme", "must be one of default, dark, pastel")
	}
	if c.HasAddedTask != nil && *c.HasAddedTask != 0 && *c.HasAddedTask != 1 {
		return c, common.NewValidationError("hasAddedTask", "must be 0 or 1")
	}
	return c, nil
}

func (s *AccountService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if err := requireIdentity(userID); err != nil {
		return err
	}
	if currentPassword == "" {
		return common.NewValidationError("currentPassword", "is required")
	}
	if newPassword == "" {
		return common.NewValidationError("newPassword", "is required")
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return classify("change password", err)
	}
	if !s.hasher.Compare(currentPassword, user.PasswordHash) {
		return common.ErrorIncorrectPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return transient("change password", err)
	}
	return classify("change password", repo.UpdatePasswordHash(ctx, userID, hash))
}

// ChangeTheme persists the theme and returns an access token whose theme
// claim matches it.
func (s *AccountService) ChangeTheme(ctx context.Context, userID int64, theme models.Theme) (string, error) {
	if err := requireIdentity(userID); err != nil {
		return "", err
	}
	if !theme.Valid() {
		return "", common.NewValidationError("theme", "must be one of default, dark, pastel")
	}

	if err := s.repomanager.Users(s.db).Update(ctx, userID, models.ProfileChanges{Theme: &theme}); err != nil {
		return "", classify("change theme", err)
	}

	token, err := s.issuer.Issue(userID, theme)
	if err != nil {
		return "", transient("change theme", err)
	}
	return token, nil
}

// DeleteAccount detaches the user's tasks, revokes their refresh tokens and
// deletes the user, all in one transaction.
func (s *AccountService) DeleteAccount(ctx context.Context, userID int64) error {
	if err := requireIdentity(userID); err != nil {
		return err
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Tasks(tx).DetachOwner(ctx, userID); err != nil {
			return err
		}
		if err := s.repomanager.RefreshTokens(tx).DeleteForUser(ctx, userID); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, userID)
	})
	return classify("delete account", err)
}

func (s *AccountService) openSession(ctx context.Context, db dbx.DBTX, user *models.User) (*Session, error) {
	access, err := s.issuer.Issue(user.ID, user.Theme)
	if err != nil {
		return nil, err
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, err
	}
	if err := s.repomanager.RefreshTokens(db).Create(ctx, user.ID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, err
	}
	return &Session{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       user.ID,
		Theme:        user.Theme,
	}, nil
}
