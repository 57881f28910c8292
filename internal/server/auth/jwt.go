package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskjournal/internal/common"
	"github.com/dmitrijs2005/taskjournal/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the user id and the
// theme preference at the moment the token was minted.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64        `json:"uid"`
	Theme  models.Theme `json:"theme"`
}

func GenerateToken(userID int64, theme models.Theme, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
		Theme:  theme,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates signature and expiry and returns the claims.
// Expired tokens yield common.ErrTokenExpired, everything else
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID <= 0 {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// Issuer mints access tokens with a fixed secret and lifetime.
type Issuer struct {
	secretKey []byte
	validity  time.Duration
}

func NewIssuer(secretKey []byte, validity time.Duration) *Issuer {
	return &Issuer{secretKey: secretKey, validity: validity}
}

func (i *Issuer) Issue(userID int64, theme models.Theme) (string, error) {
	return GenerateToken(userID, theme, i.secretKey, i.validity)
}
