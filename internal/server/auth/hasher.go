package auth

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// maxBcryptInput is the longest password bcrypt accepts.
const maxBcryptInput = 72

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(plain, hash string) bool
}

// BcryptHasher is a Hasher backed by bcrypt. Passwords longer than 72 bytes
// are reduced to a base64 SHA-256 digest first, so every length is
// accepted and compared in full.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Out-of-range costs
// fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func bcryptInput(plain string) []byte {
	if len(plain) <= maxBcryptInput {
		return []byte(plain)
	}
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(bcryptInput(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *BcryptHasher) Compare(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(plain)) == nil
}
