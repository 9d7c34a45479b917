package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"

	"eventease/internal/domain"
)

const (
	pbkdf2Iterations = 10000
	pbkdf2KeyLength  = 32
)

type fixedSaltHasher struct {
	salt []byte
}

// NewFixedSaltHasher returns a PasswordHasher that derives a deterministic
// PBKDF2-SHA256 digest of password+salt. The salt is a single application
// secret shared by every user, not a per-user salt; identical passwords
// therefore produce identical digests. That property is relied on for
// credential comparison and must not be changed without migrating the
// stored users document.
func NewFixedSaltHasher(salt string) domain.PasswordHasher {
	return &fixedSaltHasher{salt: []byte(salt)}
}

func (h *fixedSaltHasher) Hash(password string) (string, error) {
	key := pbkdf2.Key([]byte(password), h.salt, pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
	return hex.EncodeToString(key), nil
}

func (h *fixedSaltHasher) Compare(hash, password string) bool {
	computed, err := h.Hash(password)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(hash), []byte(computed)) == 1
}
