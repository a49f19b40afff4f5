package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the bcrypt input limit. Longer passwords are never
// hashed and never verify.
const MaxPasswordBytes = 72

// PasswordHasher hashes and verifies passwords with bcrypt. The salt is
// generated per call and embedded in the encoded hash together with the cost.
type PasswordHasher struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewPasswordHasher returns a hasher using cost; out-of-range values fall
// back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the encoded bcrypt hash of plaintext. Passwords longer than
// MaxPasswordBytes are rejected with common.ErrorValidation.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: password is longer than %d bytes", common.ErrorValidation, MaxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password is longer than %d bytes", common.ErrorValidation, MaxPasswordBytes)
		}
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is a mismatch.
// bcrypt ignores input past 72 bytes, so longer plaintexts are rejected outright.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	if len(plaintext) > MaxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// VerifyMissing spends the same bcrypt work as Verify against a throwaway
// hash and always reports false. Callers use it when the account does not
// exist so the response time does not reveal that.
func (h *PasswordHasher) VerifyMissing(plaintext string) bool {
	h.dummyOnce.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("missing-account"), h.cost)
	})
	if len(plaintext) > MaxPasswordBytes {
		plaintext = plaintext[:MaxPasswordBytes]
	}
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plaintext))
	return false
}
