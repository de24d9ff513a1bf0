package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhinay-x/note-maker/domain"
)

// unusablePrefix marks placeholder hashes for accounts created without a
// password. bcrypt rejects anything not starting with "$2", so Verify can
// never succeed against one.
const unusablePrefix = "oauth$"

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new password service. A cost outside
// bcrypt's range falls back to 12.
func NewPasswordService(cost int) domain.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 12
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (domain.PasswordHash, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return domain.PasswordHash(hashedBytes), nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hash domain.PasswordHash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Placeholder implements domain.PasswordService
func (p *PasswordServiceImpl) Placeholder() (domain.PasswordHash, error) {
	return UnusablePasswordHash()
}

// UnusablePasswordHash returns a random placeholder that no password matches.
func UnusablePasswordHash() (domain.PasswordHash, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate placeholder: %w", err)
	}
	return domain.PasswordHash(unusablePrefix + hex.EncodeToString(b)), nil
}
