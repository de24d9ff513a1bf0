package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/abhinay-x/note-maker/domain"
)

// PendingSealerImpl implements domain.PendingSealer with XChaCha20-Poly1305.
// The email is bound as additional data, so a ticket only opens for the
// address it was sealed for.
type PendingSealerImpl struct {
	key []byte
}

// NewPendingSealer derives a 256-bit key from secret.
func NewPendingSealer(secret string) domain.PendingSealer {
	sum := sha256.Sum256([]byte(secret))
	return &PendingSealerImpl{key: sum[:]}
}

// Seal implements domain.PendingSealer
func (s *PendingSealerImpl) Seal(pending domain.PendingRegistration) (string, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}

	plaintext, err := json.Marshal(pending)
	if err != nil {
		return "", fmt.Errorf("failed to marshal pending registration: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, plaintext, []byte(pending.Email))
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open implements domain.PendingSealer
func (s *PendingSealerImpl) Open(ticket, email string, now time.Time) (*domain.PendingRegistration, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to init cipher: %w", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(ticket)
	if err != nil || len(raw) < aead.NonceSize()+aead.Overhead() {
		return nil, domain.ErrInvalidPending
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, []byte(email))
	if err != nil {
		return nil, domain.ErrInvalidPending
	}

	var pending domain.PendingRegistration
	if err := json.Unmarshal(plaintext, &pending); err != nil {
		return nil, domain.ErrInvalidPending
	}
	if pending.Email != email {
		return nil, domain.ErrInvalidPending
	}
	if !now.Before(pending.ExpiresAt) {
		return nil, domain.ErrPendingExpired
	}
	return &pending, nil
}
