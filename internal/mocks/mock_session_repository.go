package mocks

import (
	"context"
	"time"

	"github.com/abhinay-x/note-maker/domain"
)

// MockSessionRepository implements domain.SessionRepository interface for testing
type MockSessionRepository struct {
	CreateFunc                func(ctx context.Context, session *domain.RefreshSession) error
	FindActiveByTokenHashFunc func(ctx context.Context, tokenHash string, now time.Time) (*domain.RefreshSession, error)
	RotateFunc                func(ctx context.Context, sessionID, oldHash, newHash string, expiresAt time.Time) error
	RevokeAllForUserFunc      func(ctx context.Context, userID string) (int64, error)
	DeleteByTokenHashFunc     func(ctx context.Context, tokenHash string) error
	DeleteExpiredFunc         func(ctx context.Context, now time.Time) (int64, error)
}

// NewMockSessionRepository creates a new MockSessionRepository with default behaviors
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

// Create stores a session
func (m *MockSessionRepository) Create(ctx context.Context, session *domain.RefreshSession) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	// Default behavior: success
	return nil
}

// FindActiveByTokenHash looks up a usable session
func (m *MockSessionRepository) FindActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.RefreshSession, error) {
	if m.FindActiveByTokenHashFunc != nil {
		return m.FindActiveByTokenHashFunc(ctx, tokenHash, now)
	}
	// Default behavior: not found
	return nil, domain.ErrSessionNotFound
}

// Rotate swaps the token hash of a session
func (m *MockSessionRepository) Rotate(ctx context.Context, sessionID, oldHash, newHash string, expiresAt time.Time) error {
	if m.RotateFunc != nil {
		return m.RotateFunc(ctx, sessionID, oldHash, newHash, expiresAt)
	}
	return nil
}

// RevokeAllForUser revokes every session of a user
func (m *MockSessionRepository) RevokeAllForUser(ctx context.Context, userID string) (int64, error) {
	if m.RevokeAllForUserFunc != nil {
		return m.RevokeAllForUserFunc(ctx, userID)
	}
	return 0, nil
}

// DeleteByTokenHash removes a session
func (m *MockSessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	if m.DeleteByTokenHashFunc != nil {
		return m.DeleteByTokenHashFunc(ctx, tokenHash)
	}
	return nil
}

// DeleteExpired purges stale sessions
func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, now)
	}
	return 0, nil
}

// Compile-time interface compliance verification
var _ domain.SessionRepository = (*MockSessionRepository)(nil)
