package mocks

import (
	"context"
	"time"

	"github.com/abhinay-x/note-maker/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateWithHashFunc     func(ctx context.Context, user *domain.User) error
	FindByEmailFunc        func(ctx context.Context, email string) (*domain.User, error)
	TouchLastLoginFunc     func(ctx context.Context, userID string, at time.Time) error
	UpdatePasswordHashFunc func(ctx context.Context, userID string, hash domain.PasswordHash) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// CreateWithHash persists a new user
func (m *MockUserRepository) CreateWithHash(ctx context.Context, user *domain.User) error {
	if m.CreateWithHashFunc != nil {
		return m.CreateWithHashFunc(ctx, user)
	}
	// Default behavior: success with a fixed id
	if user.ID == "" {
		user.ID = "user-1"
	}
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// TouchLastLogin records the login time
func (m *MockUserRepository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	if m.TouchLastLoginFunc != nil {
		return m.TouchLastLoginFunc(ctx, userID, at)
	}
	return nil
}

// UpdatePasswordHash replaces a user's password hash
func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID string, hash domain.PasswordHash) error {
	if m.UpdatePasswordHashFunc != nil {
		return m.UpdatePasswordHashFunc(ctx, userID, hash)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
