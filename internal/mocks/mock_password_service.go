package mocks

import (
	"github.com/abhinay-x/note-maker/domain"
)

// MockPasswordService implements domain.PasswordService interface for testing
type MockPasswordService struct {
	HashFunc        func(password string) (domain.PasswordHash, error)
	VerifyFunc      func(hash domain.PasswordHash, password string) bool
	PlaceholderFunc func() (domain.PasswordHash, error)
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a password
func (m *MockPasswordService) Hash(password string) (domain.PasswordHash, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	// Default behavior: prefix with "hashed_"
	return domain.PasswordHash("hashed_" + password), nil
}

// Verify checks a password against its hash
func (m *MockPasswordService) Verify(hash domain.PasswordHash, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hash, password)
	}
	// Default behavior: matches the Hash default
	return string(hash) == "hashed_"+password
}

// Placeholder returns an unusable hash
func (m *MockPasswordService) Placeholder() (domain.PasswordHash, error) {
	if m.PlaceholderFunc != nil {
		return m.PlaceholderFunc()
	}
	return "oauth$placeholder", nil
}

// Compile-time interface compliance verification
var _ domain.PasswordService = (*MockPasswordService)(nil)
