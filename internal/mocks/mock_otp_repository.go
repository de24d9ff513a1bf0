package mocks

import (
	"context"
	"time"

	"github.com/abhinay-x/note-maker/domain"
)

// MockOTPRepository implements domain.OTPRepository interface for testing
type MockOTPRepository struct {
	CreateFunc           func(ctx context.Context, code *domain.OneTimeCode) error
	FindLatestActiveFunc func(ctx context.Context, email, code string, purpose domain.OTPPurpose, now time.Time) (*domain.OneTimeCode, error)
	FindLatestFunc       func(ctx context.Context, email, code string, purpose domain.OTPPurpose) (*domain.OneTimeCode, error)
	MarkUsedFunc         func(ctx context.Context, id string) error
	DeleteExpiredFunc    func(ctx context.Context, now time.Time) (int64, error)
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

func (m *MockOTPRepository) Create(ctx context.Context, code *domain.OneTimeCode) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, code)
	}
	if code.ID == "" {
		code.ID = "otp-1"
	}
	return nil
}

func (m *MockOTPRepository) FindLatestActive(ctx context.Context, email, code string, purpose domain.OTPPurpose, now time.Time) (*domain.OneTimeCode, error) {
	if m.FindLatestActiveFunc != nil {
		return m.FindLatestActiveFunc(ctx, email, code, purpose, now)
	}
	return nil, domain.ErrOTPNotFound
}

func (m *MockOTPRepository) FindLatest(ctx context.Context, email, code string, purpose domain.OTPPurpose) (*domain.OneTimeCode, error) {
	if m.FindLatestFunc != nil {
		return m.FindLatestFunc(ctx, email, code, purpose)
	}
	return nil, domain.ErrOTPNotFound
}

func (m *MockOTPRepository) MarkUsed(ctx context.Context, id string) error {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, id)
	}
	return nil
}

func (m *MockOTPRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, now)
	}
	return 0, nil
}

var _ domain.OTPRepository = (*MockOTPRepository)(nil)
