package mocks

import (
	"context"
	"time"

	"github.com/abhinay-x/note-maker/domain"
)

// MockOTPService implements domain.OTPService interface for testing
type MockOTPService struct {
	IssueFunc   func(ctx context.Context, email string, purpose domain.OTPPurpose, now time.Time) (*domain.OneTimeCode, error)
	ConsumeFunc func(ctx context.Context, email, code string, purpose domain.OTPPurpose, now time.Time) (*domain.OneTimeCode, error)
	InspectFunc func(ctx context.Context, email, code string, purpose domain.OTPPurpose, now time.Time) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue creates and sends a code
func (m *MockOTPService) Issue(ctx context.Context, email string, purpose domain.OTPPurpose, now time.Time) (*domain.OneTimeCode, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email, purpose, now)
	}
	// Default behavior: fixed code valid for 10 minutes
	return &domain.OneTimeCode{
		ID:        "otp-1",
		Email:     email,
		Code:      "123456",
		Purpose:   purpose,
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	}, nil
}

// Consume claims a code
func (m *MockOTPService) Consume(ctx context.Context, email, code string, purpose domain.OTPPurpose, now time.Time) (*domain.OneTimeCode, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, email, code, purpose, now)
	}
	// Default behavior: "123456" is accepted
	if code != "123456" {
		return nil, domain.ErrOTPInvalid
	}
	return &domain.OneTimeCode{ID: "otp-1", Email: email, Code: code, Purpose: purpose, Used: true}, nil
}

// Inspect reports why a code would be rejected
func (m *MockOTPService) Inspect(ctx context.Context, email, code string, purpose domain.OTPPurpose, now time.Time) error {
	if m.InspectFunc != nil {
		return m.InspectFunc(ctx, email, code, purpose, now)
	}
	// Default behavior: "123456" is usable
	if code != "123456" {
		return domain.ErrOTPInvalid
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
