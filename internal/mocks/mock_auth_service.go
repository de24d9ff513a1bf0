package mocks

import (
	"context"
	"time"

	"github.com/abhinay-x/note-maker/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RequestSignupFunc   func(ctx context.Context, input domain.SignupInput) (*domain.SignupResult, error)
	VerifySignupOTPFunc func(ctx context.Context, email, code, ticket string) (*domain.AuthResult, error)
	LoginFunc           func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshFunc         func(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	LogoutFunc          func(ctx context.Context, refreshToken string) error
	ForgotPasswordFunc  func(ctx context.Context, email string) (string, error)
	ResetPasswordFunc   func(ctx context.Context, email, code, newPassword string) error
	IssueSessionFunc    func(ctx context.Context, user *domain.User, now time.Time) (*domain.TokenPair, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func mockUser(email string) *domain.User {
	return &domain.User{
		ID:            "user-1",
		Email:         email,
		FirstName:     "Test",
		LastName:      "User",
		EmailVerified: true,
	}
}

// RequestSignup starts an email signup
func (m *MockAuthService) RequestSignup(ctx context.Context, input domain.SignupInput) (*domain.SignupResult, error) {
	if m.RequestSignupFunc != nil {
		return m.RequestSignupFunc(ctx, input)
	}
	return &domain.SignupResult{
		Email:     input.Email,
		Ticket:    "mock_ticket",
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}, nil
}

// VerifySignupOTP completes an email signup
func (m *MockAuthService) VerifySignupOTP(ctx context.Context, email, code, ticket string) (*domain.AuthResult, error) {
	if m.VerifySignupOTPFunc != nil {
		return m.VerifySignupOTPFunc(ctx, email, code, ticket)
	}
	return &domain.AuthResult{
		User:   mockUser(email),
		Tokens: domain.TokenPair{AccessToken: "mock_access_token", RefreshToken: "mock_refresh_token"},
	}, nil
}

// Login authenticates with email and password
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.AuthResult{
		User:   mockUser(email),
		Tokens: domain.TokenPair{AccessToken: "mock_access_token", RefreshToken: "mock_refresh_token"},
	}, nil
}

// Refresh rotates a refresh token
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return &domain.TokenPair{AccessToken: "new_access_token", RefreshToken: "new_refresh_token"}, nil
}

// Logout ends a session
func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

// ForgotPassword starts a password reset
func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return "If an account exists for this email, an OTP has been sent", nil
}

// ResetPassword completes a password reset
func (m *MockAuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email, code, newPassword)
	}
	return nil
}

// IssueSession mints tokens for an authenticated user
func (m *MockAuthService) IssueSession(ctx context.Context, user *domain.User, now time.Time) (*domain.TokenPair, error) {
	if m.IssueSessionFunc != nil {
		return m.IssueSessionFunc(ctx, user, now)
	}
	return &domain.TokenPair{AccessToken: "mock_access_token", RefreshToken: "mock_refresh_token"}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
