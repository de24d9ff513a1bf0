package services

import (
	"context"
	"testing"
	"time"

	"github.com/abhinay-x/note-maker/domain"
	"github.com/abhinay-x/note-maker/internal/clock"
	"github.com/abhinay-x/note-maker/internal/mocks"
)

// testNow is the frozen time every service test starts from
var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

// authDeps bundles the mocks behind an AuthServiceImpl under test
type authDeps struct {
	userRepo    *mocks.MockUserRepository
	sessionRepo *mocks.MockSessionRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	otpSvc      *mocks.MockOTPService
	sealer      *mocks.MockPendingSealer
	audit       *mocks.MockAuditLogger
	clock       *clock.FakeClock
}

func newAuthDeps() *authDeps {
	return &authDeps{
		userRepo:    mocks.NewMockUserRepository(),
		sessionRepo: mocks.NewMockSessionRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		otpSvc:      mocks.NewMockOTPService(),
		sealer:      mocks.NewMockPendingSealer(),
		audit:       mocks.NewMockAuditLogger(),
		clock:       clock.Fake(testNow),
	}
}

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T, d *authDeps) domain.AuthService {
	t.Helper()

	return NewAuthService(
		d.userRepo,
		d.sessionRepo,
		d.passwordSvc,
		d.tokenSvc,
		d.otpSvc,
		d.sealer,
		d.audit,
		d.clock,
		AuthConfig{RefreshTTL: 7 * 24 * time.Hour},
	)
}

// createValidUser creates a valid user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:            "user-1",
		Email:         "jo@example.com",
		PasswordHash:  "hashed_Abcdef1!",
		FirstName:     "Jo",
		LastName:      "Li",
		EmailVerified: true,
		CreatedAt:     testNow.Add(-24 * time.Hour),
		UpdatedAt:     testNow.Add(-24 * time.Hour),
	}
}

// userByEmail makes FindByEmail return user for its address and not-found
// for anything else.
func userByEmail(user *domain.User) func(ctx context.Context, email string) (*domain.User, error) {
	return func(ctx context.Context, email string) (*domain.User, error) {
		if user != nil && email == user.Email {
			copied := *user
			return &copied, nil
		}
		return nil, domain.ErrUserNotFound
	}
}
