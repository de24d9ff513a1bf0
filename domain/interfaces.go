package domain

import (
	"context"
	"time"
)

// UserRepository defines credential store operations
type UserRepository interface {
	// CreateWithHash persists a user whose PasswordHash is already set.
	// Returns ErrDuplicateEmail when the email is taken.
	CreateWithHash(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
	UpdatePasswordHash(ctx context.Context, userID string, hash PasswordHash) error
}

// OTPRepository defines OTP ledger operations
type OTPRepository interface {
	Create(ctx context.Context, code *OneTimeCode) error
	// FindLatestActive returns the newest unused, unexpired code matching
	// (email, code, purpose) at now, or ErrOTPNotFound.
	FindLatestActive(ctx context.Context, email, code string, purpose OTPPurpose, now time.Time) (*OneTimeCode, error)
	// FindLatest ignores used/expiry state; used to explain a failed match.
	FindLatest(ctx context.Context, email, code string, purpose OTPPurpose) (*OneTimeCode, error)
	// MarkUsed flips used only if the row is still unused. Losing that race
	// returns ErrOTPAlreadyUsed.
	MarkUsed(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionRepository defines session ledger operations
type SessionRepository interface {
	Create(ctx context.Context, session *RefreshSession) error
	FindActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*RefreshSession, error)
	// Rotate replaces the token hash in place, conditioned on oldHash still
	// being current and the session unrevoked.
	Rotate(ctx context.Context, sessionID, oldHash, newHash string, expiresAt time.Time) error
	RevokeAllForUser(ctx context.Context, userID string) (int64, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// NoteRepository defines note storage operations. Every lookup is scoped to
// the owning user.
type NoteRepository interface {
	Create(ctx context.Context, note *Note) error
	FindByID(ctx context.Context, userID, noteID string) (*Note, error)
	List(ctx context.Context, userID string, query NoteQuery) ([]*Note, int64, error)
	Update(ctx context.Context, note *Note) error
	Delete(ctx context.Context, userID, noteID string) error
}

// AuthService defines the authentication orchestrator
type AuthService interface {
	RequestSignup(ctx context.Context, input SignupInput) (*SignupResult, error)
	VerifySignupOTP(ctx context.Context, email, code, ticket string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	// IssueSession mints tokens for an already-authenticated user and
	// records the refresh session. Shared by login, signup and OAuth.
	IssueSession(ctx context.Context, user *User, now time.Time) (*TokenPair, error)
}

// OTPService defines OTP issuance and consumption
type OTPService interface {
	Issue(ctx context.Context, email string, purpose OTPPurpose, now time.Time) (*OneTimeCode, error)
	// Consume claims a matching code. On a miss it reports the most specific
	// reason: ErrOTPAlreadyUsed, ErrOTPExpired or ErrOTPInvalid.
	Consume(ctx context.Context, email, code string, purpose OTPPurpose, now time.Time) (*OneTimeCode, error)
	// Inspect reports what Consume would fail with, without claiming the
	// code. It returns nil for a usable code.
	Inspect(ctx context.Context, email, code string, purpose OTPPurpose, now time.Time) error
}

// OAuthService defines the third-party login bridge
type OAuthService interface {
	StartAuthorization(state string) string
	HandleCallback(ctx context.Context, code string) (string, error)
}

// NoteService defines notes business logic
type NoteService interface {
	List(ctx context.Context, userID string, query NoteQuery) (*NotePage, error)
	Get(ctx context.Context, userID, noteID string) (*Note, error)
	Create(ctx context.Context, userID string, input NoteInput) (*Note, error)
	Update(ctx context.Context, userID, noteID string, input NoteInput) (*Note, error)
	Delete(ctx context.Context, userID, noteID string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (PasswordHash, error)
	Verify(hash PasswordHash, password string) bool
	// Placeholder returns a random hash that no password verifies against,
	// for accounts created without one.
	Placeholder() (PasswordHash, error)
}

// TokenService defines token operations
type TokenService interface {
	Issue(claims TokenClaims) (*TokenPair, error)
	VerifyAccess(token string) (*TokenClaims, error)
	VerifyRefresh(token string) (*TokenClaims, error)
}

// PendingSealer turns a PendingRegistration into an opaque ticket and back
type PendingSealer interface {
	Seal(pending PendingRegistration) (string, error)
	// Open fails with ErrInvalidPending when the ticket was tampered with or
	// sealed for a different email, and with ErrPendingExpired once it has
	// expired.
	Open(ticket, email string, now time.Time) (*PendingRegistration, error)
}

// NotificationService delivers OTP codes
type NotificationService interface {
	SendOTP(ctx context.Context, to, code string, purpose OTPPurpose) error
}

// OAuthProvider wraps an identity provider's code exchange and profile API
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
	Profile(ctx context.Context, accessToken string) (*OAuthProfile, error)
}

// RateLimiter counts hits per key in fixed windows
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error)
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	ID        string `json:"jti,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}
