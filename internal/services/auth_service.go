package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/abhinay-x/note-maker/domain"
	"github.com/abhinay-x/note-maker/internal/clock"
)

const (
	minPasswordLength = 8

	// ForgotPasswordMessage is returned whether or not the account exists.
	ForgotPasswordMessage = "If an account exists for this email, an OTP has been sent"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// AuthConfig holds lifetimes the orchestrator needs directly
type AuthConfig struct {
	RefreshTTL time.Duration
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	sealer      domain.PendingSealer
	audit       domain.AuditLogger
	clock       clock.Clock
	logger      *slog.Logger
	config      AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	sealer domain.PendingSealer,
	audit domain.AuditLogger,
	clk clock.Clock,
	config AuthConfig,
) domain.AuthService {
	if config.RefreshTTL <= 0 {
		config.RefreshTTL = 7 * 24 * time.Hour
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		sealer:      sealer,
		audit:       audit,
		clock:       clk,
		logger:      slog.Default().With("component", "auth"),
		config:      config,
	}
}

// RequestSignup implements domain.AuthService. No user is created here; the
// pending registration travels back to the client as a sealed ticket.
func (s *AuthServiceImpl) RequestSignup(ctx context.Context, input domain.SignupInput) (*domain.SignupResult, error) {
	now := s.clock.Now()
	input.Email = domain.NormalizeEmail(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)

	if err := validateSignup(input); err != nil {
		return nil, err
	}

	_, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	otp, err := s.otpSvc.Issue(ctx, input.Email, domain.OTPPurposeSignup, now)
	if err != nil {
		return nil, err
	}

	ticket, err := s.sealer.Seal(domain.PendingRegistration{
		Email:          input.Email,
		HashedPassword: hash,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		ExpiresAt:      otp.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seal pending registration: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.SignupRequestedEvent, now).
		WithUser("", input.Email))

	return &domain.SignupResult{
		Email:     input.Email,
		Ticket:    ticket,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}, nil
}

// VerifySignupOTP implements domain.AuthService
func (s *AuthServiceImpl) VerifySignupOTP(ctx context.Context, email, code, ticket string) (*domain.AuthResult, error) {
	email = domain.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" || code == "" || ticket == "" {
		return nil, domain.ErrMissingFields
	}

	now := s.clock.Now()
	result, err := s.verifySignup(ctx, email, code, ticket, now)
	if err != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.SignupFailedEvent, now).
			WithUser("", email).
			WithError(err))
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.SignupCompletedEvent, now).
		WithUser(result.User.ID, email))
	return result, nil
}

func (s *AuthServiceImpl) verifySignup(ctx context.Context, email, code, ticket string, now time.Time) (*domain.AuthResult, error) {
	pending, err := s.sealer.Open(ticket, email, now)
	if err != nil {
		// the ticket expires with its code; the code's own failure is the
		// more specific answer
		if errors.Is(err, domain.ErrPendingExpired) {
			if otpErr := s.otpSvc.Inspect(ctx, email, code, domain.OTPPurposeSignup, now); otpErr != nil {
				return nil, otpErr
			}
			return nil, domain.ErrOTPExpired
		}
		if errors.Is(err, domain.ErrInvalidPending) {
			return nil, domain.ErrInvalidPending
		}
		return nil, fmt.Errorf("failed to open pending registration: %w", err)
	}

	if _, err := s.otpSvc.Consume(ctx, email, code, domain.OTPPurposeSignup, now); err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:         email,
		PasswordHash:  pending.HashedPassword,
		FirstName:     pending.FirstName,
		LastName:      pending.LastName,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.userRepo.CreateWithHash(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokens, err := s.IssueSession(ctx, user, now)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: user, Tokens: *tokens}, nil
}

// Login implements domain.AuthService. An unknown email and a wrong password
// fail identically.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	now := s.clock.Now()
	email = domain.NormalizeEmail(email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.loginFailed(ctx, email, now, "unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.loginFailed(ctx, email, now, "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now

	tokens, err := s.IssueSession(ctx, user, now)
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, now).
		WithUser(user.ID, user.Email).
		WithMetadata("method", "password"))

	return &domain.AuthResult{User: user, Tokens: *tokens}, nil
}

func (s *AuthServiceImpl) loginFailed(ctx context.Context, email string, now time.Time, reason string) {
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, now).
		WithUser("", email).
		WithError(domain.ErrInvalidCredentials).
		WithMetadata("reason", reason))
}

// Refresh implements domain.AuthService. The session row is rotated in place.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrMissingToken
	}

	claims, err := s.tokenSvc.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	now := s.clock.Now()
	oldHash := hashToken(refreshToken)
	session, err := s.sessionRepo.FindActiveByTokenHash(ctx, oldHash, now)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session.UserID != claims.UserID {
		return nil, domain.ErrSessionNotFound
	}

	tokens, err := s.tokenSvc.Issue(domain.TokenClaims{UserID: session.UserID, Email: claims.Email})
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	err = s.sessionRepo.Rotate(ctx, session.ID, oldHash, hashToken(tokens.RefreshToken), now.Add(s.config.RefreshTTL))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to rotate session: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.TokenRefreshEvent, now).
		WithUser(session.UserID, claims.Email).
		WithMetadata("session_id", session.ID))

	return tokens, nil
}

// Logout implements domain.AuthService. It never fails.
func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	err := s.sessionRepo.DeleteByTokenHash(ctx, hashToken(refreshToken))
	if err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		s.logger.WarnContext(ctx, "failed to delete session on logout", "error", err)
	}

	event := domain.NewAuditEvent(domain.UserLogoutEvent, s.clock.Now())
	if claims, verr := s.tokenSvc.VerifyRefresh(refreshToken); verr == nil {
		event.WithUser(claims.UserID, claims.Email)
	}
	s.audit.LogEvent(ctx, event)
	return nil
}

// ForgotPassword implements domain.AuthService. The reply is the same whether
// or not the account exists and storage or delivery failures are only
// logged.
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) (string, error) {
	now := s.clock.Now()
	email = domain.NormalizeEmail(email)
	if email == "" {
		return ForgotPasswordMessage, nil
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.logger.ErrorContext(ctx, "forgot password lookup failed", "error", err)
		}
		return ForgotPasswordMessage, nil
	}

	event := domain.NewAuditEvent(domain.PasswordResetRequestEvent, now).WithUser(user.ID, user.Email)
	if _, err := s.otpSvc.Issue(ctx, user.Email, domain.OTPPurposePasswordReset, now); err != nil {
		s.logger.ErrorContext(ctx, "failed to issue password reset OTP", "user_id", user.ID, "error", err)
		event.WithError(err)
	}
	s.audit.LogEvent(ctx, event)

	return ForgotPasswordMessage, nil
}

// ResetPassword implements domain.AuthService. Every session of the user is
// revoked afterwards.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = domain.NormalizeEmail(email)
	code = strings.TrimSpace(code)

	var fields []domain.FieldError
	if email == "" {
		fields = append(fields, domain.FieldError{Field: "email", Message: "Email is required"})
	}
	if code == "" {
		fields = append(fields, domain.FieldError{Field: "otp", Message: "OTP is required"})
	}
	if len(newPassword) < minPasswordLength {
		fields = append(fields, domain.FieldError{Field: "newPassword", Message: "Password must be at least 8 characters long"})
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}

	now := s.clock.Now()
	if _, err := s.otpSvc.Consume(ctx, email, code, domain.OTPPurposePasswordReset, now); err != nil {
		if isOTPError(err) {
			return domain.ErrOTPInvalid
		}
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	revoked, err := s.sessionRepo.RevokeAllForUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.PasswordResetEvent, now).
		WithUser(user.ID, user.Email).
		WithMetadata("sessions_revoked", revoked))
	return nil
}

// IssueSession implements domain.AuthService
func (s *AuthServiceImpl) IssueSession(ctx context.Context, user *domain.User, now time.Time) (*domain.TokenPair, error) {
	tokens, err := s.tokenSvc.Issue(domain.TokenClaims{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	session := &domain.RefreshSession{
		TokenHash: hashToken(tokens.RefreshToken),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.config.RefreshTTL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return tokens, nil
}

func validateSignup(input domain.SignupInput) error {
	var fields []domain.FieldError
	if input.Email == "" {
		fields = append(fields, domain.FieldError{Field: "email", Message: "Email is required"})
	} else if !emailPattern.MatchString(input.Email) {
		fields = append(fields, domain.FieldError{Field: "email", Message: "Please enter a valid email address"})
	}
	if input.Password == "" {
		fields = append(fields, domain.FieldError{Field: "password", Message: "Password is required"})
	} else if len(input.Password) < minPasswordLength {
		fields = append(fields, domain.FieldError{Field: "password", Message: "Password must be at least 8 characters long"})
	}
	if input.FirstName == "" {
		fields = append(fields, domain.FieldError{Field: "firstName", Message: "First name is required"})
	}
	if input.LastName == "" {
		fields = append(fields, domain.FieldError{Field: "lastName", Message: "Last name is required"})
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

func isOTPError(err error) bool {
	return errors.Is(err, domain.ErrOTPInvalid) ||
		errors.Is(err, domain.ErrOTPExpired) ||
		errors.Is(err, domain.ErrOTPAlreadyUsed) ||
		errors.Is(err, domain.ErrOTPNotFound)
}

// hashToken is the at-rest form of a refresh token.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
