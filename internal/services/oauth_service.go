package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/abhinay-x/note-maker/domain"
	"github.com/abhinay-x/note-maker/internal/clock"
)

// OAuthServiceImpl implements domain.OAuthService. A successful callback ends
// in the same session issuance as a password login.
type OAuthServiceImpl struct {
	provider    domain.OAuthProvider
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	authSvc     domain.AuthService
	audit       domain.AuditLogger
	clock       clock.Clock
	clientURL   string
}

// NewOAuthService creates a new OAuth bridge. clientURL is the origin the
// browser is sent back to.
func NewOAuthService(
	provider domain.OAuthProvider,
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	authSvc domain.AuthService,
	audit domain.AuditLogger,
	clk clock.Clock,
	clientURL string,
) domain.OAuthService {
	return &OAuthServiceImpl{
		provider:    provider,
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		authSvc:     authSvc,
		audit:       audit,
		clock:       clk,
		clientURL:   strings.TrimRight(clientURL, "/"),
	}
}

// StartAuthorization implements domain.OAuthService
func (s *OAuthServiceImpl) StartAuthorization(state string) string {
	return s.provider.AuthCodeURL(state)
}

type callbackUser struct {
	ID              string `json:"_id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	IsEmailVerified bool   `json:"isEmailVerified"`
}

// HandleCallback implements domain.OAuthService and returns the client
// redirect carrying tokens and user in the URL fragment.
func (s *OAuthServiceImpl) HandleCallback(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", domain.ErrMissingCode
	}

	accessToken, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return "", upstream(domain.ErrExchangeFailed, err)
	}

	profile, err := s.provider.Profile(ctx, accessToken)
	if err != nil {
		return "", upstream(domain.ErrProfileFetchFailed, err)
	}

	email := domain.NormalizeEmail(profile.Email)
	if email == "" {
		return "", domain.ErrMissingEmail
	}

	now := s.clock.Now()
	user, err := s.upsertUser(ctx, email, profile, now)
	if err != nil {
		return "", err
	}

	tokens, err := s.authSvc.IssueSession(ctx, user, now)
	if err != nil {
		return "", err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.OAuthLoginEvent, now).
		WithUser(user.ID, user.Email).
		WithMetadata("provider", "google"))

	payload, err := json.Marshal(callbackUser{
		ID:              user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		IsEmailVerified: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode user payload: %w", err)
	}

	return fmt.Sprintf("%s/auth/callback#access=%s&refresh=%s&user=%s",
		s.clientURL,
		url.QueryEscape(tokens.AccessToken),
		url.QueryEscape(tokens.RefreshToken),
		url.QueryEscape(base64.StdEncoding.EncodeToString(payload)),
	), nil
}

// FailureRedirect returns the client URL for a failed callback.
func FailureRedirect(clientURL, code string) string {
	return strings.TrimRight(clientURL, "/") + "/auth?error=" + url.QueryEscape(code)
}

// upsertUser returns the existing account for email or creates a verified
// one with an unusable password. Existing accounts are left unchanged.
func (s *OAuthServiceImpl) upsertUser(ctx context.Context, email string, profile *domain.OAuthProfile, now time.Time) (*domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	placeholder, err := s.passwordSvc.Placeholder()
	if err != nil {
		return nil, fmt.Errorf("failed to create placeholder password: %w", err)
	}

	firstName := firstNonEmpty(profile.GivenName, profile.Name, "User")
	user = &domain.User{
		Email:         email,
		PasswordHash:  placeholder,
		FirstName:     firstName,
		LastName:      strings.TrimSpace(profile.FamilyName),
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.userRepo.CreateWithHash(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			// created concurrently by another callback or signup
			return s.userRepo.FindByEmail(ctx, email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func upstream(kind, err error) error {
	if errors.Is(err, domain.ErrUpstreamProvider) {
		return err
	}
	return fmt.Errorf("%w: %v", kind, err)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
