package mocks

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/abhinay-x/note-maker/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueFunc         func(claims domain.TokenClaims) (*domain.TokenPair, error)
	VerifyAccessFunc  func(token string) (*domain.TokenClaims, error)
	VerifyRefreshFunc func(token string) (*domain.TokenClaims, error)

	issued atomic.Int64
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue mints a token pair
func (m *MockTokenService) Issue(claims domain.TokenClaims) (*domain.TokenPair, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(claims)
	}
	// Default behavior: "access_token_<user>_<n>" / "refresh_token_<user>_<n>"
	n := m.issued.Add(1)
	return &domain.TokenPair{
		AccessToken:  fmt.Sprintf("access_token_%s_%d", claims.UserID, n),
		RefreshToken: fmt.Sprintf("refresh_token_%s_%d", claims.UserID, n),
	}, nil
}

// VerifyAccess validates an access token and returns claims
func (m *MockTokenService) VerifyAccess(token string) (*domain.TokenClaims, error) {
	if m.VerifyAccessFunc != nil {
		return m.VerifyAccessFunc(token)
	}
	return parseMockToken(token, "access_token_")
}

// VerifyRefresh validates a refresh token and returns claims
func (m *MockTokenService) VerifyRefresh(token string) (*domain.TokenClaims, error) {
	if m.VerifyRefreshFunc != nil {
		return m.VerifyRefreshFunc(token)
	}
	return parseMockToken(token, "refresh_token_")
}

// parseMockToken accepts tokens shaped like the Issue default.
func parseMockToken(token, prefix string) (*domain.TokenClaims, error) {
	rest, ok := strings.CutPrefix(token, prefix)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	i := strings.LastIndexByte(rest, '_')
	if i <= 0 {
		return nil, domain.ErrTokenInvalid
	}
	userID := rest[:i]
	return &domain.TokenClaims{UserID: userID, Email: userID + "@example.com"}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
