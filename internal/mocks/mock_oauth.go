package mocks

import (
	"context"

	"github.com/abhinay-x/note-maker/domain"
)

// MockOAuthService implements domain.OAuthService interface for testing
type MockOAuthService struct {
	StartAuthorizationFunc func(state string) string
	HandleCallbackFunc     func(ctx context.Context, code string) (string, error)
}

func NewMockOAuthService() *MockOAuthService {
	return &MockOAuthService{}
}

func (m *MockOAuthService) StartAuthorization(state string) string {
	if m.StartAuthorizationFunc != nil {
		return m.StartAuthorizationFunc(state)
	}
	return "https://accounts.example.com/o/oauth2/auth?state=" + state
}

func (m *MockOAuthService) HandleCallback(ctx context.Context, code string) (string, error) {
	if m.HandleCallbackFunc != nil {
		return m.HandleCallbackFunc(ctx, code)
	}
	if code == "" {
		return "", domain.ErrMissingCode
	}
	return "http://localhost:5173/auth/callback#access=a&refresh=r&user=u", nil
}

var _ domain.OAuthService = (*MockOAuthService)(nil)

// MockOAuthProvider implements domain.OAuthProvider interface for testing
type MockOAuthProvider struct {
	AuthCodeURLFunc func(state string) string
	ExchangeFunc    func(ctx context.Context, code string) (string, error)
	ProfileFunc     func(ctx context.Context, accessToken string) (*domain.OAuthProfile, error)
}

func NewMockOAuthProvider() *MockOAuthProvider {
	return &MockOAuthProvider{}
}

func (m *MockOAuthProvider) AuthCodeURL(state string) string {
	if m.AuthCodeURLFunc != nil {
		return m.AuthCodeURLFunc(state)
	}
	return "https://accounts.example.com/o/oauth2/auth?state=" + state
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (string, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	return "provider_access_token", nil
}

func (m *MockOAuthProvider) Profile(ctx context.Context, accessToken string) (*domain.OAuthProfile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, accessToken)
	}
	return &domain.OAuthProfile{Email: "oauth@example.com", GivenName: "OAuth", FamilyName: "User"}, nil
}

var _ domain.OAuthProvider = (*MockOAuthProvider)(nil)
