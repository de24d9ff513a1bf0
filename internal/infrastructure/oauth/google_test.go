package oauth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhinay-x/note-maker/domain"
)

func newFakeGoogle(t *testing.T, profileStatus int, profileBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Form.Get("code") != "good-code" || r.Form.Get("client_id") != "cid" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"provider-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer provider-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(profileStatus)
		w.Write([]byte(profileBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func providerFor(srv *httptest.Server) domain.OAuthProvider {
	return NewGoogleProvider(GoogleConfig{
		ClientID:     "cid",
		ClientSecret: "csecret",
		RedirectURL:  "http://localhost:5000/api/auth/google/callback",
		AuthURL:      srv.URL + "/auth",
		TokenURL:     srv.URL + "/token",
		UserInfoURL:  srv.URL + "/userinfo",
	})
}

func TestGoogleProvider_AuthCodeURL(t *testing.T) {
	p := NewGoogleProvider(GoogleConfig{ClientID: "cid", RedirectURL: "http://localhost:5000/api/auth/google/callback"})

	u, err := url.Parse(p.AuthCodeURL("xyz"))
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "accounts.google.com", u.Host)
	assert.Equal(t, "cid", q.Get("client_id"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Equal(t, "xyz", q.Get("state"))
	assert.Equal(t, "http://localhost:5000/api/auth/google/callback", q.Get("redirect_uri"))
}

func TestGoogleProvider_ExchangeAndProfile(t *testing.T) {
	srv := newFakeGoogle(t, http.StatusOK, `{"email":"jo@example.com","name":"Jo Li","given_name":"Jo","family_name":"Li"}`)
	p := providerFor(srv)

	token, err := p.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "provider-token", token)

	profile, err := p.Profile(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", profile.Email)
	assert.Equal(t, "Jo", profile.GivenName)
	assert.Equal(t, "Li", profile.FamilyName)
}

func TestGoogleProvider_Failures(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		code          string
		token         string
		expectedError error
	}{
		{name: "rejected code", status: http.StatusOK, body: `{}`, code: "bad-code", expectedError: domain.ErrExchangeFailed},
		{name: "profile 500", status: http.StatusInternalServerError, body: `{}`, code: "good-code", expectedError: domain.ErrProfileFetchFailed},
		{name: "profile not json", status: http.StatusOK, body: `<html>`, code: "good-code", expectedError: domain.ErrProfileFetchFailed},
		{name: "wrong bearer", status: http.StatusOK, body: `{}`, token: "other", expectedError: domain.ErrProfileFetchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := providerFor(newFakeGoogle(t, tt.status, tt.body))
			ctx := context.Background()

			token := tt.token
			if token == "" {
				var err error
				token, err = p.Exchange(ctx, tt.code)
				if err != nil {
					assert.True(t, errors.Is(err, tt.expectedError), "got %v", err)
					assert.True(t, errors.Is(err, domain.ErrUpstreamProvider))
					return
				}
			}

			_, err := p.Profile(ctx, token)
			assert.True(t, errors.Is(err, tt.expectedError), "got %v", err)
			assert.True(t, errors.Is(err, domain.ErrUpstreamProvider))
		})
	}
}
