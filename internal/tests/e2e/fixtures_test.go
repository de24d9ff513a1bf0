package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

// Password that satisfies the signup complexity rule
const testPassword = "Abcdef1!"

var emailSeq atomic.Int64

// uniqueEmail returns a fresh address for each call
func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s%d@example.com", prefix, emailSeq.Add(1))
}

// TempData mirrors the pending registration handed to the client
type TempData struct {
	HashedPassword string `json:"hashedPassword"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
}

type signupData struct {
	Email    string   `json:"email"`
	TempData TempData `json:"tempData"`
}

// Tokens mirrors the token pair in responses
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserBody mirrors the user in auth responses
type UserBody struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type authData struct {
	User   UserBody `json:"user"`
	Tokens Tokens   `json:"tokens"`
}

// RequestSignup starts a signup and returns the pending data and the mailed code
func (e *TestEnv) RequestSignup(t *testing.T, email string) (TempData, string) {
	t.Helper()
	resp := e.Post(t, "/api/auth/signup/email", map[string]string{
		"email":     email,
		"password":  testPassword,
		"firstName": "Jo",
		"lastName":  "Li",
	})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Raw))

	var data signupData
	resp.DecodeData(t, &data)
	code := e.Mailer.LastCode(email)
	require.NotEmpty(t, code, "no code mailed to %s", email)
	return data.TempData, code
}

// VerifySignup completes a signup
func (e *TestEnv) VerifySignup(t *testing.T, email, code string, temp TempData) *APIResponse {
	t.Helper()
	return e.Post(t, "/api/auth/verify-otp", map[string]interface{}{
		"email":    email,
		"otp":      code,
		"tempData": temp,
	})
}

// CreateAccount runs the whole signup and returns the issued session
func (e *TestEnv) CreateAccount(t *testing.T, email string) (UserBody, Tokens) {
	t.Helper()
	temp, code := e.RequestSignup(t, email)
	resp := e.VerifySignup(t, email, code, temp)
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Raw))

	var data authData
	resp.DecodeData(t, &data)
	return data.User, data.Tokens
}

// Login logs in with a password
func (e *TestEnv) Login(t *testing.T, email, password string) *APIResponse {
	t.Helper()
	return e.Post(t, "/api/auth/login/email", map[string]string{"email": email, "password": password})
}

// LoginTokens logs in and requires success
func (e *TestEnv) LoginTokens(t *testing.T, email, password string) Tokens {
	t.Helper()
	resp := e.Login(t, email, password)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Raw))
	var data authData
	resp.DecodeData(t, &data)
	return data.Tokens
}

// Refresh exchanges a refresh token
func (e *TestEnv) Refresh(t *testing.T, refreshToken string) *APIResponse {
	t.Helper()
	return e.Post(t, "/api/auth/refresh", map[string]string{"refreshToken": refreshToken})
}

// FakeGoogle serves the token and userinfo endpoints of an OAuth provider.
// Each code maps to the profile returned for it.
type FakeGoogle struct {
	*httptest.Server

	mu       sync.Mutex
	profiles map[string]map[string]string
}

// NewFakeGoogle starts a fake provider closed at test end
func NewFakeGoogle(t *testing.T) *FakeGoogle {
	t.Helper()
	f := &FakeGoogle{profiles: map[string]map[string]string{}}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		code := r.Form.Get("code")
		f.mu.Lock()
		_, ok := f.profiles[code]
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "at-" + code,
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		const prefix = "Bearer at-"
		if len(auth) <= len(prefix) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		f.mu.Lock()
		profile, ok := f.profiles[auth[len(prefix):]]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(profile)
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// AddProfile registers the profile returned for code
func (f *FakeGoogle) AddProfile(code string, profile map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[code] = profile
}
