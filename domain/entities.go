package domain

import (
	"strings"
	"time"
)

// OTPPurpose scopes a one-time code to the flow that issued it
type OTPPurpose string

const (
	OTPPurposeSignup        OTPPurpose = "signup"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
	// OTPPurposeLogin is reserved; no flow issues it yet.
	OTPPurposeLogin OTPPurpose = "login"
)

// PasswordHash is a value that has already been through PasswordService.Hash
// (or an opaque placeholder for accounts without a password). Stores accept
// only this type, so a plaintext password can never be written by mistake.
type PasswordHash string

// User represents an account
type User struct {
	ID            string
	Email         string
	PasswordHash  PasswordHash
	FirstName     string
	LastName      string
	EmailVerified bool
	LastLoginAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OneTimeCode is a purpose-tagged OTP sent to an email address
type OneTimeCode struct {
	ID        string
	Email     string
	Code      string
	Purpose   OTPPurpose
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Usable reports whether the code may still be consumed at now.
func (c *OneTimeCode) Usable(now time.Time) bool {
	return !c.Used && now.Before(c.ExpiresAt)
}

// Expired reports whether the code's expiry has passed at now.
func (c *OneTimeCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// RefreshSession is the durable counterpart of an issued refresh token.
// Only the SHA-256 of the token is stored.
type RefreshSession struct {
	ID        string
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PendingRegistration holds a not-yet-created account between the signup
// request and OTP verification. It travels sealed through the client.
type PendingRegistration struct {
	Email          string       `json:"email"`
	HashedPassword PasswordHash `json:"hashedPassword"`
	FirstName      string       `json:"firstName"`
	LastName       string       `json:"lastName"`
	ExpiresAt      time.Time    `json:"expiresAt"`
}

// TokenPair is the access/refresh pair handed to clients
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResult represents a successful authentication outcome
type AuthResult struct {
	User   *User
	Tokens TokenPair
}

// SignupInput is the first step of email signup
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SignupResult is returned after an OTP has been sent for a signup.
// Ticket is the sealed PendingRegistration.
type SignupResult struct {
	Email     string
	Ticket    string
	FirstName string
	LastName  string
}

// OAuthProfile is the subset of a provider profile used to upsert a user
type OAuthProfile struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

// Note is a short text note owned by a user
type Note struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteInput carries the writable fields of a note
type NoteInput struct {
	Title   string
	Content string
	Tags    []string
}

// NoteQuery filters and paginates a user's notes
type NoteQuery struct {
	Page   int
	Limit  int
	Search string
	Tags   []string
}

// NotePage is one page of notes plus pagination totals
type NotePage struct {
	Notes      []*Note
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// NormalizeEmail lowercases and trims an address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
