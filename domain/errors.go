package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Input errors
var (
	ErrValidation    = errors.New("validation failed")
	ErrMissingFields = errors.New("email, otp, and tempData are required")
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrInvalidPending     = errors.New("invalid or expired signup data")
	// ErrPendingExpired is an authentic ticket whose expiry has passed.
	ErrPendingExpired = fmt.Errorf("%w: expired", ErrInvalidPending)
)

// OTP errors
var (
	ErrOTPInvalid     = errors.New("invalid otp")
	ErrOTPExpired     = errors.New("otp has expired")
	ErrOTPAlreadyUsed = errors.New("otp has already been used")
	ErrOTPNotFound    = errors.New("otp not found")
)

// Token errors
var (
	ErrMissingToken = errors.New("refresh token required")
	ErrTokenInvalid = errors.New("invalid token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("invalid or expired refresh token")
)

// OAuth errors
var (
	ErrUpstreamProvider   = errors.New("identity provider error")
	ErrMissingCode        = errors.New("missing authorization code")
	ErrExchangeFailed     = fmt.Errorf("%w: code exchange failed", ErrUpstreamProvider)
	ErrProfileFetchFailed = fmt.Errorf("%w: profile fetch failed", ErrUpstreamProvider)
	ErrMissingEmail       = fmt.Errorf("%w: profile missing email", ErrUpstreamProvider)
)

// Resource errors
var (
	ErrNoteNotFound = errors.New("note not found")
	ErrRateLimited  = errors.New("too many requests")
)

// FieldError describes one invalid input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level detail and matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError from field errors
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
