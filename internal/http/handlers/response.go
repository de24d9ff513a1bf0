package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhinay-x/note-maker/domain"
)

// Response is the envelope every JSON endpoint answers with
type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

const internalErrorMessage = "Internal server error"

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Message: message})
}

func failValidation(c *gin.Context, fields []domain.FieldError) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Validation failed", Errors: fields})
}

// respondError maps a service error to a status and client-safe message.
// Anything unrecognized is logged and answered as a 500.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		failValidation(c, verr.Fields)
		return
	}

	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		fail(c, http.StatusBadRequest, "User with this email already exists")
	case errors.Is(err, domain.ErrMissingFields):
		fail(c, http.StatusBadRequest, "Email, OTP, and tempData are required")
	case errors.Is(err, domain.ErrInvalidPending):
		fail(c, http.StatusBadRequest, "Invalid or expired signup data")
	case errors.Is(err, domain.ErrOTPAlreadyUsed):
		fail(c, http.StatusBadRequest, "OTP has already been used")
	case errors.Is(err, domain.ErrOTPExpired):
		fail(c, http.StatusBadRequest, "OTP has expired")
	case errors.Is(err, domain.ErrOTPInvalid), errors.Is(err, domain.ErrOTPNotFound):
		fail(c, http.StatusBadRequest, "Invalid OTP")
	case errors.Is(err, domain.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, domain.ErrMissingToken):
		fail(c, http.StatusUnauthorized, "Refresh token required")
	case errors.Is(err, domain.ErrTokenInvalid):
		fail(c, http.StatusForbidden, "Invalid refresh token")
	case errors.Is(err, domain.ErrSessionNotFound):
		fail(c, http.StatusForbidden, "Invalid or expired refresh token")
	case errors.Is(err, domain.ErrUserNotFound):
		fail(c, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrNoteNotFound):
		fail(c, http.StatusNotFound, "Note not found")
	case errors.Is(err, domain.ErrRateLimited):
		fail(c, http.StatusTooManyRequests, "Too many requests, please try again later.")
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		fail(c, http.StatusInternalServerError, internalErrorMessage)
	}
}

func isOTPFailure(err error) bool {
	return errors.Is(err, domain.ErrOTPInvalid) ||
		errors.Is(err, domain.ErrOTPExpired) ||
		errors.Is(err, domain.ErrOTPAlreadyUsed) ||
		errors.Is(err, domain.ErrOTPNotFound)
}
