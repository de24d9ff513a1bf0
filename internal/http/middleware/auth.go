package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/abhinay-x/note-maker/domain"
)

// Context keys set by the access token middleware
const (
	UserIDKey = "user_id"
	EmailKey  = "email"
)

// AuthMW wraps the token service for middleware
type AuthMW struct {
	tokenSvc domain.TokenService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService) *AuthMW {
	return &AuthMW{tokenSvc: tokenSvc}
}

// WithJWT returns the JWT middleware function
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc)
}

// CurrentUserID returns the authenticated user's id, or "" outside the
// access token middleware.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

func abortWith(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
