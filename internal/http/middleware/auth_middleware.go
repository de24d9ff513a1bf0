package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhinay-x/note-maker/domain"
)

// AuthMiddleware creates authentication middleware. Access tokens are checked
// by signature and expiry only; no session lookup happens here.
func AuthMiddleware(tokenSvc domain.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortWith(c, http.StatusUnauthorized, "Access token required")
			return
		}

		claims, err := tokenSvc.VerifyAccess(token)
		if err != nil {
			abortWith(c, http.StatusForbidden, "Invalid or expired token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
