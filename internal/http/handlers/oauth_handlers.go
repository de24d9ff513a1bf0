package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhinay-x/note-maker/domain"
	"github.com/abhinay-x/note-maker/internal/services"
)

// OAuthHandlers handles the Google sign-in redirects. Both endpoints answer
// with redirects, never JSON, so tokens only reach the browser in a URL
// fragment.
type OAuthHandlers struct {
	oauthSvc  domain.OAuthService
	clientURL string
}

// NewOAuthHandlers creates new OAuth handlers
func NewOAuthHandlers(oauthSvc domain.OAuthService, clientURL string) *OAuthHandlers {
	return &OAuthHandlers{oauthSvc: oauthSvc, clientURL: clientURL}
}

// Start redirects the browser to the provider
func (h *OAuthHandlers) Start(c *gin.Context) {
	c.Redirect(http.StatusFound, h.oauthSvc.StartAuthorization(c.Query("state")))
}

// Callback finishes the code exchange and sends the browser back to the
// client, to its callback page on success and to the login page otherwise.
func (h *OAuthHandlers) Callback(c *gin.Context) {
	ctx := c.Request.Context()

	target, err := h.oauthSvc.HandleCallback(ctx, c.Query("code"))
	if err != nil {
		code := callbackErrorCode(err)
		slog.WarnContext(ctx, "oauth callback failed",
			"reason", code,
			"provider_error", c.Query("error"),
			"error", err,
		)
		c.Redirect(http.StatusFound, services.FailureRedirect(h.clientURL, code))
		return
	}

	c.Redirect(http.StatusFound, target)
}

func callbackErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCode):
		return "missing_code"
	case errors.Is(err, domain.ErrExchangeFailed):
		return "exchange_failed"
	case errors.Is(err, domain.ErrProfileFetchFailed):
		return "profile_failed"
	case errors.Is(err, domain.ErrMissingEmail):
		return "missing_email"
	default:
		return "oauth_failed"
	}
}
