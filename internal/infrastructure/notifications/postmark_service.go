package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/abhinay-x/note-maker/domain"
)

const postmarkAPI = "https://api.postmarkapp.com"

// PostmarkServiceImpl implements domain.NotificationService against the
// Postmark HTTP API.
type PostmarkServiceImpl struct {
	serverToken string
	fromEmail   string
	baseURL     string
	ttl         time.Duration
	httpClient  *http.Client
}

type Option func(*PostmarkServiceImpl)

func WithHTTPClient(c *http.Client) Option {
	return func(p *PostmarkServiceImpl) {
		p.httpClient = c
	}
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) Option {
	return func(p *PostmarkServiceImpl) {
		p.baseURL = u
	}
}

func NewPostmarkService(serverToken, fromEmail string, ttl time.Duration, opts ...Option) *PostmarkServiceImpl {
	p := &PostmarkServiceImpl{
		serverToken: serverToken,
		fromEmail:   fromEmail,
		baseURL:     postmarkAPI,
		ttl:         ttl,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Configured returns true if the server token is set.
func (p *PostmarkServiceImpl) Configured() bool {
	return p.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// SendOTP implements domain.NotificationService
func (p *PostmarkServiceImpl) SendOTP(ctx context.Context, to, code string, purpose domain.OTPPurpose) error {
	if !p.Configured() {
		return fmt.Errorf("email client not configured: missing server token")
	}

	rendered, err := renderOTP(code, purpose, p.ttl)
	if err != nil {
		return err
	}

	body, err := json.Marshal(postmarkEmail{
		From:     p.fromEmail,
		To:       to,
		Subject:  rendered.Subject,
		HtmlBody: rendered.HTML,
		TextBody: rendered.Text,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", p.serverToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}

	return nil
}
