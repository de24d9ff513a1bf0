package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/abhinay-x/note-maker/domain"
)

// SMTPServiceImpl implements domain.NotificationService over SMTP with
// STARTTLS when the server offers it.
type SMTPServiceImpl struct {
	host     string
	port     int
	username string
	password string
	from     string
	ttl      time.Duration
}

// NewSMTPService creates a new SMTP notification service. from falls back to
// username, which is what most SMTP relays expect.
func NewSMTPService(host string, port int, username, password, from string, ttl time.Duration) domain.NotificationService {
	if from == "" {
		from = username
	}
	return &SMTPServiceImpl{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		ttl:      ttl,
	}
}

// SendOTP implements domain.NotificationService
func (s *SMTPServiceImpl) SendOTP(ctx context.Context, to, code string, purpose domain.OTPPurpose) error {
	msg, err := s.buildMessage(to, code, purpose)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(15 * time.Second),
	}
	if s.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.username),
			mail.WithPassword(s.password),
		)
	}

	client, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPServiceImpl) buildMessage(to, code string, purpose domain.OTPPurpose) (*mail.Msg, error) {
	rendered, err := renderOTP(code, purpose, s.ttl)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(rendered.Subject)
	msg.SetBodyString(mail.TypeTextPlain, rendered.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, rendered.HTML)
	return msg, nil
}
