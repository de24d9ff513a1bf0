package notifications

import (
	"context"
	"log/slog"

	"github.com/abhinay-x/note-maker/domain"
)

// LogServiceImpl writes OTPs to the log instead of sending them. Used when
// no email provider is configured.
type LogServiceImpl struct {
	logger *slog.Logger
}

func NewLogService(logger *slog.Logger) domain.NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogServiceImpl{logger: logger}
}

// SendOTP implements domain.NotificationService
func (l *LogServiceImpl) SendOTP(ctx context.Context, to, code string, purpose domain.OTPPurpose) error {
	l.logger.InfoContext(ctx, "[MOCK EMAIL] otp not delivered, no email provider configured",
		"to", to,
		"purpose", string(purpose),
		"code", code,
	)
	return nil
}
