package audit

import (
	"context"
	"log/slog"
	"sort"

	"github.com/abhinay-x/note-maker/domain"
)

// SlogLoggerImpl implements domain.AuditLogger on a structured logger.
// Successful events are logged at info, failures at warn.
type SlogLoggerImpl struct {
	logger *slog.Logger
}

// NewSlogLogger creates an audit logger. A nil logger uses slog.Default.
func NewSlogLogger(logger *slog.Logger) domain.AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLoggerImpl{logger: logger.With("component", "audit")}
}

// LogEvent implements domain.AuditLogger
func (l *SlogLoggerImpl) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	if event == nil {
		return
	}
	if event.IPAddress == "" && event.UserAgent == "" {
		event.WithClientContext(domain.ClientContextFrom(ctx))
	}

	attrs := []slog.Attr{
		slog.String("event_type", string(event.EventType)),
		slog.Bool("success", event.Success),
		slog.Time("timestamp", event.Timestamp),
	}
	if event.UserID != "" {
		attrs = append(attrs, slog.String("user_id", event.UserID))
	}
	if event.Email != "" {
		attrs = append(attrs, slog.String("email", event.Email))
	}
	if event.IPAddress != "" {
		attrs = append(attrs, slog.String("ip_address", event.IPAddress))
	}
	if event.UserAgent != "" {
		attrs = append(attrs, slog.String("user_agent", event.UserAgent))
	}
	if event.ErrorMsg != "" {
		attrs = append(attrs, slog.String("error", event.ErrorMsg))
	}
	if len(event.Metadata) > 0 {
		keys := make([]string, 0, len(event.Metadata))
		for k := range event.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		meta := make([]any, 0, len(keys))
		for _, k := range keys {
			meta = append(meta, slog.Any(k, event.Metadata[k]))
		}
		attrs = append(attrs, slog.Group("metadata", meta...))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	l.logger.LogAttrs(ctx, level, "audit event", attrs...)
}
