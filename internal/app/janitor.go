package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abhinay-x/note-maker/domain"
	"github.com/abhinay-x/note-maker/internal/clock"
)

// Janitor periodically deletes expired one-time codes and refresh sessions.
// Expired rows are already ignored by every lookup; this only bounds table
// growth.
type Janitor struct {
	otpRepo     domain.OTPRepository
	sessionRepo domain.SessionRepository
	clock       clock.Clock
	interval    time.Duration
	logger      *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewJanitor creates a janitor. A non-positive interval defaults to an hour.
func NewJanitor(otpRepo domain.OTPRepository, sessionRepo domain.SessionRepository, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Janitor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Janitor{
		otpRepo:     otpRepo,
		sessionRepo: sessionRepo,
		clock:       clk,
		interval:    interval,
		logger:      logger,
	}
}

// Start begins the cleanup loop.
func (j *Janitor) Start(ctx context.Context) {
	j.mu.Lock()
	ctx, j.cancel = context.WithCancel(ctx)
	j.done = make(chan struct{})
	j.mu.Unlock()

	go func() {
		defer close(j.done)
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.Sweep(ctx)
			}
		}
	}()
}

// Stop ends the loop and waits for an in-flight sweep.
func (j *Janitor) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	done := j.done
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Sweep runs one cleanup pass.
func (j *Janitor) Sweep(ctx context.Context) {
	now := j.clock.Now()

	codes, err := j.otpRepo.DeleteExpired(ctx, now)
	if err != nil {
		j.logger.ErrorContext(ctx, "failed to delete expired codes", "error", err)
	}
	sessions, err := j.sessionRepo.DeleteExpired(ctx, now)
	if err != nil {
		j.logger.ErrorContext(ctx, "failed to delete expired sessions", "error", err)
	}

	if codes > 0 || sessions > 0 {
		j.logger.InfoContext(ctx, "janitor sweep", "codes", codes, "sessions", sessions)
	}
}
