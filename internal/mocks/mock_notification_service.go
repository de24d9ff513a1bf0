package mocks

import (
	"context"
	"sync"

	"github.com/abhinay-x/note-maker/domain"
)

// SentOTP is one message captured by MockNotificationService
type SentOTP struct {
	To      string
	Code    string
	Purpose domain.OTPPurpose
}

// MockNotificationService implements domain.NotificationService interface
// for testing. Every call is recorded, including failed ones.
type MockNotificationService struct {
	SendOTPFunc func(ctx context.Context, to, code string, purpose domain.OTPPurpose) error

	mu   sync.Mutex
	sent []SentOTP
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendOTP delivers a code
func (m *MockNotificationService) SendOTP(ctx context.Context, to, code string, purpose domain.OTPPurpose) error {
	m.mu.Lock()
	m.sent = append(m.sent, SentOTP{To: to, Code: code, Purpose: purpose})
	m.mu.Unlock()

	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, to, code, purpose)
	}
	// Default behavior: success
	return nil
}

// Sent returns a copy of every recorded message.
func (m *MockNotificationService) Sent() []SentOTP {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentOTP, len(m.sent))
	copy(out, m.sent)
	return out
}

// LastCode returns the most recent code sent to the address, or "".
func (m *MockNotificationService) LastCode(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].To == to {
			return m.sent[i].Code
		}
	}
	return ""
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
