package mocks

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/abhinay-x/note-maker/domain"
)

// MockPendingSealer implements domain.PendingSealer interface for testing.
// The default ticket is the JSON payload behind a "ticket:" prefix.
type MockPendingSealer struct {
	SealFunc func(pending domain.PendingRegistration) (string, error)
	OpenFunc func(ticket, email string, now time.Time) (*domain.PendingRegistration, error)
}

func NewMockPendingSealer() *MockPendingSealer {
	return &MockPendingSealer{}
}

func (m *MockPendingSealer) Seal(pending domain.PendingRegistration) (string, error) {
	if m.SealFunc != nil {
		return m.SealFunc(pending)
	}
	b, err := json.Marshal(pending)
	if err != nil {
		return "", err
	}
	return "ticket:" + string(b), nil
}

func (m *MockPendingSealer) Open(ticket, email string, now time.Time) (*domain.PendingRegistration, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(ticket, email, now)
	}
	raw, ok := strings.CutPrefix(ticket, "ticket:")
	if !ok {
		return nil, domain.ErrInvalidPending
	}
	var p domain.PendingRegistration
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, domain.ErrInvalidPending
	}
	if p.Email != email {
		return nil, domain.ErrInvalidPending
	}
	if !now.Before(p.ExpiresAt) {
		return nil, domain.ErrPendingExpired
	}
	return &p, nil
}

var _ domain.PendingSealer = (*MockPendingSealer)(nil)
