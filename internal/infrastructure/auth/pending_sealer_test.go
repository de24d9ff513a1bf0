package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhinay-x/note-maker/domain"
)

func TestPendingSealer_RoundTrip(t *testing.T) {
	sealer := NewPendingSealer("pending-secret")
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	in := domain.PendingRegistration{
		Email:          "a@b.com",
		HashedPassword: "$2a$12$abcdefghijklmnopqrstuv",
		FirstName:      "Jo",
		LastName:       "Li",
		ExpiresAt:      now.Add(10 * time.Minute),
	}

	ticket, err := sealer.Seal(in)
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	if strings.Contains(ticket, "abcdefghijklmnop") {
		t.Error("ticket must not expose the password hash")
	}

	out, err := sealer.Open(ticket, "a@b.com", now)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if out.HashedPassword != in.HashedPassword || out.FirstName != "Jo" || out.LastName != "Li" {
		t.Errorf("Open() = %+v, want %+v", out, in)
	}
}

func TestPendingSealer_Rejects(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	sealer := NewPendingSealer("pending-secret")
	ticket, err := sealer.Seal(domain.PendingRegistration{
		Email:          "a@b.com",
		HashedPassword: "$2a$12$hash",
		FirstName:      "Jo",
		LastName:       "Li",
		ExpiresAt:      now.Add(10 * time.Minute),
	})
	if err != nil {
		t.Fatal(err)
	}

	flipped := []byte(ticket)
	if flipped[len(flipped)/2] == 'A' {
		flipped[len(flipped)/2] = 'B'
	} else {
		flipped[len(flipped)/2] = 'A'
	}

	tests := []struct {
		name   string
		sealer domain.PendingSealer
		ticket string
		email  string
		at     time.Time
	}{
		{"tampered ciphertext", sealer, string(flipped), "a@b.com", now},
		{"different email", sealer, ticket, "x@b.com", now},
		{"expired", sealer, ticket, "a@b.com", now.Add(10 * time.Minute)},
		{"different key", NewPendingSealer("other-secret"), ticket, "a@b.com", now},
		{"not base64", sealer, "%%%", "a@b.com", now},
		{"too short", sealer, "AAAA", "a@b.com", now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.sealer.Open(tt.ticket, tt.email, tt.at)
			if !errors.Is(err, domain.ErrInvalidPending) {
				t.Errorf("Open() error = %v, want ErrInvalidPending", err)
			}
			if isExpired := errors.Is(err, domain.ErrPendingExpired); isExpired != (tt.name == "expired") {
				t.Errorf("Open() error = %v, expired = %v", err, isExpired)
			}
		})
	}
}
