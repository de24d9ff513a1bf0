package domain

import (
	"testing"
	"time"
)

func TestOneTimeCode_Usable(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name        string
		code        *OneTimeCode
		wantUsable  bool
		wantExpired bool
	}{
		{
			name:       "fresh code",
			code:       &OneTimeCode{ExpiresAt: now.Add(10 * time.Minute)},
			wantUsable: true,
		},
		{
			name:       "used code",
			code:       &OneTimeCode{ExpiresAt: now.Add(10 * time.Minute), Used: true},
			wantUsable: false,
		},
		{
			name:        "expiry equal to now is expired",
			code:        &OneTimeCode{ExpiresAt: now},
			wantUsable:  false,
			wantExpired: true,
		},
		{
			name:        "past expiry",
			code:        &OneTimeCode{ExpiresAt: now.Add(-time.Second)},
			wantUsable:  false,
			wantExpired: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.Usable(now); got != tt.wantUsable {
				t.Errorf("Usable() = %v, want %v", got, tt.wantUsable)
			}
			if got := tt.code.Expired(now); got != tt.wantExpired {
				t.Errorf("Expired() = %v, want %v", got, tt.wantExpired)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Jo.Li@Example.COM "); got != "jo.li@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}
