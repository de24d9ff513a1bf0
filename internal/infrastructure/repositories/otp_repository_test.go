package repositories

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abhinay-x/note-maker/domain"
)

func TestOTPRepositoryImpl_FindLatestActive(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		seed          []*domain.OneTimeCode
		email         string
		code          string
		purpose       domain.OTPPurpose
		expectedID    string
		expectedError error
	}{
		{
			name: "newest matching code wins",
			seed: []*domain.OneTimeCode{
				{ID: "old", Email: "a@b.com", Code: "123456", Purpose: domain.OTPPurposeSignup, ExpiresAt: now.Add(5 * time.Minute), CreatedAt: now.Add(-5 * time.Minute)},
				{ID: "new", Email: "a@b.com", Code: "123456", Purpose: domain.OTPPurposeSignup, ExpiresAt: now.Add(9 * time.Minute), CreatedAt: now.Add(-time.Minute)},
			},
			email: "A@B.com", code: "123456", purpose: domain.OTPPurposeSignup,
			expectedID: "new",
		},
		{
			name: "used code is skipped",
			seed: []*domain.OneTimeCode{
				{ID: "used", Email: "a@b.com", Code: "123456", Purpose: domain.OTPPurposeSignup, ExpiresAt: now.Add(time.Minute), Used: true, CreatedAt: now},
			},
			email: "a@b.com", code: "123456", purpose: domain.OTPPurposeSignup,
			expectedError: domain.ErrOTPNotFound,
		},
		{
			name: "expiry boundary is exclusive",
			seed: []*domain.OneTimeCode{
				{ID: "edge", Email: "a@b.com", Code: "123456", Purpose: domain.OTPPurposeSignup, ExpiresAt: now, CreatedAt: now.Add(-10 * time.Minute)},
			},
			email: "a@b.com", code: "123456", purpose: domain.OTPPurposeSignup,
			expectedError: domain.ErrOTPNotFound,
		},
		{
			name: "purpose must match",
			seed: []*domain.OneTimeCode{
				{ID: "reset", Email: "a@b.com", Code: "123456", Purpose: domain.OTPPurposePasswordReset, ExpiresAt: now.Add(time.Minute), CreatedAt: now},
			},
			email: "a@b.com", code: "123456", purpose: domain.OTPPurposeSignup,
			expectedError: domain.ErrOTPNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewOTPRepository(setupTestDB(t))
			for _, c := range tt.seed {
				if err := repo.Create(context.Background(), c); err != nil {
					t.Fatalf("seed: %v", err)
				}
			}

			got, err := repo.FindLatestActive(context.Background(), tt.email, tt.code, tt.purpose, now)
			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("FindLatestActive() error = %v, want %v", err, tt.expectedError)
			}
			if tt.expectedError == nil && got.ID != tt.expectedID {
				t.Errorf("FindLatestActive() id = %s, want %s", got.ID, tt.expectedID)
			}
		})
	}
}

func TestOTPRepositoryImpl_FindLatestIgnoresState(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	repo := NewOTPRepository(setupTestDB(t))
	ctx := context.Background()

	code := &domain.OneTimeCode{Email: "a@b.com", Code: "654321", Purpose: domain.OTPPurposeSignup, ExpiresAt: now.Add(-time.Minute), Used: true, CreatedAt: now.Add(-11 * time.Minute)}
	if err := repo.Create(ctx, code); err != nil {
		t.Fatal(err)
	}

	got, err := repo.FindLatest(ctx, "a@b.com", "654321", domain.OTPPurposeSignup)
	if err != nil {
		t.Fatalf("FindLatest() error = %v", err)
	}
	if !got.Used || !got.Expired(now) {
		t.Errorf("FindLatest() = %+v", got)
	}

	if _, err := repo.FindLatest(ctx, "a@b.com", "000000", domain.OTPPurposeSignup); !errors.Is(err, domain.ErrOTPNotFound) {
		t.Errorf("FindLatest(unknown) error = %v", err)
	}
}

func TestOTPRepositoryImpl_MarkUsedOnce(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	repo := NewOTPRepository(setupTestDB(t))
	ctx := context.Background()

	code := &domain.OneTimeCode{Email: "a@b.com", Code: "111111", Purpose: domain.OTPPurposeSignup, ExpiresAt: now.Add(time.Minute), CreatedAt: now}
	if err := repo.Create(ctx, code); err != nil {
		t.Fatal(err)
	}

	const workers = 8
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.MarkUsed(ctx, code.ID)
			switch {
			case err == nil:
				wins.Add(1)
			case !errors.Is(err, domain.ErrOTPAlreadyUsed):
				t.Errorf("MarkUsed() unexpected error = %v", err)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Errorf("MarkUsed() succeeded %d times, want 1", wins.Load())
	}
	if _, err := repo.FindLatestActive(ctx, "a@b.com", "111111", domain.OTPPurposeSignup, now); !errors.Is(err, domain.ErrOTPNotFound) {
		t.Errorf("used code still active: %v", err)
	}
}

func TestOTPRepositoryImpl_DeleteExpired(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	repo := NewOTPRepository(setupTestDB(t))
	ctx := context.Background()

	for _, exp := range []time.Duration{-time.Hour, 0, time.Minute} {
		c := &domain.OneTimeCode{Email: "a@b.com", Code: "222222", Purpose: domain.OTPPurposeSignup, ExpiresAt: now.Add(exp), CreatedAt: now.Add(-time.Hour)}
		if err := repo.Create(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	n, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteExpired() removed %d rows, want 2", n)
	}
	if _, err := repo.FindLatestActive(ctx, "a@b.com", "222222", domain.OTPPurposeSignup, now); err != nil {
		t.Errorf("unexpired code was removed: %v", err)
	}
}
