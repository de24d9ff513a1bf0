package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhinay-x/note-maker/domain"
)

func seedSession(t *testing.T, repo domain.SessionRepository, userID, hash string, expiresAt time.Time) *domain.RefreshSession {
	t.Helper()
	s := &domain.RefreshSession{TokenHash: hash, UserID: userID, ExpiresAt: expiresAt}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return s
}

func TestSessionRepositoryImpl_FindActiveByTokenHash(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setup         func(t *testing.T, repo domain.SessionRepository)
		hash          string
		expectedError error
	}{
		{
			name: "active session",
			setup: func(t *testing.T, repo domain.SessionRepository) {
				seedSession(t, repo, "u1", "h1", now.Add(time.Hour))
			},
			hash: "h1",
		},
		{
			name: "expired session",
			setup: func(t *testing.T, repo domain.SessionRepository) {
				seedSession(t, repo, "u1", "h1", now)
			},
			hash:          "h1",
			expectedError: domain.ErrSessionNotFound,
		},
		{
			name: "revoked session",
			setup: func(t *testing.T, repo domain.SessionRepository) {
				seedSession(t, repo, "u1", "h1", now.Add(time.Hour))
				if _, err := repo.RevokeAllForUser(context.Background(), "u1"); err != nil {
					t.Fatal(err)
				}
			},
			hash:          "h1",
			expectedError: domain.ErrSessionNotFound,
		},
		{
			name:          "unknown hash",
			setup:         func(t *testing.T, repo domain.SessionRepository) {},
			hash:          "nope",
			expectedError: domain.ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewSessionRepository(setupTestDB(t))
			tt.setup(t, repo)

			got, err := repo.FindActiveByTokenHash(context.Background(), tt.hash, now)
			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("FindActiveByTokenHash() error = %v, want %v", err, tt.expectedError)
			}
			if tt.expectedError == nil && (got.UserID != "u1" || got.ID == "") {
				t.Errorf("FindActiveByTokenHash() = %+v", got)
			}
		})
	}
}

func TestSessionRepositoryImpl_Rotate(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()
	repo := NewSessionRepository(setupTestDB(t))
	s := seedSession(t, repo, "u1", "old", now.Add(time.Hour))

	newExpiry := now.Add(7 * 24 * time.Hour)
	if err := repo.Rotate(ctx, s.ID, "old", "new", newExpiry); err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}

	if _, err := repo.FindActiveByTokenHash(ctx, "old", now); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("old hash still resolves: %v", err)
	}
	got, err := repo.FindActiveByTokenHash(ctx, "new", now)
	if err != nil {
		t.Fatalf("new hash lookup error = %v", err)
	}
	if got.ID != s.ID || !got.ExpiresAt.Equal(newExpiry) {
		t.Errorf("rotated session = %+v", got)
	}

	// second rotation from the stale hash loses the compare-and-set
	if err := repo.Rotate(ctx, s.ID, "old", "newer", newExpiry); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("stale Rotate() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRepositoryImpl_RevokeAllForUser(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()
	repo := NewSessionRepository(setupTestDB(t))
	seedSession(t, repo, "u1", "a", now.Add(time.Hour))
	seedSession(t, repo, "u1", "b", now.Add(time.Hour))
	seedSession(t, repo, "u2", "c", now.Add(time.Hour))

	n, err := repo.RevokeAllForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("RevokeAllForUser() error = %v", err)
	}
	if n != 2 {
		t.Errorf("revoked %d, want 2", n)
	}
	if _, err := repo.FindActiveByTokenHash(ctx, "c", now); err != nil {
		t.Errorf("other user's session was revoked: %v", err)
	}
	s, _ := repo.FindActiveByTokenHash(ctx, "a", now)
	if s != nil {
		t.Error("revoked session still active")
	}
}

func TestSessionRepositoryImpl_DeleteByTokenHash(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()
	repo := NewSessionRepository(setupTestDB(t))
	seedSession(t, repo, "u1", "a", now.Add(time.Hour))

	if err := repo.DeleteByTokenHash(ctx, "a"); err != nil {
		t.Fatalf("DeleteByTokenHash() error = %v", err)
	}
	if err := repo.DeleteByTokenHash(ctx, "a"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("second DeleteByTokenHash() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRepositoryImpl_DeleteExpired(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	seedSession(t, repo, "u1", "expired", now.Add(-time.Minute))
	seedSession(t, repo, "u2", "revoked", now.Add(time.Hour))
	seedSession(t, repo, "u3", "live", now.Add(time.Hour))
	if _, err := repo.RevokeAllForUser(ctx, "u2"); err != nil {
		t.Fatal(err)
	}

	n, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteExpired() removed %d, want 1", n)
	}
	if _, err := repo.FindActiveByTokenHash(ctx, "live", now); err != nil {
		t.Errorf("live session removed: %v", err)
	}

	var revoked DBRefreshSession
	if err := db.Where("token_hash = ?", "revoked").First(&revoked).Error; err != nil {
		t.Fatalf("revoked session removed before expiry: %v", err)
	}
	if !revoked.Revoked {
		t.Error("session should stay revoked")
	}
}
