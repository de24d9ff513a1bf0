package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abhinay-x/note-maker/domain"
)

// setupTestDB creates an in-memory SQLite database for testing. A single
// connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(Models()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func TestUserRepositoryImpl_CreateWithHash(t *testing.T) {
	tests := []struct {
		name          string
		setupData     func(t *testing.T, repo domain.UserRepository)
		user          *domain.User
		expectedError error
	}{
		{
			name: "successful create",
			user: &domain.User{
				Email:         "  Jo@Example.com ",
				PasswordHash:  "$2a$12$hash",
				FirstName:     "Jo",
				LastName:      "Li",
				EmailVerified: true,
			},
		},
		{
			name: "duplicate email",
			setupData: func(t *testing.T, repo domain.UserRepository) {
				if err := repo.CreateWithHash(context.Background(), &domain.User{Email: "jo@example.com", PasswordHash: "$2a$12$x"}); err != nil {
					t.Fatalf("seed user: %v", err)
				}
			},
			user:          &domain.User{Email: "JO@example.com", PasswordHash: "$2a$12$y"},
			expectedError: domain.ErrDuplicateEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewUserRepository(setupTestDB(t))
			if tt.setupData != nil {
				tt.setupData(t, repo)
			}

			err := repo.CreateWithHash(context.Background(), tt.user)
			if !errors.Is(err, tt.expectedError) {
				t.Fatalf("CreateWithHash() error = %v, want %v", err, tt.expectedError)
			}
			if tt.expectedError != nil {
				return
			}

			if tt.user.ID == "" {
				t.Error("expected an id to be assigned")
			}
			got, err := repo.FindByEmail(context.Background(), "jo@example.com")
			if err != nil {
				t.Fatalf("FindByEmail() error = %v", err)
			}
			if got.ID != tt.user.ID || got.FirstName != "Jo" || !got.EmailVerified || got.PasswordHash != "$2a$12$hash" {
				t.Errorf("FindByEmail() = %+v", got)
			}
		})
	}
}

func TestUserRepositoryImpl_CreateWithHash_RequiresHash(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	if err := repo.CreateWithHash(context.Background(), &domain.User{Email: "a@b.com"}); err == nil {
		t.Error("expected error for empty hash")
	}
}

func TestUserRepositoryImpl_FindByEmail_Missing(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	if _, err := repo.FindByEmail(context.Background(), "missing@b.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("FindByEmail(missing) error = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepositoryImpl_Mutations(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))
	user := &domain.User{Email: "a@b.com", PasswordHash: "$2a$12$old"}
	if err := repo.CreateWithHash(ctx, user); err != nil {
		t.Fatal(err)
	}

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.TouchLastLogin(ctx, user.ID, at); err != nil {
		t.Fatalf("TouchLastLogin() error = %v", err)
	}
	if err := repo.UpdatePasswordHash(ctx, user.ID, "$2a$12$new"); err != nil {
		t.Fatalf("UpdatePasswordHash() error = %v", err)
	}

	got, err := repo.FindByEmail(ctx, "a@b.com")
	if err != nil {
		t.Fatal(err)
	}
	if got.LastLoginAt == nil || !got.LastLoginAt.Equal(at) {
		t.Errorf("LastLoginAt = %v, want %v", got.LastLoginAt, at)
	}
	if got.PasswordHash != "$2a$12$new" {
		t.Errorf("PasswordHash = %q", got.PasswordHash)
	}

	if err := repo.TouchLastLogin(ctx, "missing", at); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("TouchLastLogin(missing) error = %v", err)
	}
	if err := repo.UpdatePasswordHash(ctx, "missing", "$2a$12$x"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("UpdatePasswordHash(missing) error = %v", err)
	}
	if err := repo.UpdatePasswordHash(ctx, user.ID, ""); err == nil {
		t.Error("expected error for empty hash")
	}
}
