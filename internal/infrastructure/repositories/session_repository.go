package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhinay-x/note-maker/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using GORM
type SessionRepositoryImpl struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &SessionRepositoryImpl{db: db}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.RefreshSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	row := &DBRefreshSession{
		ID:        session.ID,
		TokenHash: session.TokenHash,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
		Revoked:   session.Revoked,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	session.CreatedAt = row.CreatedAt
	session.UpdatedAt = row.UpdatedAt
	return nil
}

// FindActiveByTokenHash implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindActiveByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.RefreshSession, error) {
	var row DBRefreshSession
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND revoked = ? AND expires_at > ?", tokenHash, false, now).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return &domain.RefreshSession{
		ID:        row.ID,
		TokenHash: row.TokenHash,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt,
		Revoked:   row.Revoked,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// Rotate implements domain.SessionRepository
func (r *SessionRepositoryImpl) Rotate(ctx context.Context, sessionID, oldHash, newHash string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&DBRefreshSession{}).
		Where("id = ? AND token_hash = ? AND revoked = ?", sessionID, oldHash, false).
		Updates(map[string]any{"token_hash": newHash, "expires_at": expiresAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// RevokeAllForUser implements domain.SessionRepository
func (r *SessionRepositoryImpl) RevokeAllForUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&DBRefreshSession{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true)
	return res.RowsAffected, res.Error
}

// DeleteByTokenHash implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	res := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).Delete(&DBRefreshSession{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes sessions past their expiry. Revoked sessions are
// kept until then as the record of the revocation.
func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&DBRefreshSession{})
	return res.RowsAffected, res.Error
}
