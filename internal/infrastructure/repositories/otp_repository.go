package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhinay-x/note-maker/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository using GORM
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// NewOTPRepository creates a new OTP ledger
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// Create implements domain.OTPRepository
func (r *OTPRepositoryImpl) Create(ctx context.Context, code *domain.OneTimeCode) error {
	if code.ID == "" {
		code.ID = uuid.NewString()
	}
	row := &DBOneTimeCode{
		ID:        code.ID,
		Email:     domain.NormalizeEmail(code.Email),
		Code:      code.Code,
		Purpose:   string(code.Purpose),
		ExpiresAt: code.ExpiresAt,
		Used:      code.Used,
		CreatedAt: code.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	code.CreatedAt = row.CreatedAt
	return nil
}

// FindLatestActive implements domain.OTPRepository
func (r *OTPRepositoryImpl) FindLatestActive(ctx context.Context, email, code string, purpose domain.OTPPurpose, now time.Time) (*domain.OneTimeCode, error) {
	var row DBOneTimeCode
	err := r.match(ctx, email, code, purpose).
		Where("used = ? AND expires_at > ?", false, now).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}
	return toOneTimeCode(&row), nil
}

// FindLatest implements domain.OTPRepository
func (r *OTPRepositoryImpl) FindLatest(ctx context.Context, email, code string, purpose domain.OTPPurpose) (*domain.OneTimeCode, error) {
	var row DBOneTimeCode
	err := r.match(ctx, email, code, purpose).Order("created_at DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}
	return toOneTimeCode(&row), nil
}

// MarkUsed implements domain.OTPRepository
func (r *OTPRepositoryImpl) MarkUsed(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&DBOneTimeCode{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOTPAlreadyUsed
	}
	return nil
}

// DeleteExpired implements domain.OTPRepository
func (r *OTPRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&DBOneTimeCode{})
	return res.RowsAffected, res.Error
}

func (r *OTPRepositoryImpl) match(ctx context.Context, email, code string, purpose domain.OTPPurpose) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("email = ? AND code = ? AND purpose = ?", domain.NormalizeEmail(email), code, string(purpose))
}

func toOneTimeCode(row *DBOneTimeCode) *domain.OneTimeCode {
	return &domain.OneTimeCode{
		ID:        row.ID,
		Email:     row.Email,
		Code:      row.Code,
		Purpose:   domain.OTPPurpose(row.Purpose),
		ExpiresAt: row.ExpiresAt,
		Used:      row.Used,
		CreatedAt: row.CreatedAt,
	}
}
