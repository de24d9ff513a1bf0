package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/abhinay-x/note-maker/domain"
)

// OTPServiceImpl implements domain.OTPService on the OTP ledger
type OTPServiceImpl struct {
	otpRepo         domain.OTPRepository
	notificationSvc domain.NotificationService
	config          OTPConfig
}

type OTPConfig struct {
	Length int
	TTL    time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo domain.OTPRepository, notificationSvc domain.NotificationService, config OTPConfig) domain.OTPService {
	if config.Length <= 0 {
		config.Length = 6
	}
	if config.TTL <= 0 {
		config.TTL = 10 * time.Minute
	}
	return &OTPServiceImpl{
		otpRepo:         otpRepo,
		notificationSvc: notificationSvc,
		config:          config,
	}
}

// Issue implements domain.OTPService. The code is stored before it is sent;
// a delivery failure is returned together with the stored code.
func (s *OTPServiceImpl) Issue(ctx context.Context, email string, purpose domain.OTPPurpose, now time.Time) (*domain.OneTimeCode, error) {
	code, err := s.generateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP code: %w", err)
	}

	otp := &domain.OneTimeCode{
		Email:     domain.NormalizeEmail(email),
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: now.Add(s.config.TTL),
		CreatedAt: now,
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return nil, fmt.Errorf("failed to store OTP: %w", err)
	}

	if err := s.notificationSvc.SendOTP(ctx, otp.Email, code, purpose); err != nil {
		return otp, fmt.Errorf("failed to send OTP email: %w", err)
	}

	return otp, nil
}

// Consume implements domain.OTPService
func (s *OTPServiceImpl) Consume(ctx context.Context, email, code string, purpose domain.OTPPurpose, now time.Time) (*domain.OneTimeCode, error) {
	otp, err := s.otpRepo.FindLatestActive(ctx, email, code, purpose, now)
	if errors.Is(err, domain.ErrOTPNotFound) {
		return nil, s.diagnose(ctx, email, code, purpose, now)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up OTP: %w", err)
	}

	// a concurrent request may claim the same row between lookup and update
	if err := s.otpRepo.MarkUsed(ctx, otp.ID); err != nil {
		if errors.Is(err, domain.ErrOTPAlreadyUsed) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to mark OTP used: %w", err)
	}

	otp.Used = true
	return otp, nil
}

// Inspect implements domain.OTPService
func (s *OTPServiceImpl) Inspect(ctx context.Context, email, code string, purpose domain.OTPPurpose, now time.Time) error {
	latest, err := s.otpRepo.FindLatest(ctx, email, code, purpose)
	if errors.Is(err, domain.ErrOTPNotFound) {
		return domain.ErrOTPInvalid
	}
	if err != nil {
		return fmt.Errorf("failed to look up OTP: %w", err)
	}

	switch {
	case latest.Usable(now):
		return nil
	case latest.Used:
		return domain.ErrOTPAlreadyUsed
	default:
		return domain.ErrOTPExpired
	}
}

// diagnose explains why no usable code matched. A code that turns usable
// between the two lookups still counts as invalid.
func (s *OTPServiceImpl) diagnose(ctx context.Context, email, code string, purpose domain.OTPPurpose, now time.Time) error {
	if err := s.Inspect(ctx, email, code, purpose, now); err != nil {
		return err
	}
	return domain.ErrOTPInvalid
}

// generateSecureCode returns Length decimal digits without a leading zero.
func (s *OTPServiceImpl) generateSecureCode() (string, error) {
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(s.config.Length-1)), nil)
	span := new(big.Int).Mul(low, big.NewInt(9))

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return n.Add(n, low).String(), nil
}
