package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/sampogi19/SafeSpace/internal/model"
)

var (
	ErrNotFound        = errors.New("user not found")
	ErrAlreadyVerified = errors.New("user is already verified")
	ErrOTPMismatch     = errors.New("invalid otp")
	ErrOTPExpired      = errors.New("otp expired")
)

// OTPService issues and verifies one-time codes. Codes live in their own
// (email, purpose) slot, so registration and recovery never invalidate
// each other.
type OTPService struct {
	Users  UserStore
	Codes  OTPStore
	Mailer EmailSender

	RegistrationTTL time.Duration
	RecoveryTTL     time.Duration

	now func() time.Time
}

func NewOTPService(users UserStore, codes OTPStore, mailer EmailSender, registrationTTL, recoveryTTL time.Duration) *OTPService {
	return &OTPService{
		Users:           users,
		Codes:           codes,
		Mailer:          mailer,
		RegistrationTTL: registrationTTL,
		RecoveryTTL:     recoveryTTL,
		now:             time.Now,
	}
}

func (s *OTPService) ttl(purpose string) time.Duration {
	if purpose == model.OTPPurposeRecovery {
		return s.RecoveryTTL
	}
	return s.RegistrationTTL
}

func subjectFor(purpose string) string {
	if purpose == model.OTPPurposeRecovery {
		return "Your OTP for Password Reset"
	}
	return "Your OTP for Registration"
}

// Issue generates a fresh 6-digit code, overwrites the slot for
// (email, purpose) and dispatches it. If the mailer reports failure the
// just-written code is removed again, so an undelivered code can never
// be redeemed.
func (s *OTPService) Issue(ctx context.Context, purpose, email string) (string, error) {
	code := fmt.Sprintf("%d", rand.IntN(900000)+100000)
	exp := s.now().Add(s.ttl(purpose))

	if err := s.Codes.Upsert(ctx, email, purpose, code, exp); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}

	if err := s.Mailer.SendOTPEmail(ctx, email, subjectFor(purpose), code); err != nil {
		if derr := s.Codes.Delete(ctx, email, purpose); derr != nil {
			slog.Error("rollback undelivered otp", "email", email, "purpose", purpose, "error", derr)
		}
		return "", fmt.Errorf("send otp email: %w", err)
	}
	return code, nil
}

// Verify walks the outcome ladder: NotFound, AlreadyVerified
// (registration only), Mismatch, Expired, then valid. It never mutates
// state; a valid registration code stays redeemable until it is
// overwritten or expires.
func (s *OTPService) Verify(ctx context.Context, purpose, email, submitted string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return ErrNotFound
	}
	if purpose == model.OTPPurposeRegistration && u.IsVerified {
		return ErrAlreadyVerified
	}

	o, err := s.Codes.Get(ctx, email, purpose)
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}
	// Plain string equality; timing-safe comparison is an open product
	// decision.
	if o == nil || o.Code != submitted {
		return ErrOTPMismatch
	}
	if s.now().After(o.ExpiresAt) {
		return ErrOTPExpired
	}
	return nil
}
