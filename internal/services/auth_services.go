package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/sampogi19/SafeSpace/internal/model"
	"github.com/sampogi19/SafeSpace/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	// Enforced on password reset only; registration accepts any
	// non-empty password.
	MinPasswordLen = 6
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	ErrInvalidEmail       = errors.New("invalid email format")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrEmailNotVerified   = errors.New("account not verified")
	ErrFieldMismatch      = errors.New("passwords do not match")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
)

// OTPEngine is what AuthService needs from the OTP side.
type OTPEngine interface {
	Issue(ctx context.Context, purpose, email string) (string, error)
	Verify(ctx context.Context, purpose, email, submitted string) error
}

// AuthService drives the account lifecycle: unverified on registration,
// verified exactly once by OTP confirmation, password mutation gated by a
// second OTP purpose.
type AuthService struct {
	Users     UserStore
	Validator EmailValidator
	OTP       OTPEngine
}

func NewAuthService(u UserStore, v EmailValidator, otp OTPEngine) *AuthService {
	return &AuthService{Users: u, Validator: v, OTP: otp}
}

func (s *AuthService) validateEmail(email string) error {
	if email == "" || !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// Register creates an unverified account and dispatches a registration
// OTP. The account row is not rolled back when dispatch fails; the user
// can re-request a code.
func (s *AuthService) Register(ctx context.Context, email, password string) (int64, error) {
	if err := s.validateEmail(email); err != nil {
		return 0, err
	}
	if password == "" {
		return 0, errors.New("password is required")
	}
	if err := s.Validator.Validate(ctx, email); err != nil {
		return 0, err
	}
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicateEmail
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	id, err := s.Users.CreateUser(ctx, email, string(hash))
	if err != nil {
		return 0, err
	}
	if _, err := s.OTP.Issue(ctx, model.OTPPurposeRegistration, email); err != nil {
		return id, err
	}
	return id, nil
}

// ConfirmRegistration flips is_verified exactly once on a valid code. The
// code is not consumed, so re-submitting it within the window is
// harmless.
func (s *AuthService) ConfirmRegistration(ctx context.Context, email, code string) error {
	if err := s.OTP.Verify(ctx, model.OTPPurposeRegistration, email, code); err != nil {
		return err
	}
	return s.Users.MarkVerified(ctx, email)
}

// Login authenticates and returns the user with the hash zeroed out.
// NotFound, InvalidCredentials and EmailNotVerified are reported
// distinctly so the client can offer the right next step.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, ErrEmailNotVerified
	}
	u.PasswordHash = ""
	return u, nil
}

// RequestPasswordReset issues a recovery OTP, overwriting any previous
// recovery code for the account.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	_, err = s.OTP.Issue(ctx, model.OTPPurposeRecovery, email)
	return err
}

// ConfirmPasswordResetOTP is a read-only check that lets the client gate
// its flow before collecting the new password. ResetPassword re-validates
// regardless, since nothing binds the two calls.
func (s *AuthService) ConfirmPasswordResetOTP(ctx context.Context, email, code string) error {
	return s.OTP.Verify(ctx, model.OTPPurposeRecovery, email, code)
}

// ResetPassword validates the fields, re-validates the recovery OTP, then
// stores the new hash and consumes the code atomically. A code that was
// already consumed or replaced loses the race and reads as a mismatch.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrFieldMismatch
	}
	if len(newPassword) < MinPasswordLen {
		return ErrWeakPassword
	}
	if err := s.OTP.Verify(ctx, model.OTPPurposeRecovery, email, code); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.Users.ResetPassword(ctx, email, string(hash), code); err != nil {
		if errors.Is(err, repository.ErrOTPConsumed) {
			return ErrOTPMismatch
		}
		return err
	}
	return nil
}
