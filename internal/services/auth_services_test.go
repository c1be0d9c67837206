package services

import (
	"context"
	"testing"
	"time"

	"github.com/sampogi19/SafeSpace/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserStore, *fakeOTPEngine) {
	t.Helper()
	otps := newFakeOTPStore()
	users := newFakeUserStore(otps)
	engine := &fakeOTPEngine{issueCode: "123456"}
	return NewAuthService(users, NewLocalValidator(), engine), users, engine
}

func TestRegister_CreatesUnverifiedAndIssuesOTP(t *testing.T) {
	svc, users, engine := newTestAuthService(t)

	id, err := svc.Register(context.Background(), "alice@x.edu", "secret1")
	require.NoError(t, err)
	assert.NotZero(t, id)

	u, err := users.GetByEmail(context.Background(), "alice@x.edu")
	require.NoError(t, err)
	assert.False(t, u.IsVerified)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	require.Len(t, engine.issued, 1)
	assert.Equal(t, model.OTPPurposeRegistration+" alice@x.edu", engine.issued[0])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	_, err := svc.Register(context.Background(), "alice@x.edu", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice@x.edu", "other")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc, _, engine := newTestAuthService(t)
	_, err := svc.Register(context.Background(), "not-an-email", "secret1")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Empty(t, engine.issued)
}

func TestConfirmRegistration_FlipsVerifiedOnce(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	_, err := svc.Register(context.Background(), "alice@x.edu", "secret1")
	require.NoError(t, err)

	require.NoError(t, svc.ConfirmRegistration(context.Background(), "alice@x.edu", "123456"))
	u, _ := users.GetByEmail(context.Background(), "alice@x.edu")
	assert.True(t, u.IsVerified)
}

func TestConfirmRegistration_FailureDoesNotMutate(t *testing.T) {
	svc, users, engine := newTestAuthService(t)
	_, err := svc.Register(context.Background(), "alice@x.edu", "secret1")
	require.NoError(t, err)

	engine.verifyErr = ErrOTPMismatch
	assert.ErrorIs(t, svc.ConfirmRegistration(context.Background(), "alice@x.edu", "999999"), ErrOTPMismatch)
	u, _ := users.GetByEmail(context.Background(), "alice@x.edu")
	assert.False(t, u.IsVerified)
}

func TestLogin_Outcomes(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("rightpass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	users.CreateUser(context.Background(), "bob@x.edu", string(hash))

	_, err = svc.Login(context.Background(), "ghost@x.edu", "whatever")
	assert.ErrorIs(t, err, ErrNotFound)

	// Wrong password on an existing account is InvalidCredentials, never
	// NotFound.
	_, err = svc.Login(context.Background(), "bob@x.edu", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "bob@x.edu", "rightpass")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	users.MarkVerified(context.Background(), "bob@x.edu")
	u, err := svc.Login(context.Background(), "bob@x.edu", "rightpass")
	require.NoError(t, err)
	assert.Equal(t, "bob@x.edu", u.Email)
	assert.Empty(t, u.PasswordHash)
}

func TestRequestPasswordReset(t *testing.T) {
	svc, _, engine := newTestAuthService(t)

	assert.ErrorIs(t, svc.RequestPasswordReset(context.Background(), "ghost@x.edu"), ErrNotFound)

	_, err := svc.Register(context.Background(), "alice@x.edu", "secret1")
	require.NoError(t, err)
	require.NoError(t, svc.RequestPasswordReset(context.Background(), "alice@x.edu"))
	assert.Contains(t, engine.issued, model.OTPPurposeRecovery+" alice@x.edu")
}

func TestResetPassword_FieldValidation(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	_, err := svc.Register(context.Background(), "alice@x.edu", "secret1")
	require.NoError(t, err)
	before, _ := users.GetByEmail(context.Background(), "alice@x.edu")

	err = svc.ResetPassword(context.Background(), "alice@x.edu", "123456", "newpass1", "different")
	assert.ErrorIs(t, err, ErrFieldMismatch)

	err = svc.ResetPassword(context.Background(), "alice@x.edu", "123456", "short", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	// Neither failure may touch the stored hash.
	after, _ := users.GetByEmail(context.Background(), "alice@x.edu")
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
	assert.Nil(t, after.LastPasswordResetAt)
}

// TestPasswordRecoveryFlow wires the real OTP engine over the fakes and
// runs the whole journey: register, verify, recover, reset, and a replay
// of the consumed code.
func TestPasswordRecoveryFlow(t *testing.T) {
	otps := newFakeOTPStore()
	users := newFakeUserStore(otps)
	mailer := &fakeMailer{}
	engine := NewOTPService(users, otps, mailer, 3*time.Minute, 10*time.Minute)
	svc := NewAuthService(users, NewLocalValidator(), engine)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@x.edu", "secret1")
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	require.NoError(t, svc.ConfirmRegistration(ctx, "alice@x.edu", mailer.sent[0].Code))

	require.NoError(t, svc.RequestPasswordReset(ctx, "alice@x.edu"))
	require.Len(t, mailer.sent, 2)
	code := mailer.sent[1].Code

	require.NoError(t, svc.ConfirmPasswordResetOTP(ctx, "alice@x.edu", code))
	require.NoError(t, svc.ResetPassword(ctx, "alice@x.edu", code, "newpass1", "newpass1"))

	u, err := svc.Login(ctx, "alice@x.edu", "newpass1")
	require.NoError(t, err)
	assert.NotNil(t, u.LastPasswordResetAt)
	_, err = svc.Login(ctx, "alice@x.edu", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// The consumed code must never reset twice.
	err = svc.ResetPassword(ctx, "alice@x.edu", code, "another1", "another1")
	assert.ErrorIs(t, err, ErrOTPMismatch)
	_, err = svc.Login(ctx, "alice@x.edu", "newpass1")
	assert.NoError(t, err)
}
