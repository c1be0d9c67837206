package model

import "time"

// OTP purposes. Each (email, purpose) pair holds at most one live code,
// so a recovery request never clobbers an in-flight registration code.
const (
	OTPPurposeRegistration = "registration"
	OTPPurposeRecovery     = "recovery"
)

type OTPCode struct {
	Email     string
	Purpose   string
	Code      string
	ExpiresAt time.Time
	CreatedAt time.Time
}
