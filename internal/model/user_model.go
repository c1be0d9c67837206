package model

import "time"

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never JSON-encode
	IsVerified   bool       `json:"is_verified"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`

	LastPasswordResetAt *time.Time `json:"last_password_reset_at,omitempty"`
}
