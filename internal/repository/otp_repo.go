package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sampogi19/SafeSpace/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OTPRepository struct {
	db *pgxpool.Pool
}

func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{db: db}
}

// Upsert overwrites the live code for (email, purpose). The previous code
// for that purpose stops working the moment this commits.
func (r *OTPRepository) Upsert(ctx context.Context, email, purpose, code string, exp time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO otp_codes (email, purpose, code, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email, purpose)
		DO UPDATE SET code = EXCLUDED.code, expires_at = EXCLUDED.expires_at, created_at = now()
	`, email, purpose, code, exp)
	return err
}

// Get returns the live code for (email, purpose), or nil when none exists.
func (r *OTPRepository) Get(ctx context.Context, email, purpose string) (*model.OTPCode, error) {
	var o model.OTPCode
	err := r.db.QueryRow(ctx, `
		SELECT email, purpose, code, expires_at, created_at
		FROM otp_codes
		WHERE email = $1 AND purpose = $2
	`, email, purpose).Scan(&o.Email, &o.Purpose, &o.Code, &o.ExpiresAt, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *OTPRepository) Delete(ctx context.Context, email, purpose string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM otp_codes WHERE email = $1 AND purpose = $2`, email, purpose)
	return err
}
