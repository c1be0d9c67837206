package repository

import (
	"context"
	"errors"

	"github.com/sampogi19/SafeSpace/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrOTPConsumed is returned by ResetPassword when the recovery code
	// was already consumed or replaced by the time the reset committed.
	ErrOTPConsumed = errors.New("otp code already consumed")
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts a new unverified user and returns the created id
func (r *UserRepository) CreateUser(ctx context.Context, email, passwordhash string) (int64, error) {
	var id int64
	query := `INSERT INTO users (email, password_hash, is_verified) VALUES ($1, $2, FALSE) RETURNING id`
	if err := r.DB.QueryRow(ctx, query, email, passwordhash).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := `SELECT id, email, password_hash, is_verified, last_password_reset_at, created_at
			FROM users
			WHERE email=$1`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsVerified, &u.LastPasswordResetAt, &u.CreatedAt); err != nil {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// MarkVerified flips is_verified exactly once. Zero affected rows means
// another request already flipped it, which is not an error here: the
// caller has already walked the outcome ladder.
func (r *UserRepository) MarkVerified(ctx context.Context, email string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE users
		SET is_verified = TRUE
		WHERE email = $1 AND is_verified = FALSE
	`, email)
	return err
}

// ResetPassword stores the new hash and consumes the recovery code in one
// transaction. The DELETE is conditional on the code still matching, so a
// reset racing a fresh issue (or a second reset reusing a consumed code)
// deletes nothing and the whole transaction is rolled back.
func (r *UserRepository) ResetPassword(ctx context.Context, email, passwordhash, code string) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, last_password_reset_at = now()
		WHERE email = $2
	`, passwordhash, email); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		DELETE FROM otp_codes
		WHERE email = $1 AND purpose = $2 AND code = $3
	`, email, model.OTPPurposeRecovery, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOTPConsumed
	}

	return tx.Commit(ctx)
}
