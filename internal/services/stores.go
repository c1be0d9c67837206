package services

import (
	"context"
	"time"

	"github.com/sampogi19/SafeSpace/internal/model"
)

// Store contracts satisfied by internal/repository. Services depend on
// these so tests can swap in fakes.

type UserStore interface {
	CreateUser(ctx context.Context, email, passwordhash string) (int64, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	MarkVerified(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, passwordhash, code string) error
}

type OTPStore interface {
	Upsert(ctx context.Context, email, purpose, code string, exp time.Time) error
	Get(ctx context.Context, email, purpose string) (*model.OTPCode, error)
	Delete(ctx context.Context, email, purpose string) error
}

type PostStore interface {
	Create(ctx context.Context, userID int64, content string) (*model.Post, error)
	List(ctx context.Context) ([]model.PostWithAuthor, error)
	Exists(ctx context.Context, postID int64) (bool, error)
	UpdateContent(ctx context.Context, postID int64, content string) error
}

type CommentStore interface {
	Create(ctx context.Context, postID, userID int64, content string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
}
