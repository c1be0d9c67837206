package repository

import (
	"context"
	"fmt"

	"github.com/sampogi19/SafeSpace/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	DB *pgxpool.Pool
}

func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{DB: db}
}

// Create inserts the comment and bumps the post's comment_count in one
// transaction, so two concurrent comments on the same post both land in
// the counter. Zero affected rows on the bump means the post vanished
// between the caller's existence check and here; the insert rolls back.
func (r *CommentRepository) Create(ctx context.Context, postID, userID int64, content string) (*model.Comment, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	c := &model.Comment{PostID: postID, UserID: userID, Content: content}
	if err := tx.QueryRow(ctx, `
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING comment_id, created_at
	`, postID, userID, content).Scan(&c.CommentID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE posts SET comment_count = comment_count + 1 WHERE post_id = $1`, postID)
	if err != nil {
		return nil, fmt.Errorf("increment comment count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return c, nil
}

// ListByPost returns the post's comments, most recent first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT comment_id, post_id, user_id, content, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.CommentID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
