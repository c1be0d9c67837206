package repository

import (
	"context"

	"github.com/sampogi19/SafeSpace/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostRepository struct {
	DB *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{DB: db}
}

// Create inserts a post with a zero comment count and returns it with the
// generated id and timestamp.
func (r *PostRepository) Create(ctx context.Context, userID int64, content string) (*model.Post, error) {
	p := &model.Post{UserID: userID, Content: content}
	query := `INSERT INTO posts (user_id, post_content)
			VALUES ($1, $2)
			RETURNING post_id, comment_count, post_created_at`
	if err := r.DB.QueryRow(ctx, query, userID, content).Scan(&p.PostID, &p.CommentCount, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns every post joined with its author's email, most recent
// first. No pagination; the feed is expected to stay small.
func (r *PostRepository) List(ctx context.Context) ([]model.PostWithAuthor, error) {
	query := `SELECT p.post_id, p.user_id, p.post_content, p.comment_count,
				p.post_created_at, p.post_updated_at, u.email
			FROM posts p
			INNER JOIN users u ON p.user_id = u.id
			ORDER BY p.post_created_at DESC`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.PostWithAuthor{}
	for rows.Next() {
		var p model.PostWithAuthor
		if err := rows.Scan(&p.PostID, &p.UserID, &p.Content, &p.CommentCount, &p.CreatedAt, &p.UpdatedAt, &p.AuthorEmail); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PostRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM posts WHERE post_id=$1)`
	if err := r.DB.QueryRow(ctx, query, postID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateContent overwrites the content and stamps post_updated_at.
func (r *PostRepository) UpdateContent(ctx context.Context, postID int64, content string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE posts SET post_content=$1, post_updated_at=now() WHERE post_id=$2`,
		content, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
