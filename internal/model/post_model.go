package model

import "time"

type Post struct {
	PostID       int64      `json:"post_id"`
	UserID       int64      `json:"user_id"`
	Content      string     `json:"post_content"`
	CommentCount int        `json:"comment_count"`
	CreatedAt    time.Time  `json:"post_created_at"`
	UpdatedAt    *time.Time `json:"post_updated_at,omitempty"`
}

// PostWithAuthor is the feed row: a post joined with its author's email.
type PostWithAuthor struct {
	Post
	AuthorEmail string `json:"email"`
}
