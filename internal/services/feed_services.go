package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sampogi19/SafeSpace/internal/model"
	"github.com/sampogi19/SafeSpace/internal/repository"
)

var (
	ErrEmptyContent = errors.New("content is required")
	ErrPostNotFound = errors.New("post not found")
)

// FeedService creates posts and comments and keeps each post's
// comment_count in step with its comment rows.
type FeedService struct {
	Posts    PostStore
	Comments CommentStore
}

func NewFeedService(posts PostStore, comments CommentStore) *FeedService {
	return &FeedService{Posts: posts, Comments: comments}
}

func (s *FeedService) CreatePost(ctx context.Context, userID int64, content string) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	return s.Posts.Create(ctx, userID, content)
}

func (s *FeedService) ListPosts(ctx context.Context) ([]model.PostWithAuthor, error) {
	return s.Posts.List(ctx)
}

// CreateComment inserts the comment and bumps the counter as one unit;
// the store guarantees the two writes land together.
func (s *FeedService) CreateComment(ctx context.Context, postID, userID int64, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	exists, err := s.Posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostNotFound
	}
	c, err := s.Comments.Create(ctx, postID, userID, content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *FeedService) ListComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	return s.Comments.ListByPost(ctx, postID)
}

// UpdatePost overwrites the content and stamps the update time. Any
// authenticated caller may edit any post; ownership enforcement is an
// open product decision.
func (s *FeedService) UpdatePost(ctx context.Context, postID int64, content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	if err := s.Posts.UpdateContent(ctx, postID, content); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}
