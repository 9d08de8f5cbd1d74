package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/msomdec/cyber-thread/internal/domain"
)

const maxPostLength = 5000

// PostService handles the feed and post lifecycle.
type PostService struct {
	posts domain.PostRepository
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// Feed returns every post, newest first, with author fields.
func (s *PostService) Feed(ctx context.Context) ([]domain.PostWithAuthor, error) {
	posts, err := s.posts.ListFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	return posts, nil
}

// ListByUser returns a user's posts, newest first.
func (s *PostService) ListByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	posts, err := s.posts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts by user: %w", err)
	}
	return posts, nil
}

// GetByID returns a single post with its author.
func (s *PostService) GetByID(ctx context.Context, id string) (*domain.PostWithAuthor, error) {
	return s.posts.GetByID(ctx, id)
}

// Create validates and stores a new post with a freshly generated ID.
// mediaURL may be empty.
func (s *PostService) Create(ctx context.Context, userID int64, content, mediaURL string) (*domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" && mediaURL == "" {
		return nil, fmt.Errorf("%w: a post needs text or an image", domain.ErrInvalidInput)
	}
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	post := &domain.Post{
		ID:       uuid.NewString(),
		UserID:   userID,
		Content:  content,
		MediaURL: mediaURL,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// UpdateContent replaces the text of a post owned by actorID.
func (s *PostService) UpdateContent(ctx context.Context, actorID int64, id, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	}
	if err := ValidateContent(content); err != nil {
		return err
	}

	if err := s.requireOwner(ctx, actorID, id); err != nil {
		return err
	}

	if err := s.posts.UpdateContent(ctx, id, content); err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post owned by actorID.
func (s *PostService) Delete(ctx context.Context, actorID int64, id string) error {
	if err := s.requireOwner(ctx, actorID, id); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *PostService) requireOwner(ctx context.Context, actorID int64, id string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get post: %w", err)
	}
	if post.UserID != actorID {
		return domain.ErrForbidden
	}
	return nil
}

// ValidateContent checks the length limit on post text.
func ValidateContent(content string) error {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) > maxPostLength {
		return fmt.Errorf("%w: posts are limited to %d characters", domain.ErrInvalidInput, maxPostLength)
	}
	return nil
}
