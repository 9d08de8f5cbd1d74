package domain

import (
	"context"
	"time"
)

// Post is a single entry in the feed. IDs are random tokens generated by
// the caller before insert.
type Post struct {
	ID        string
	UserID    int64
	Content   string
	MediaURL  string // Empty when the post has no image
	CreatedAt time.Time
}

// PostWithAuthor is a post joined with the fields of its author that the
// feed and detail pages display.
type PostWithAuthor struct {
	Post
	AuthorUsername string
	AuthorEmail    string
	AuthorBio      string
	AuthorJoined   time.Time
}

// PostRepository defines persistence operations for posts. All list
// operations return posts newest first.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id string) (*PostWithAuthor, error)
	ListFeed(ctx context.Context) ([]PostWithAuthor, error)
	ListByUser(ctx context.Context, userID int64) ([]Post, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
}
