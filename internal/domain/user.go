package domain

import (
	"context"
	"time"
)

// User represents a registered member of the site.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Bio          string // Empty when never set
	ProfileURL   string // Public URL of the profile photo, empty when never set
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateBio(ctx context.Context, id int64, bio string) error
	UpdateProfileURL(ctx context.Context, id int64, url string) error
}
