package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/msomdec/cyber-thread/internal/domain"
)

const maxBioLength = 500

// ProfileService reads and edits user profiles.
type ProfileService struct {
	users domain.UserRepository
	posts domain.PostRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users domain.UserRepository, posts domain.PostRepository) *ProfileService {
	return &ProfileService{users: users, posts: posts}
}

// GetUser returns the user with the given ID.
func (s *ProfileService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetProfile returns a user and their posts, newest first. The two reads
// are not transactional.
func (s *ProfileService) GetProfile(ctx context.Context, id int64) (*domain.User, []domain.Post, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	posts, err := s.posts.ListByUser(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list posts: %w", err)
	}

	return user, posts, nil
}

// UpdateBio sets the bio of userID. Only the user may edit their own bio.
func (s *ProfileService) UpdateBio(ctx context.Context, actorID, userID int64, bio string) error {
	if actorID != userID {
		return domain.ErrForbidden
	}

	bio = strings.TrimSpace(bio)
	if utf8.RuneCountInString(bio) > maxBioLength {
		return fmt.Errorf("%w: bio is limited to %d characters", domain.ErrInvalidInput, maxBioLength)
	}

	if err := s.users.UpdateBio(ctx, userID, bio); err != nil {
		return fmt.Errorf("update bio: %w", err)
	}
	return nil
}

// UpdatePhoto sets the profile photo URL of userID.
func (s *ProfileService) UpdatePhoto(ctx context.Context, actorID, userID int64, url string) error {
	if actorID != userID {
		return domain.ErrForbidden
	}

	if err := s.users.UpdateProfileURL(ctx, userID, url); err != nil {
		return fmt.Errorf("update profile photo: %w", err)
	}
	return nil
}
