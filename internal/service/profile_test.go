package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msomdec/cyber-thread/internal/domain"
	"github.com/msomdec/cyber-thread/internal/service"
)

func TestProfileService_GetProfile(t *testing.T) {
	db := newTestDB(t)
	profiles := service.NewProfileService(db.Users(), db.Posts())
	posts := service.NewPostService(db.Posts())
	ctx := context.Background()
	user := createUser(t, db, "profiled")

	if _, err := posts.Create(ctx, user.ID, "mine", ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, list, err := profiles.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Username != "profiled" {
		t.Fatalf("expected username profiled, got %q", got.Username)
	}
	if len(list) != 1 || list[0].Content != "mine" {
		t.Fatalf("unexpected posts %+v", list)
	}

	if _, _, err := profiles.GetProfile(ctx, 424242); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileService_UpdateBio(t *testing.T) {
	db := newTestDB(t)
	profiles := service.NewProfileService(db.Users(), db.Posts())
	ctx := context.Background()
	user := createUser(t, db, "bio")
	other := createUser(t, db, "other")

	if err := profiles.UpdateBio(ctx, other.ID, user.ID, "not yours"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := profiles.UpdateBio(ctx, user.ID, user.ID, strings.Repeat("b", 501)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if err := profiles.UpdateBio(ctx, user.ID, user.ID, "  writes Go  "); err != nil {
		t.Fatalf("UpdateBio: %v", err)
	}

	got, err := profiles.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Bio != "writes Go" {
		t.Fatalf("expected trimmed bio, got %q", got.Bio)
	}
}

func TestProfileService_UpdatePhoto(t *testing.T) {
	db := newTestDB(t)
	profiles := service.NewProfileService(db.Users(), db.Posts())
	ctx := context.Background()
	user := createUser(t, db, "photo")

	if err := profiles.UpdatePhoto(ctx, user.ID+1, user.ID, "https://x"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := profiles.UpdatePhoto(ctx, user.ID, user.ID, "https://media.example.com/me.png"); err != nil {
		t.Fatalf("UpdatePhoto: %v", err)
	}

	got, err := profiles.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.ProfileURL != "https://media.example.com/me.png" {
		t.Fatalf("unexpected profile url %q", got.ProfileURL)
	}
}
