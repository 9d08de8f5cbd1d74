// Package storetest exercises a migrated *sqlstore.DB against the
// repository contract. Backend packages call Run from their tests so every
// dialect is held to the same behavior.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/msomdec/cyber-thread/internal/domain"
	"github.com/msomdec/cyber-thread/internal/repository/sqlstore"
)

// Run deletes all rows from users and posts, then runs the contract
// subtests against db.
func Run(t *testing.T, db *sqlstore.DB) {
	t.Helper()
	ctx := context.Background()

	for _, table := range []string{"posts", "users"} {
		if _, err := db.SqlDB.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("reset %s: %v", table, err)
		}
	}

	users := db.Users()
	posts := db.Posts()

	alice := &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	bob := &domain.User{Username: "bob", Email: "bob@example.com", PasswordHash: "hash"}

	t.Run("CreateUser", func(t *testing.T) {
		for _, u := range []*domain.User{alice, bob} {
			if err := users.Create(ctx, u); err != nil {
				t.Fatalf("Create %s: %v", u.Username, err)
			}
			if u.ID == 0 {
				t.Fatalf("expected ID for %s", u.Username)
			}
		}
		got, err := users.GetByID(ctx, alice.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Email != alice.Email {
			t.Fatalf("expected email %q, got %q", alice.Email, got.Email)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		dup := &domain.User{Username: "alice2", Email: alice.Email, PasswordHash: "hash"}
		if err := users.Create(ctx, dup); !errors.Is(err, domain.ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})

	t.Run("UserNotFound", func(t *testing.T) {
		if _, err := users.GetByID(ctx, -1); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateBio", func(t *testing.T) {
		if err := users.UpdateBio(ctx, alice.ID, "hi"); err != nil {
			t.Fatalf("UpdateBio: %v", err)
		}
		// Same value again still matches a row.
		if err := users.UpdateBio(ctx, alice.ID, "hi"); err != nil {
			t.Fatalf("UpdateBio unchanged: %v", err)
		}
		got, err := users.GetByID(ctx, alice.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Bio != "hi" {
			t.Fatalf("expected bio hi, got %q", got.Bio)
		}
	})

	t.Run("FeedOrder", func(t *testing.T) {
		base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		for _, p := range []domain.Post{
			{ID: uuid.NewString(), UserID: alice.ID, Content: "second", CreatedAt: base.Add(time.Hour)},
			{ID: uuid.NewString(), UserID: bob.ID, Content: "first", CreatedAt: base},
			{ID: uuid.NewString(), UserID: bob.ID, Content: "third", CreatedAt: base.Add(2 * time.Hour)},
		} {
			if err := posts.Create(ctx, &p); err != nil {
				t.Fatalf("Create: %v", err)
			}
		}
		feed, err := posts.ListFeed(ctx)
		if err != nil {
			t.Fatalf("ListFeed: %v", err)
		}
		want := []string{"third", "second", "first"}
		if len(feed) != len(want) {
			t.Fatalf("expected %d posts, got %d", len(want), len(feed))
		}
		for i, content := range want {
			if feed[i].Content != content {
				t.Fatalf("feed[%d]: expected %q, got %q", i, content, feed[i].Content)
			}
		}
	})

	t.Run("PostLifecycle", func(t *testing.T) {
		id := uuid.NewString()
		if err := posts.Create(ctx, &domain.Post{ID: id, UserID: alice.ID, Content: "draft"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if err := posts.UpdateContent(ctx, id, "final"); err != nil {
			t.Fatalf("UpdateContent: %v", err)
		}
		got, err := posts.GetByID(ctx, id)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Content != "final" || got.AuthorUsername != "alice" {
			t.Fatalf("unexpected post: %+v", got)
		}
		if err := posts.Delete(ctx, id); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := posts.GetByID(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("PostUnknownUser", func(t *testing.T) {
		err := posts.Create(ctx, &domain.Post{ID: uuid.NewString(), UserID: alice.ID + bob.ID + 1000, Content: "x"})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
