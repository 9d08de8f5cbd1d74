package view_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"

	"github.com/msomdec/cyber-thread/internal/domain"
	"github.com/msomdec/cyber-thread/internal/view"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestLoginPage_ShowsErrorAndEscapesEmail(t *testing.T) {
	html := renderString(t, view.LoginPage(view.AuthForm{
		Email: `"><script>alert(1)</script>`,
		Error: "Invalid email or password.",
	}))

	if !strings.Contains(html, "Invalid email or password.") {
		t.Fatal("expected error message in login page")
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatal("email was not escaped")
	}
}

func TestFeedPage_EscapesContentAndFormatsTime(t *testing.T) {
	viewer := &domain.User{ID: 1, Username: "alice"}
	posts := []domain.PostWithAuthor{{
		Post: domain.Post{
			ID:        "p1",
			UserID:    2,
			Content:   "<b>bold</b>",
			MediaURL:  "javascript:alert(1)",
			CreatedAt: time.Now().Add(-3 * time.Hour),
		},
		AuthorUsername: "bob",
	}}

	html := renderString(t, view.FeedPage(viewer, viewer.ID, posts))

	if strings.Contains(html, "<b>bold</b>") {
		t.Fatal("post content was not escaped")
	}
	if !strings.Contains(html, "&lt;b&gt;bold&lt;/b&gt;") {
		t.Fatal("expected escaped post content")
	}
	if strings.Contains(html, `src="javascript:`) {
		t.Fatal("unsafe media url was rendered")
	}
	if !strings.Contains(html, "3 hours ago") {
		t.Fatal("expected humanized timestamp")
	}
	if !strings.Contains(html, `action="/users/1/posts"`) {
		t.Fatal("expected compose form on own feed")
	}
}

func TestFeedPage_NoComposeFormForOthers(t *testing.T) {
	html := renderString(t, view.FeedPage(nil, 7, nil))
	if strings.Contains(html, `enctype="multipart/form-data"`) {
		t.Fatal("compose form should not render for anonymous viewers")
	}
	if !strings.Contains(html, "No posts yet.") {
		t.Fatal("expected empty feed message")
	}
}

func TestProfilePage_OwnerControls(t *testing.T) {
	user := &domain.User{ID: 3, Username: "carol", Bio: "hi there", CreatedAt: time.Now()}

	owner := renderString(t, view.ProfilePage(user, user, nil))
	if !strings.Contains(owner, `action="/profile/3/photo"`) {
		t.Fatal("expected photo form for owner")
	}

	visitor := renderString(t, view.ProfilePage(&domain.User{ID: 4}, user, nil))
	if strings.Contains(visitor, `action="/profile/3/photo"`) {
		t.Fatal("photo form should not render for visitors")
	}
	if !strings.Contains(visitor, "hi there") {
		t.Fatal("expected bio on profile")
	}
}

func TestPostPage_EditControlsForAuthor(t *testing.T) {
	post := &domain.PostWithAuthor{
		Post:           domain.Post{ID: "abc", UserID: 5, Content: "hello", CreatedAt: time.Now()},
		AuthorUsername: "dave",
	}

	html := renderString(t, view.PostPage(&domain.User{ID: 5}, post))
	if !strings.Contains(html, "/posts/abc?_method=PUT") {
		t.Fatal("expected edit form for author")
	}

	html = renderString(t, view.PostPage(nil, post))
	if strings.Contains(html, "_method=DELETE") {
		t.Fatal("delete form should not render for anonymous viewers")
	}
}

func TestErrorPage(t *testing.T) {
	html := renderString(t, view.ErrorPage(nil, 404, "Post not found."))
	if !strings.Contains(html, "404 Not Found") || !strings.Contains(html, "Post not found.") {
		t.Fatalf("unexpected error page: %s", html)
	}
}
