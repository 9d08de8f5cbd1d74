package handler

import (
	"fmt"
	"net/http"

	"github.com/msomdec/cyber-thread/internal/service"
	"github.com/msomdec/cyber-thread/internal/view"
)

// PostHandler serves the feed and the post pages.
type PostHandler struct {
	posts    *service.PostService
	profiles *service.ProfileService
	media    *service.MediaService
	folder   string
}

// NewPostHandler creates a new PostHandler. Post images are uploaded under folder.
func NewPostHandler(posts *service.PostService, profiles *service.ProfileService, media *service.MediaService, folder string) *PostHandler {
	return &PostHandler{posts: posts, profiles: profiles, media: media, folder: folder}
}

// HandleFeed renders every post, newest first.
// GET /users/{id}/posts
func (h *PostHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if _, err := h.profiles.GetUser(r.Context(), userID); err != nil {
		handleError(w, r, "get feed user", err)
		return
	}

	posts, err := h.posts.Feed(r.Context())
	if err != nil {
		handleError(w, r, "list feed", err)
		return
	}

	renderPage(w, r, http.StatusOK, view.FeedPage(UserFromContext(r.Context()), userID, posts))
}

// HandleCreate stores a new post, uploading the optional image first.
// POST /users/{id}/posts
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		redirect(w, r, "/login")
		return
	}

	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	if userID != user.ID {
		renderStatus(w, r, http.StatusForbidden, "You can only post to your own feed.")
		return
	}

	if err := parseUploadForm(w, r, h.media); err != nil {
		handleError(w, r, "parse post form", err)
		return
	}

	content := r.FormValue("content")
	if err := service.ValidateContent(content); err != nil {
		handleError(w, r, "validate post", err)
		return
	}

	mediaURL, err := uploadFormImage(r, h.media, h.folder)
	if err != nil {
		handleError(w, r, "upload post image", err)
		return
	}

	if _, err := h.posts.Create(r.Context(), user.ID, content, mediaURL); err != nil {
		handleError(w, r, "create post", err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/profile/%d", user.ID), http.StatusSeeOther)
}

// HandleShow renders a single post.
// GET /posts/{id}
func (h *PostHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, "get post", err)
		return
	}

	renderPage(w, r, http.StatusOK, view.PostPage(UserFromContext(r.Context()), post))
}

// HandleUpdate replaces the text of the caller's post.
// PUT /posts/{id}
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		redirect(w, r, "/login")
		return
	}

	if err := h.posts.UpdateContent(r.Context(), user.ID, r.PathValue("id"), r.PostFormValue("content")); err != nil {
		handleError(w, r, "update post", err)
		return
	}

	redirect(w, r, fmt.Sprintf("/users/%d/posts", user.ID))
}

// HandleDelete removes the caller's post.
// DELETE /posts/{id}
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		redirect(w, r, "/login")
		return
	}

	if err := h.posts.Delete(r.Context(), user.ID, r.PathValue("id")); err != nil {
		handleError(w, r, "delete post", err)
		return
	}

	redirect(w, r, fmt.Sprintf("/users/%d/posts", user.ID))
}
