package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/msomdec/cyber-thread/internal/service"
	"github.com/msomdec/cyber-thread/internal/view"
)

// ProfileHandler serves the profile page and its bio and photo forms.
type ProfileHandler struct {
	profiles *service.ProfileService
	media    *service.MediaService
	folder   string
}

// NewProfileHandler creates a new ProfileHandler. Photos are uploaded under folder.
func NewProfileHandler(profiles *service.ProfileService, media *service.MediaService, folder string) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, media: media, folder: folder}
}

// HandleShow renders a user's profile and posts.
// GET /profile/{id}
func (h *ProfileHandler) HandleShow(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	user, posts, err := h.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		handleError(w, r, "get profile", err)
		return
	}

	renderPage(w, r, http.StatusOK, view.ProfilePage(UserFromContext(r.Context()), user, posts))
}

// HandleUpdateBio saves the caller's bio.
// POST /profile/{id}
func (h *ProfileHandler) HandleUpdateBio(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		redirect(w, r, "/login")
		return
	}
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}

	if err := h.profiles.UpdateBio(r.Context(), user.ID, userID, r.PostFormValue("bio")); err != nil {
		handleError(w, r, "update bio", err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/profile/%d", userID), http.StatusSeeOther)
}

// HandleUpdatePhoto uploads a new profile photo. Submitting the form without
// a file leaves the current photo in place.
// POST /profile/{id}/photo
func (h *ProfileHandler) HandleUpdatePhoto(w http.ResponseWriter, r *http.Request) {
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
		renderStatus(w, r, http.StatusForbidden, "You can only change your own posts and profile.")
		return
	}

	if err := parseUploadForm(w, r, h.media); err != nil {
		handleError(w, r, "parse photo form", err)
		return
	}

	url, err := uploadFormImage(r, h.media, h.folder)
	if err != nil {
		handleError(w, r, "upload profile photo", err)
		return
	}

	if url != "" {
		if err := h.profiles.UpdatePhoto(r.Context(), user.ID, userID, url); err != nil {
			handleError(w, r, "update profile photo", err)
			return
		}
	}

	http.Redirect(w, r, fmt.Sprintf("/profile/%d", userID), http.StatusSeeOther)
}

func pathUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderStatus(w, r, http.StatusNotFound, "We couldn't find what you were looking for.")
		return 0, false
	}
	return id, true
}
