package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/cyber-thread/internal/domain"
	"github.com/msomdec/cyber-thread/internal/view"
)

// renderPage writes component as an HTML response with the given status.
func renderPage(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render page", "error", err)
	}
}

// renderStatus renders the error page for status with a user-facing message.
func renderStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	renderPage(w, r, status, view.ErrorPage(UserFromContext(r.Context()), status, message))
}

// handleError maps a service error onto a response. Unexpected errors are
// logged under op and shown as a generic 500.
func handleError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		renderStatus(w, r, http.StatusNotFound, "We couldn't find what you were looking for.")
	case errors.Is(err, domain.ErrForbidden):
		renderStatus(w, r, http.StatusForbidden, "You can only change your own posts and profile.")
	case errors.Is(err, domain.ErrInvalidInput):
		renderStatus(w, r, http.StatusUnprocessableEntity, userMessage(err))
	case errors.Is(err, domain.ErrUpload):
		slog.Error(op, "error", err)
		renderStatus(w, r, http.StatusBadGateway, "The image could not be uploaded. Please try again.")
	default:
		slog.Error(op, "error", err)
		renderStatus(w, r, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
	}
}

// userMessage strips the sentinel prefix from a validation error.
func userMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
	if msg == "" {
		return "Invalid input."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}

// redirect sends a 303, or an SSE redirect for datastar actions.
func redirect(w http.ResponseWriter, r *http.Request, url string) {
	if r.Header.Get("Datastar-Request") == "true" {
		sse := datastar.NewSSE(w, r)
		if err := sse.Redirect(url); err != nil {
			slog.Error("sse redirect", "error", err)
		}
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}
