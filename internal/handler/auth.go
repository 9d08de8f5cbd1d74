package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/msomdec/cyber-thread/internal/domain"
	"github.com/msomdec/cyber-thread/internal/service"
	"github.com/msomdec/cyber-thread/internal/view"
)

const authCookieName = "auth_token"

// AuthHandler handles the login, registration, and logout forms.
type AuthHandler struct {
	auth         *service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure}
}

// ShowLogin renders the login form.
// GET /login
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, view.LoginPage(view.AuthForm{}))
}

// HandleLogin authenticates the form credentials and sets the session cookie.
// POST /login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	token, user, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			renderPage(w, r, http.StatusUnauthorized, view.LoginPage(view.AuthForm{
				Email: email,
				Error: "Invalid email or password.",
			}))
			return
		}
		slog.Error("login user", "error", err)
		renderStatus(w, r, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.auth.TokenLifetime().Seconds()),
	})

	http.Redirect(w, r, fmt.Sprintf("/users/%d/posts", user.ID), http.StatusSeeOther)
}

// ShowRegister renders the registration form.
// GET /register, GET /new-guy-page
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, view.RegisterPage(view.AuthForm{}))
}

// HandleRegister creates an account and sends the user to the login form.
// POST /register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	form := view.AuthForm{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
	}

	_, err := h.auth.Register(r.Context(), form.Username, form.Email, r.PostFormValue("password"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			form.Error = "An account with that email already exists."
			renderPage(w, r, http.StatusConflict, view.RegisterPage(form))
		case errors.Is(err, domain.ErrInvalidInput):
			form.Error = userMessage(err)
			renderPage(w, r, http.StatusUnprocessableEntity, view.RegisterPage(form))
		default:
			slog.Error("register user", "error", err)
			renderStatus(w, r, http.StatusInternalServerError, "An unexpected error occurred. Please try again.")
		}
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLogout clears the auth cookie.
// POST /logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
