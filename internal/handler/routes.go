package handler

import (
	"net/http"

	"github.com/msomdec/cyber-thread/internal/metrics"
	"github.com/msomdec/cyber-thread/internal/service"
)

// Deps is everything the HTTP layer needs.
type Deps struct {
	Auth     *service.AuthService
	Posts    *service.PostService
	Profiles *service.ProfileService
	Media    *service.MediaService
	Store    Pinger
	// Metrics is optional; when nil, /metrics is not served.
	Metrics *metrics.Metrics

	CookieSecure  bool
	PostFolder    string
	ProfileFolder string
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, d Deps) {
	authHandler := NewAuthHandler(d.Auth, d.CookieSecure)
	postHandler := NewPostHandler(d.Posts, d.Profiles, d.Media, d.PostFolder)
	profileHandler := NewProfileHandler(d.Profiles, d.Media, d.ProfileFolder)

	optional := func(h http.HandlerFunc) http.Handler { return OptionalAuth(d.Auth, h) }
	required := func(h http.HandlerFunc) http.Handler { return RequireAuth(d.Auth, h) }

	mux.HandleFunc("GET /{$}", HandleHome)
	mux.HandleFunc("GET /healthz", HandleHealthz(d.Store))
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}

	// Auth
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", authHandler.HandleLogin)
	mux.HandleFunc("GET /register", authHandler.ShowRegister)
	mux.HandleFunc("GET /new-guy-page", authHandler.ShowRegister)
	mux.HandleFunc("POST /register", authHandler.HandleRegister)
	mux.HandleFunc("POST /logout", authHandler.HandleLogout)

	// Posts
	mux.Handle("GET /users/{id}/posts", optional(postHandler.HandleFeed))
	mux.Handle("POST /users/{id}/posts", required(postHandler.HandleCreate))
	mux.Handle("GET /posts/{id}", optional(postHandler.HandleShow))
	mux.Handle("PUT /posts/{id}", required(postHandler.HandleUpdate))
	mux.Handle("DELETE /posts/{id}", required(postHandler.HandleDelete))

	// Profiles
	mux.Handle("GET /profile/{id}", optional(profileHandler.HandleShow))
	mux.Handle("POST /profile/{id}", required(profileHandler.HandleUpdateBio))
	mux.Handle("POST /profile/{id}/photo", required(profileHandler.HandleUpdatePhoto))
}

// NewRouter builds the mux and wraps it in the standard middleware chain.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, d)
	return SecurityHeaders(LogRequests(d.Metrics, MethodOverride(mux)))
}
