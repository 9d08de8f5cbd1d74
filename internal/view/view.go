// Package view renders the HTML pages. Each page is an html/template set
// (the shared base layout plus one page file) exposed as a templ.Component.
package view

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/a-h/templ"

	"github.com/msomdec/cyber-thread/internal/domain"
	"github.com/msomdec/cyber-thread/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = loadTemplates()

var funcs = template.FuncMap{
	"timeAgo": func(t time.Time) string { return service.TimeAgo(t, time.Now()) },
}

func loadTemplates() map[string]*template.Template {
	templates := make(map[string]*template.Template)
	for _, page := range []string{"login", "register", "feed", "profile", "post", "error"} {
		set := template.Must(template.New("").Funcs(funcs).ParseFS(templateFS,
			"templates/base.html",
			"templates/"+page+".html",
		))
		templates[page] = set.Lookup("base")
	}
	return templates
}

// page is the value every template executes against.
type page struct {
	Title  string
	Viewer *domain.User
	Data   any
}

func render(name, title string, viewer *domain.User, data any) templ.Component {
	return templ.FromGoHTML(pages[name], page{Title: title, Viewer: viewer, Data: data})
}

// AuthForm carries the values echoed back into the login and register forms.
type AuthForm struct {
	Username string
	Email    string
	Error    string
}

// LoginPage renders the login form.
func LoginPage(form AuthForm) templ.Component {
	return render("login", "Log in", nil, form)
}

// RegisterPage renders the registration form.
func RegisterPage(form AuthForm) templ.Component {
	return render("register", "Register", nil, form)
}

type feedData struct {
	CanPost bool
	Posts   []domain.PostWithAuthor
}

// FeedPage renders every post, newest first. The compose form is shown only
// when the viewer is looking at their own feed.
func FeedPage(viewer *domain.User, feedUserID int64, posts []domain.PostWithAuthor) templ.Component {
	return render("feed", "Feed", viewer, feedData{
		CanPost: viewer != nil && viewer.ID == feedUserID,
		Posts:   posts,
	})
}

type profileData struct {
	User    *domain.User
	Posts   []domain.Post
	IsOwner bool
}

// ProfilePage renders a user's profile and their posts.
func ProfilePage(viewer, user *domain.User, posts []domain.Post) templ.Component {
	return render("profile", user.Username, viewer, profileData{
		User:    user,
		Posts:   posts,
		IsOwner: viewer != nil && viewer.ID == user.ID,
	})
}

type postData struct {
	Post    *domain.PostWithAuthor
	IsOwner bool
}

// PostPage renders a single post with edit controls for its author.
func PostPage(viewer *domain.User, post *domain.PostWithAuthor) templ.Component {
	return render("post", "Post", viewer, postData{
		Post:    post,
		IsOwner: viewer != nil && viewer.ID == post.UserID,
	})
}

type errorData struct {
	Status  int
	Message string
}

func (e errorData) StatusText() string { return http.StatusText(e.Status) }

// ErrorPage renders a status page with a user-facing message.
func ErrorPage(viewer *domain.User, status int, message string) templ.Component {
	return render("error", http.StatusText(status), viewer, errorData{Status: status, Message: message})
}
