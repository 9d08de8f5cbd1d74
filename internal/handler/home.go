package handler

import (
	"net/http"
)

// HandleHome sends visitors to the login page.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
