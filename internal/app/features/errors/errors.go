// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/Gaucho-Racing/Sentinel/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the basic view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Message string
}

// Handler is the errors feature handler.
// No backends needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, "You don't have permission to view this page.", "/")
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	RenderUnauthorized(w, r, "/auth/login")
}

// RenderUnauthorized shows a friendly "sign in required" page.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/auth/login"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(w, r, nil, "Sign in required", backURL),
		Message: "Please sign in to continue.",
	}
	templates.Render(w, r, "error_page", data)
}

// RenderForbidden shows a friendly access error page with a message.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(w, r, nil, "Access denied", backURL),
		Message: msg,
	}
	templates.Render(w, r, "error_page", data)
}

// RenderError shows a generic error page with a server-provided message.
func RenderError(w http.ResponseWriter, r *http.Request, title, msg string) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(w, r, nil, title, "/"),
		Message: msg,
	}
	templates.Render(w, r, "error_page", data)
}
