// internal/app/features/users/routes.go
package users

import (
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/go-chi/chi/v5"
)

// Routes are mounted at /users.
func Routes(h *Handler, sm *session.Manager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireAuth)

		pr.Get("/", h.ServeList)

		pr.Get("/{id}", h.ServeProfile)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleUpdate)
		pr.Post("/{id}/reset-password", h.HandleResetPassword)

		pr.Post("/{id}/drive", h.HandleAddToDrive)
		pr.Post("/{id}/drive/remove", h.HandleRemoveFromDrive)
		pr.Post("/{id}/github", h.HandleAddToGithub)
	})
	return r
}
