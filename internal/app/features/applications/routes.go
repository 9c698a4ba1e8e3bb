// internal/app/features/applications/routes.go
package applications

import (
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/go-chi/chi/v5"
)

// Routes are mounted at /applications. Everything requires a signed-in
// browser.
func Routes(h *Handler, sm *session.Manager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireAuth)

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Get("/new", h.ServeNew)

		pr.Get("/{id}", h.ServeDetail)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleUpdate)
		pr.Post("/{id}/delete", h.ServeDelete)
	})
	return r
}
