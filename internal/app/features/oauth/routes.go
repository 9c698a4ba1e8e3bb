// internal/app/features/oauth/routes.go
package oauth

import (
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/go-chi/chi/v5"
)

// Routes are mounted at /oauth. Both pages require a signed-in browser;
// RequireAuth bounces to the login form with the full authorize query in
// the return route.
func Routes(h *Handler, sm *session.Manager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireAuth)
		pr.Get("/authorize", h.ServeAuthorize)
		pr.Post("/authorize", h.HandleAuthorize)
	})
	return r
}
