// internal/app/features/analytics/routes.go
package analytics

import (
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/go-chi/chi/v5"
)

// Routes are mounted at /analytics.
func Routes(h *Handler, sm *session.Manager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireAuth)
		pr.Get("/", h.ServeDashboard)
	})
	return r
}
