// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes are mounted at /auth.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/login", h.ServeLogin)
	r.Post("/login", h.HandleLogin)
	r.Get("/login/discord", h.ServeLoginDiscord)

	r.Get("/register", h.ServeRegister)
	r.Post("/register", h.HandleRegister)

	return r
}
