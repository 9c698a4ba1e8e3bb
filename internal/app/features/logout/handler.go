// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"go.uber.org/zap"
)

// Handler clears the browser's Sentinel session.
type Handler struct {
	Sessions *session.Manager
	Log      *zap.Logger
}

func NewHandler(sm *session.Manager, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sm, Log: logger}
}

// ServeLogout handles GET /logout: both tokens, every shared-domain
// cookie under the prefix, and the in-memory user store are cleared.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
