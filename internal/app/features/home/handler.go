// internal/app/features/home/handler.go
package home

import (
	"context"
	"html/template"
	"net/http"

	"github.com/Gaucho-Racing/Sentinel/internal/app/store/status"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/timeouts"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the landing page.
type Handler struct {
	Status   *status.Store
	Sessions *session.Manager
	Log      *zap.Logger
}

func NewHandler(st *status.Store, sm *session.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Status:   st,
		Sessions: sm,
		Log:      logger,
	}
}

// ServeRoot handles GET /. The API banner is non-critical: if the ping
// fails the page still renders without it and a notice is queued.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	vm := viewdata.NewBaseVM(w, r, h.Sessions, "Welcome", "/")

	var banner string
	if h.Status != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
		defer cancel()
		msg, err := h.Status.Ping(ctx)
		if err != nil {
			h.Log.Warn("ping failed", zap.Error(err))
			if h.Sessions != nil {
				h.Sessions.Flash(w, r, "error", "Could not reach the Sentinel API.")
			}
		} else {
			banner = msg
		}
	}

	data := struct {
		viewdata.BaseVM
		Banner template.HTML
	}{
		BaseVM: vm,
		Banner: viewdata.SafeHTML(banner),
	}

	templates.Render(w, r, "home", data)
}
