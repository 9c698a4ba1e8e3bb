// internal/app/features/applications/detail.go
package applications

import (
	"context"
	"net/http"

	uierrors "github.com/Gaucho-Racing/Sentinel/internal/app/features/errors"
	"github.com/Gaucho-Racing/Sentinel/internal/app/store/apiclient"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/timeouts"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/viewdata"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type detailData struct {
	viewdata.BaseVM
	App     models.ClientApplication
	CanEdit bool
}

// ServeDetail handles GET /applications/{id}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	u, _ := session.CurrentUser(r)
	token := h.Sessions.AccessToken(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	app, err := h.Applications.Get(ctx, token, id)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusNotFound) {
			uierrors.RenderForbidden(w, r, "No application found with id: "+id, "/applications")
			return
		}
		h.ErrLog.LogServerError(w, r, "fetch application", err,
			apiclient.UserMessage(err, "Could not load the application."), "/applications")
		return
	}

	data := detailData{
		BaseVM:  viewdata.NewBaseVM(w, r, h.Sessions, app.Name, "/applications"),
		App:     app,
		CanEdit: canEdit(u, app),
	}
	templates.Render(w, r, "application_detail", data)
}

// ServeDelete handles POST /applications/{id}/delete.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	token := h.Sessions.AccessToken(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	if err := h.Applications.Delete(ctx, token, id); err != nil {
		h.Log.Warn("delete application failed", zap.String("id", id), zap.Error(err))
		h.Sessions.Flash(w, r, "error", apiclient.UserMessage(err, "Could not delete the application."))
		http.Redirect(w, r, "/applications/"+id, http.StatusSeeOther)
		return
	}

	h.Sessions.Flash(w, r, "success", "Application deleted.")
	http.Redirect(w, r, "/applications", http.StatusSeeOther)
}
