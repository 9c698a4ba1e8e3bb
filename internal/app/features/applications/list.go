// internal/app/features/applications/list.go
package applications

import (
	"context"
	"net/http"

	"github.com/Gaucho-Racing/Sentinel/internal/app/store/apiclient"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/timeouts"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/viewdata"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type listData struct {
	viewdata.BaseVM
	Applications []models.ClientApplication
	AllUsers     bool
}

// ServeList handles GET /applications. Admins see every registered
// application; everyone else sees their own.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, _ := session.CurrentUser(r)
	token := h.Sessions.AccessToken(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		apps []models.ClientApplication
		err  error
	)
	if u.IsAdmin() {
		apps, err = h.Applications.List(ctx, token)
	} else {
		apps, err = h.Applications.ListForUser(ctx, token, u.ID)
	}
	if err != nil {
		h.Log.Warn("list applications failed", zap.Error(err))
		h.Sessions.Flash(w, r, "error", apiclient.UserMessage(err, "Could not load applications."))
		apps = nil
	}

	data := listData{
		BaseVM:       viewdata.NewBaseVM(w, r, h.Sessions, "Applications", "/"),
		Applications: apps,
		AllUsers:     u.IsAdmin(),
	}
	templates.Render(w, r, "applications_list", data)
}
