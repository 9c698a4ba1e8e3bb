// internal/app/features/applications/edit.go
package applications

import (
	"context"
	"net/http"
	"net/url"
	"strings"

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

type formData struct {
	viewdata.BaseVM
	App   models.ClientApplication
	IsNew bool
}

// ServeNew handles GET /applications/new: a blank application owned by
// the signed-in user, straight into edit mode. No fetch happens.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	u, _ := session.CurrentUser(r)
	app := models.InitClientApplication()
	app.UserID = u.ID

	data := formData{
		BaseVM: viewdata.NewBaseVM(w, r, h.Sessions, "New application", "/applications"),
		App:    app,
		IsNew:  true,
	}
	templates.Render(w, r, "application_form", data)
}

// HandleCreate handles POST /applications. A blank name never reaches
// the API; the form is re-shown with a notification instead.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, _ := session.CurrentUser(r)
	token := h.Sessions.AccessToken(r)

	name, uris, err := parseAppForm(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse application form", err,
			"Could not read the form. Please try again.", "/applications/new")
		return
	}
	if name == "" {
		h.Sessions.Flash(w, r, "error", "Application name is required.")
		http.Redirect(w, r, "/applications/new", http.StatusSeeOther)
		return
	}

	app := models.ClientApplication{
		UserID:       u.ID,
		Name:         name,
		RedirectURIs: uris,
	}
	app.RedirectURIs = app.CleanRedirectURIs()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	created, err := h.Applications.Save(ctx, token, app)
	if err != nil {
		h.Log.Warn("create application failed", zap.Error(err))
		h.Sessions.Flash(w, r, "error", apiclient.UserMessage(err, "Could not create the application."))
		http.Redirect(w, r, "/applications/new", http.StatusSeeOther)
		return
	}

	h.Sessions.Flash(w, r, "success", "Application created.")
	http.Redirect(w, r, "/applications/"+url.PathEscape(created.ID), http.StatusSeeOther)
}

// ServeEdit handles GET /applications/{id}/edit. Re-entering the editor
// always re-fetches the canonical server copy, which is also how
// "discard changes" works.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	u, _ := session.CurrentUser(r)
	token := h.Sessions.AccessToken(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	app, err := h.Applications.Get(ctx, token, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch application for edit", err,
			apiclient.UserMessage(err, "Could not load the application."), "/applications")
		return
	}
	if !canEdit(u, app) {
		uierrors.RenderForbidden(w, r, "Only the owner can edit this application.", "/applications/"+url.PathEscape(id))
		return
	}

	data := formData{
		BaseVM: viewdata.NewBaseVM(w, r, h.Sessions, "Edit "+app.Name, "/applications/"+url.PathEscape(id)),
		App:    app,
	}
	templates.Render(w, r, "application_form", data)
}

// HandleUpdate handles POST /applications/{id}/edit.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	token := h.Sessions.AccessToken(r)
	editURL := "/applications/" + url.PathEscape(id) + "/edit"

	name, uris, err := parseAppForm(r)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse application form", err,
			"Could not read the form. Please try again.", editURL)
		return
	}
	if name == "" {
		h.Sessions.Flash(w, r, "error", "Application name is required.")
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Start from the canonical copy so fields the form never shows
	// (owner, secret, timestamps) survive the round trip.
	app, err := h.Applications.Get(ctx, token, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch application for update", err,
			apiclient.UserMessage(err, "Could not load the application."), "/applications")
		return
	}
	app.Name = name
	app.RedirectURIs = uris
	app.RedirectURIs = app.CleanRedirectURIs()

	if _, err := h.Applications.Save(ctx, token, app); err != nil {
		h.Log.Warn("update application failed", zap.String("id", id), zap.Error(err))
		h.Sessions.Flash(w, r, "error", apiclient.UserMessage(err, "Could not save the application."))
		http.Redirect(w, r, editURL, http.StatusSeeOther)
		return
	}

	h.Sessions.Flash(w, r, "success", "Application saved.")
	http.Redirect(w, r, "/applications/"+url.PathEscape(id), http.StatusSeeOther)
}

// parseAppForm reads the shared create/edit form fields. Redirect URI
// rows come back in submission order; blanks are preserved here and
// stripped by the caller at submit time.
func parseAppForm(r *http.Request) (name string, uris []string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", nil, err
	}
	name = strings.TrimSpace(r.FormValue("name"))
	uris = r.Form["redirect_uris"]
	return name, uris, nil
}
