// internal/app/features/users/grants.go
package users

import (
	"context"
	"net/http"
	"net/url"

	uierrors "github.com/Gaucho-Racing/Sentinel/internal/app/features/errors"
	"github.com/Gaucho-Racing/Sentinel/internal/app/store/apiclient"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Grant actions toggle access to the shared team Drive and the GitHub
// org. GitHub membership can only be granted here; revocation goes
// through GitHub itself.

func (h *Handler) HandleAddToDrive(w http.ResponseWriter, r *http.Request) {
	h.grantAction(w, r, "add to drive", h.Users.AddToDrive, "Added to the team Drive.")
}

func (h *Handler) HandleRemoveFromDrive(w http.ResponseWriter, r *http.Request) {
	h.grantAction(w, r, "remove from drive", h.Users.RemoveFromDrive, "Removed from the team Drive.")
}

func (h *Handler) HandleAddToGithub(w http.ResponseWriter, r *http.Request) {
	h.grantAction(w, r, "add to github", h.Users.AddToGithub, "GitHub invitation sent.")
}

func (h *Handler) grantAction(w http.ResponseWriter, r *http.Request, name string, fn func(ctx context.Context, token, id string) error, success string) {
	id := chi.URLParam(r, "id")
	current, _ := session.CurrentUser(r)
	token := h.Sessions.AccessToken(r)
	profileURL := "/users/" + url.PathEscape(id)

	if !selfOrAdmin(current, id) {
		uierrors.RenderForbidden(w, r, "You can only manage your own access.", profileURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	if err := fn(ctx, token, id); err != nil {
		h.Log.Warn(name+" failed", zap.String("user_id", id), zap.Error(err))
		h.Sessions.Flash(w, r, "error", apiclient.UserMessage(err, "The request could not be completed."))
	} else {
		h.Sessions.Flash(w, r, "success", success)
	}
	http.Redirect(w, r, profileURL, http.StatusSeeOther)
}
