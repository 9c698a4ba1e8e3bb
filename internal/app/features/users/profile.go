// internal/app/features/users/profile.go
package users

import (
	"context"
	"net/http"
	"strings"
	"sync"

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

type profileData struct {
	viewdata.BaseVM
	User     models.User
	CanEdit  bool
	Logins   []models.UserLogin
	Activity []models.ActivityCount
	Drive    bool
	Github   bool

	// Session card, shown only on the viewer's own page
	Token    session.TokenInfo
	HasToken bool
}

// ServeProfile handles GET /users/{id}. The side panels (login history,
// activity, grant status) are fetched concurrently and independently;
// any of them failing leaves its region empty and queues a notice
// instead of sinking the page.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	current, _ := session.CurrentUser(r)
	token := h.Sessions.AccessToken(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	u, err := h.Users.Get(ctx, token, id)
	if err != nil {
		if apiclient.IsStatus(err, http.StatusNotFound) {
			uierrors.RenderForbidden(w, r, "No user found with id: "+id, "/users")
			return
		}
		h.ErrLog.LogServerError(w, r, "fetch user", err,
			apiclient.UserMessage(err, "Could not load the user."), "/users")
		return
	}

	data := profileData{
		BaseVM:  viewdata.NewBaseVM(w, r, h.Sessions, u.FullName(), "/users"),
		User:    u,
		CanEdit: selfOrAdmin(current, u.ID),
	}

	if current.ID != "" && current.ID == u.ID {
		if info, err := session.InspectToken(token); err == nil {
			data.Token = info
			data.HasToken = true
		}
	}

	var (
		wg          sync.WaitGroup
		loginsErr   error
		activityErr error
		driveErr    error
		githubErr   error
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		var logins []models.UserLogin
		if logins, loginsErr = h.Users.Logins(ctx, token, id); loginsErr != nil {
			h.Log.Warn("fetch logins failed", zap.String("user_id", id), zap.Error(loginsErr))
			return
		}
		data.Logins = logins
	}()
	go func() {
		defer wg.Done()
		var activity []models.ActivityCount
		if activity, activityErr = h.Users.ActivityStats(ctx, token, id); activityErr != nil {
			h.Log.Warn("fetch activity stats failed", zap.String("user_id", id), zap.Error(activityErr))
			return
		}
		data.Activity = activity
	}()
	go func() {
		defer wg.Done()
		var ok bool
		if ok, driveErr = h.Users.DriveStatus(ctx, token, id); driveErr != nil {
			h.Log.Warn("fetch drive status failed", zap.String("user_id", id), zap.Error(driveErr))
			return
		}
		data.Drive = ok
	}()
	go func() {
		defer wg.Done()
		var ok bool
		if ok, githubErr = h.Users.GithubStatus(ctx, token, id); githubErr != nil {
			h.Log.Warn("fetch github status failed", zap.String("user_id", id), zap.Error(githubErr))
			return
		}
		data.Github = ok
	}()
	wg.Wait()

	var failed []string
	if loginsErr != nil {
		failed = append(failed, "login history")
	}
	if activityErr != nil {
		failed = append(failed, "activity")
	}
	if driveErr != nil {
		failed = append(failed, "Drive access")
	}
	if githubErr != nil {
		failed = append(failed, "GitHub access")
	}
	if len(failed) > 0 {
		h.Sessions.Flash(w, r, "error", "Some profile sections failed to load: "+strings.Join(failed, ", ")+".")
	}

	templates.Render(w, r, "user_profile", data)
}

// ServeMe handles GET /profile, a convenience redirect to the signed-in
// user's page.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	current, ok := session.CurrentUser(r)
	if !ok || current.ID == "" {
		http.Redirect(w, r, session.LoginURL(r), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/users/"+current.ID, http.StatusSeeOther)
}
