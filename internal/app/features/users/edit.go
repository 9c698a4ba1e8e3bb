// internal/app/features/users/edit.go
package users

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
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

type editData struct {
	viewdata.BaseVM
	User models.User
}

// ServeEdit handles GET /users/{id}/edit.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	current, _ := session.CurrentUser(r)
	token := h.Sessions.AccessToken(r)

	if !selfOrAdmin(current, id) {
		uierrors.RenderForbidden(w, r, "You can only edit your own profile.", "/users/"+url.PathEscape(id))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	u, err := h.Users.Get(ctx, token, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch user for edit", err,
			apiclient.UserMessage(err, "Could not load the user."), "/users")
		return
	}

	data := editData{
		BaseVM: viewdata.NewBaseVM(w, r, h.Sessions, "Edit "+u.FullName(), "/users/"+url.PathEscape(id)),
		User:   u,
	}
	templates.Render(w, r, "user_form", data)
}

// HandleUpdate handles POST /users/{id}/edit. Only the profile fields the
// form shows are replaced; identity fields come from the canonical copy.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	current, _ := session.CurrentUser(r)
	token := h.Sessions.AccessToken(r)
	profileURL := "/users/" + url.PathEscape(id)

	if !selfOrAdmin(current, id) {
		uierrors.RenderForbidden(w, r, "You can only edit your own profile.", profileURL)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse profile form", err,
			"Could not read the form. Please try again.", profileURL+"/edit")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	u, err := h.Users.Get(ctx, token, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "fetch user for update", err,
			apiclient.UserMessage(err, "Could not load the user."), "/users")
		return
	}

	u.FirstName = strings.TrimSpace(r.FormValue("first_name"))
	u.LastName = strings.TrimSpace(r.FormValue("last_name"))
	u.Email = strings.TrimSpace(r.FormValue("email"))
	u.PhoneNumber = strings.TrimSpace(r.FormValue("phone_number"))
	u.Gender = r.FormValue("gender")
	u.Birthday = r.FormValue("birthday")
	u.GraduateLevel = r.FormValue("graduate_level")
	u.Major = strings.TrimSpace(r.FormValue("major"))
	u.ShirtSize = r.FormValue("shirt_size")
	u.JacketSize = r.FormValue("jacket_size")
	u.SAERegistrationNumber = strings.TrimSpace(r.FormValue("sae_registration_number"))
	if year := r.FormValue("graduation_year"); year != "" {
		n, err := strconv.Atoi(year)
		if err != nil {
			h.Sessions.Flash(w, r, "error", "Graduation year must be a number.")
			http.Redirect(w, r, profileURL+"/edit", http.StatusSeeOther)
			return
		}
		u.GraduationYear = n
	}

	if u.FirstName == "" || u.LastName == "" || u.Email == "" {
		h.Sessions.Flash(w, r, "error", "First name, last name, and email are required.")
		http.Redirect(w, r, profileURL+"/edit", http.StatusSeeOther)
		return
	}

	if _, err := h.Users.Save(ctx, token, u); err != nil {
		h.Log.Warn("update user failed", zap.String("user_id", id), zap.Error(err))
		h.Sessions.Flash(w, r, "error", apiclient.UserMessage(err, "Could not save the profile."))
		http.Redirect(w, r, profileURL+"/edit", http.StatusSeeOther)
		return
	}

	h.Sessions.Flash(w, r, "success", "Profile saved.")
	http.Redirect(w, r, profileURL, http.StatusSeeOther)
}

// HandleResetPassword handles POST /users/{id}/reset-password. The API
// drops the password credential; the user sets a new one via register.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	current, _ := session.CurrentUser(r)
	token := h.Sessions.AccessToken(r)
	profileURL := "/users/" + url.PathEscape(id)

	if !selfOrAdmin(current, id) {
		uierrors.RenderForbidden(w, r, "You can only reset your own password.", profileURL)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	if err := h.Users.ResetPassword(ctx, token, id); err != nil {
		h.Log.Warn("reset password failed", zap.String("user_id", id), zap.Error(err))
		h.Sessions.Flash(w, r, "error", apiclient.UserMessage(err, "Could not reset the password."))
	} else {
		h.Sessions.Flash(w, r, "success", "Password reset. A new one can be set from the sign-in page.")
	}
	http.Redirect(w, r, profileURL, http.StatusSeeOther)
}
