package session

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Gaucho-Racing/Sentinel/internal/app/system/timeouts"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
	"go.uber.org/zap"
)

// Credential check outcomes. Callers treat StatusUnauthenticated as
// "redirect to login, carrying the current path+query in a route param".
const (
	StatusAuthenticated   = 0
	StatusUnauthenticated = 1
)

// CheckCredentials decides whether this browser is authenticated.
//
//  1. No access token persisted: unauthenticated, no network call.
//  2. The user store is already populated: authenticated, no network call.
//  3. Otherwise resolve the profile via the API. A failure of any kind
//     (transport or HTTP, causes not distinguished) earns exactly one
//     refresh-and-retry cycle; a second failure, or the absence of a
//     refresh token, means logout and unauthenticated.
//
// The check never returns an error; every path resolves to a status.
func (m *Manager) CheckCredentials(w http.ResponseWriter, r *http.Request) int {
	return m.check(w, r, false)
}

func (m *Manager) check(w http.ResponseWriter, r *http.Request, retried bool) int {
	sess := m.session(r)

	token := sessionString(sess, accessTokenKey)
	if token == "" {
		return StatusUnauthenticated
	}

	st := m.stateFor(w, r, sess)
	if st.Read().ID != "" {
		return StatusAuthenticated
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := m.users.Me(ctx, token)
	if err == nil {
		st.Write(user)
		return StatusAuthenticated
	}

	if retried {
		m.log.Info("profile fetch failed after refresh, logging out", zap.Error(err))
		m.Logout(w, r)
		return StatusUnauthenticated
	}

	refresh := sessionString(sess, refreshTokenKey)
	if refresh == "" {
		m.log.Debug("profile fetch failed, no refresh token", zap.Error(err))
		m.Logout(w, r)
		return StatusUnauthenticated
	}

	tok, refreshErr := m.tokens.Refresh(ctx, refresh)
	if refreshErr != nil {
		m.log.Info("token refresh failed, logging out", zap.Error(refreshErr))
		m.Logout(w, r)
		return StatusUnauthenticated
	}

	m.saveTokensInSession(w, r, sess, tok)
	return m.check(w, r, true)
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user injected by RequireAuth.
func CurrentUser(r *http.Request) (models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(models.User)
	return u, ok
}

func withUser(r *http.Request, u models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user into the request context, bypassing the
// credential check. Test helper only.
func WithTestUser(r *http.Request, u models.User) *http.Request {
	return withUser(r, u)
}

// LoginURL builds the login redirect target preserving the originally
// requested destination in the route parameter.
func LoginURL(r *http.Request) string {
	return "/auth/login?route=" + url.QueryEscape(r.URL.RequestURI())
}

// RequireAuth gates a route behind the credential check. On success the
// resolved user rides in the request context; on failure the browser is
// sent to the login page with the current destination preserved.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, ok := CurrentUser(r); ok && u.ID != "" {
			next.ServeHTTP(w, r)
			return
		}

		if m.CheckCredentials(w, r) != StatusAuthenticated {
			http.Redirect(w, r, LoginURL(r), http.StatusSeeOther)
			return
		}

		user := m.UserStore(w, r).Read()
		next.ServeHTTP(w, withUser(r, user))
	})
}
