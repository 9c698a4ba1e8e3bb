// Package session owns the browser-facing half of authentication: the
// signed cookie holding the Sentinel token pair, the per-browser user
// store, the credential check every protected page runs, and logout.
//
// Tokens are persisted in two places written together: the signed gorilla
// session cookie (authoritative for the credential check) and a plain
// cookie scoped to the shared parent domain so sibling subdomains can read
// it. The mirror is write-only from this app's point of view.
package session

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/Gaucho-Racing/Sentinel/internal/app/system/state"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
	sidKey          = "sid"
)

// Notice is a one-shot flash notification surfaced on the next rendered
// page. Kind is "success" or "error".
type Notice struct {
	Kind    string
	Message string
}

func init() {
	gob.Register(Notice{})
}

var errEmptySessionKey = errors.New("session key is empty; provide 32+ random chars")

// UserAPI is the slice of the users store the session layer needs.
type UserAPI interface {
	Me(ctx context.Context, token string) (models.User, error)
}

// TokenAPI is the slice of the auth store the session layer needs.
type TokenAPI interface {
	Refresh(ctx context.Context, refreshToken string) (models.TokenResponse, error)
}

// Manager binds the cookie store, the remote API, and the per-browser
// user stores together.
type Manager struct {
	store        *sessions.CookieStore
	sessionName  string
	cookiePrefix string
	sharedDomain string
	secure       bool
	log          *zap.Logger

	users  UserAPI
	tokens TokenAPI

	mu     sync.Mutex
	states map[string]*state.Store[models.User]
}

// NewManager builds a Manager. sharedDomain is the parent domain the
// mirror cookies are scoped to (e.g. ".gauchoracing.com"); blank disables
// mirroring. cookiePrefix names the mirror cookies and drives bulk
// deletion on logout (e.g. "sentinel_").
func NewManager(sessionKey, sessionName, sharedDomain, cookiePrefix string, secure bool, users UserAPI, tokens TokenAPI, logger *zap.Logger) (*Manager, error) {
	if sessionKey == "" {
		return nil, errEmptySessionKey
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session manager initialized",
		zap.Bool("secure", secure),
		zap.String("shared_domain", sharedDomain))

	return &Manager{
		store:        store,
		sessionName:  sessionName,
		cookiePrefix: cookiePrefix,
		sharedDomain: sharedDomain,
		secure:       secure,
		log:          logger,
		users:        users,
		tokens:       tokens,
		states:       make(map[string]*state.Store[models.User]),
	}, nil
}

func (m *Manager) session(r *http.Request) *sessions.Session {
	// Get still returns a usable fresh session on error, so we log and
	// carry on either way.
	sess, err := m.store.Get(r, m.sessionName)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			m.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			m.log.Error("session store error, using fresh session", zap.Error(err))
		}
	}
	return sess
}

func sessionString(sess *sessions.Session, key string) string {
	if v, ok := sess.Values[key].(string); ok {
		return v
	}
	return ""
}

// AccessToken returns the bearer token persisted for this browser, or ""
// when none is stored.
func (m *Manager) AccessToken(r *http.Request) string {
	return sessionString(m.session(r), accessTokenKey)
}

// SaveTokens persists a token pair: the signed session cookie and the
// shared-domain mirror are written together. An empty refresh token in the
// response leaves the previous refresh token in place.
func (m *Manager) SaveTokens(w http.ResponseWriter, r *http.Request, tok models.TokenResponse) {
	sess := m.session(r)
	m.saveTokensInSession(w, r, sess, tok)
}

func (m *Manager) saveTokensInSession(w http.ResponseWriter, r *http.Request, sess *sessions.Session, tok models.TokenResponse) {
	sess.Values[accessTokenKey] = tok.AccessToken
	if tok.RefreshToken != "" {
		sess.Values[refreshTokenKey] = tok.RefreshToken
	}
	if err := sess.Save(r, w); err != nil {
		m.log.Error("save session", zap.Error(err))
	}
	m.setSharedCookie(w, "access_token", tok.AccessToken, 0)
}

// setSharedCookie writes a mirror cookie on the shared parent domain.
// maxAge < 0 deletes.
func (m *Manager) setSharedCookie(w http.ResponseWriter, name, value string, maxAge int) {
	if m.sharedDomain == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookiePrefix + name,
		Value:    value,
		Domain:   m.sharedDomain,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// stateFor returns the per-browser user store, creating it (and the
// session ID that keys it) on first touch.
func (m *Manager) stateFor(w http.ResponseWriter, r *http.Request, sess *sessions.Session) *state.Store[models.User] {
	sid := sessionString(sess, sidKey)
	if sid == "" {
		sid = uuid.NewString()
		sess.Values[sidKey] = sid
		if err := sess.Save(r, w); err != nil {
			m.log.Error("save session", zap.Error(err))
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[sid]
	if !ok {
		st = state.New(models.InitUser())
		m.states[sid] = st
	}
	return st
}

// UserStore returns the observable user store for this browser session.
func (m *Manager) UserStore(w http.ResponseWriter, r *http.Request) *state.Store[models.User] {
	return m.stateFor(w, r, m.session(r))
}

// Logout clears everything: both tokens from the signed cookie, every
// mirror cookie carrying the configured prefix, and the user store, which
// is reset to the init value before being dropped.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) {
	sess := m.session(r)

	sid := sessionString(sess, sidKey)
	if sid != "" {
		m.mu.Lock()
		if st, ok := m.states[sid]; ok {
			st.Write(models.InitUser())
			delete(m.states, sid)
		}
		m.mu.Unlock()
	}

	sess.Options.MaxAge = -1
	delete(sess.Values, accessTokenKey)
	delete(sess.Values, refreshTokenKey)
	delete(sess.Values, sidKey)
	if err := sess.Save(r, w); err != nil {
		m.log.Error("logout: save session", zap.Error(err))
	}

	// Expire every shared-domain cookie with our prefix that the browser
	// sent, mirroring the bulk prefix delete the other subdomains expect.
	for _, c := range r.Cookies() {
		if strings.HasPrefix(c.Name, m.cookiePrefix) && c.Name != m.sessionName {
			m.setSharedCookie(w, strings.TrimPrefix(c.Name, m.cookiePrefix), "", -1)
		}
	}
	m.setSharedCookie(w, "access_token", "", -1)
}

// Flash queues a one-shot notice for the next rendered page.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, kind, message string) {
	sess := m.session(r)
	sess.AddFlash(Notice{Kind: kind, Message: message})
	if err := sess.Save(r, w); err != nil {
		m.log.Error("save flash", zap.Error(err))
	}
}

// PopNotices drains queued notices for display.
func (m *Manager) PopNotices(w http.ResponseWriter, r *http.Request) []Notice {
	sess := m.session(r)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(r, w); err != nil {
		m.log.Error("save session after flash drain", zap.Error(err))
	}
	notices := make([]Notice, 0, len(raw))
	for _, f := range raw {
		if n, ok := f.(Notice); ok {
			notices = append(notices, n)
		}
	}
	return notices
}
