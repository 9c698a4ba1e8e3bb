// internal/app/features/login/handler.go
package login

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/Gaucho-Racing/Sentinel/internal/app/store/apiclient"
	authstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/auth"
	"github.com/Gaucho-Racing/Sentinel/internal/app/store/status"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/timeouts"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/viewdata"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// Handler handles password and Discord sign-in against the Sentinel API.
type Handler struct {
	Auth     *authstore.Store
	Status   *status.Store
	Sessions *session.Manager
	Log      *zap.Logger

	// Discord OAuth configuration
	DiscordClientID string
	DiscordAuthURL  string // e.g. "https://discord.com/oauth2/authorize"
	RedirectURL     string // this console's callback, <base>/auth/login/discord
}

func NewHandler(auth *authstore.Store, st *status.Store, sm *session.Manager, discordClientID, discordAuthURL, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:            auth,
		Status:          st,
		Sessions:        sm,
		Log:             logger,
		DiscordClientID: discordClientID,
		DiscordAuthURL:  discordAuthURL,
		RedirectURL:     strings.TrimRight(baseURL, "/") + "/auth/login/discord",
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Email      string
	Route      string
	DiscordURL string
	Register   bool
	Banner     template.HTML
}

// ServeLogin handles GET /auth/login. An already-authenticated browser is
// sent straight to its return route.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	route := query.Get(r, "route")
	if h.Sessions.CheckCredentials(w, r) == session.StatusAuthenticated {
		http.Redirect(w, r, urlutil.SafeReturn(route, "", "/"), http.StatusSeeOther)
		return
	}
	h.renderForm(w, r, loginFormData{
		BaseVM:     viewdata.NewBaseVM(w, r, h.Sessions, "Sign in", "/"),
		Route:      route,
		DiscordURL: h.discordAuthorizeURL(route),
		Banner:     h.pingBanner(r.Context()),
	})
}

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Sessions.Flash(w, r, "error", "Could not read the form. Please try again.")
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	route := r.FormValue("route")

	if email == "" || password == "" {
		h.Sessions.Flash(w, r, "error", "Email and password are required.")
		h.redirectToForm(w, r, "/auth/login", route)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	tok, err := h.Auth.Login(ctx, email, password)
	if err != nil {
		h.Log.Warn("password login failed", zap.String("email", email), zap.Error(err))
		h.flashAPIError(w, r, err, "Sign in failed. Please try again.")
		h.redirectToForm(w, r, "/auth/login", route)
		return
	}

	h.finishSignIn(w, r, tok, route)
}

// ServeRegister handles GET /auth/register, the password-setup form for
// Discord-verified accounts.
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	route := query.Get(r, "route")
	h.renderForm(w, r, loginFormData{
		BaseVM:     viewdata.NewBaseVM(w, r, h.Sessions, "Create password", "/auth/login"),
		Route:      route,
		DiscordURL: h.discordAuthorizeURL(route),
		Register:   true,
		Banner:     h.pingBanner(r.Context()),
	})
}

// HandleRegister handles POST /auth/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Sessions.Flash(w, r, "error", "Could not read the form. Please try again.")
		http.Redirect(w, r, "/auth/register", http.StatusSeeOther)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	route := r.FormValue("route")

	if email == "" || password == "" {
		h.Sessions.Flash(w, r, "error", "Email and password are required.")
		h.redirectToForm(w, r, "/auth/register", route)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	tok, err := h.Auth.Register(ctx, email, password)
	if err != nil {
		h.Log.Warn("registration failed", zap.String("email", email), zap.Error(err))
		h.flashAPIError(w, r, err, "Registration failed. Please try again.")
		h.redirectToForm(w, r, "/auth/register", route)
		return
	}

	h.finishSignIn(w, r, tok, route)
}

// finishSignIn persists the token pair and sends the browser to its
// return route once the credential check confirms the session.
func (h *Handler) finishSignIn(w http.ResponseWriter, r *http.Request, tok models.TokenResponse, route string) {
	h.Sessions.SaveTokens(w, r, tok)
	if h.Sessions.CheckCredentials(w, r) != session.StatusAuthenticated {
		h.Sessions.Flash(w, r, "error", "Signed in, but the session could not be confirmed.")
		h.redirectToForm(w, r, "/auth/login", route)
		return
	}
	http.Redirect(w, r, urlutil.SafeReturn(route, "", "/"), http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, data loginFormData) {
	templates.Render(w, r, "login", data)
}

func (h *Handler) redirectToForm(w http.ResponseWriter, r *http.Request, path, route string) {
	if route != "" {
		path += "?route=" + url.QueryEscape(urlutil.SafeReturn(route, "", "/"))
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func (h *Handler) flashAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	h.Sessions.Flash(w, r, "error", apiclient.UserMessage(err, fallback))
}

// pingBanner fetches the API banner, sanitized for direct rendering;
// failures just leave it blank.
func (h *Handler) pingBanner(ctx context.Context) template.HTML {
	if h.Status == nil {
		return ""
	}
	pctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	msg, err := h.Status.Ping(pctx)
	if err != nil {
		return ""
	}
	return viewdata.SafeHTML(msg)
}
