// internal/app/features/login/discord.go
package login

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/timeouts"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// discordAuthorizeURL builds the Discord authorize URL. The return route
// rides in the OAuth state parameter so the callback can finish the
// round trip; prompt=none because Sentinel accounts are already linked
// to Discord and re-consent is just friction.
func (h *Handler) discordAuthorizeURL(route string) string {
	if h.DiscordClientID == "" {
		return ""
	}
	cfg := oauth2.Config{
		ClientID:    h.DiscordClientID,
		RedirectURL: h.RedirectURL,
		Scopes:      []string{"identify", "email"},
		Endpoint:    oauth2.Endpoint{AuthURL: h.DiscordAuthURL},
	}
	return cfg.AuthCodeURL(route, oauth2.SetAuthURLParam("prompt", "none"))
}

type discordErrorData struct {
	viewdata.BaseVM
	Message   string
	NoAccount bool
	RetryURL  string
}

// ServeLoginDiscord handles GET /auth/login/discord, the callback Discord
// redirects to. The code is exchanged server-side for a Sentinel token
// pair; the state parameter carries the return route.
func (h *Handler) ServeLoginDiscord(w http.ResponseWriter, r *http.Request) {
	code := query.Get(r, "code")
	route := query.Get(r, "state")
	if code == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	tok, err := h.Auth.LoginDiscord(ctx, code)
	if err != nil {
		h.Log.Warn("discord login failed", zap.Error(err))
		data := discordErrorData{
			BaseVM:    viewdata.NewBaseVM(w, r, h.Sessions, "Discord sign-in failed", "/auth/login"),
			Message:   err.Error(),
			NoAccount: strings.Contains(err.Error(), "No account with this"),
			RetryURL:  h.discordAuthorizeURL(route),
		}
		templates.Render(w, r, "login_discord_error", data)
		return
	}

	h.Sessions.SaveTokens(w, r, tok)
	if h.Sessions.CheckCredentials(w, r) != session.StatusAuthenticated {
		h.Sessions.Flash(w, r, "error", "Signed in with Discord, but the session could not be confirmed.")
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, urlutil.SafeReturn(route, "", "/"), http.StatusSeeOther)
}
