// internal/app/features/oauth/authorize.go
package oauth

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Gaucho-Racing/Sentinel/internal/app/store/apiclient"
	oauthstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/oauth"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/timeouts"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type scopeItem struct {
	ID          string
	Description string
}

type consentData struct {
	viewdata.BaseVM
	AppName    string
	ClientID   string
	Scopes     []scopeItem
	Query      string
	Remembered bool
}

type errorData struct {
	viewdata.BaseVM
	Message string
}

// ServeAuthorize handles GET /oauth/authorize. The incoming query string
// is forwarded to the API untouched; the API decides whether consent is
// required. A validation failure is terminal: render the server's message
// and stop.
func (h *Handler) ServeAuthorize(w http.ResponseWriter, r *http.Request) {
	token := h.Sessions.AccessToken(r)
	rawQuery := r.URL.RawQuery

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	v, err := h.OAuth.Validate(ctx, token, rawQuery)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	if v.Prompt == "none" {
		h.authorize(w, r, token, rawQuery)
		return
	}

	data := consentData{
		BaseVM:     viewdata.NewBaseVM(w, r, h.Sessions, "Authorize application", "/"),
		AppName:    h.appName(ctx, token, v.ClientID),
		ClientID:   v.ClientID,
		Scopes:     h.resolveScopes(ctx, token, v.Scope),
		Query:      rawQuery,
		Remembered: h.Sessions.ConsentRemembered(r, v.ClientID),
	}
	templates.Render(w, r, "oauth_consent", data)
}

// HandleAuthorize handles POST /oauth/authorize: execute the grant, then
// send the browser to the application's redirect URI with the issued code
// and the original state. The redirect_uri comes verbatim from the query
// string; the server already validated it against the registered list.
func (h *Handler) HandleAuthorize(w http.ResponseWriter, r *http.Request) {
	token := h.Sessions.AccessToken(r)
	rawQuery := r.URL.RawQuery
	h.authorize(w, r, token, rawQuery)
}

func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, token, rawQuery string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	code, err := h.OAuth.Authorize(ctx, token, rawQuery)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	q, _ := url.ParseQuery(rawQuery)
	dest, err := redirectURL(q.Get("redirect_uri"), code.Code, q.Get("state"))
	if err != nil {
		h.Log.Error("authorize redirect build failed",
			zap.String("client_id", code.ClientID), zap.Error(err))
		h.renderError(w, r, err)
		return
	}

	h.Sessions.RememberConsent(w, code.ClientID)
	h.Log.Info("authorization granted",
		zap.String("client_id", code.ClientID),
		zap.String("scope", code.Scope))
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// redirectURL appends code and state to the application's redirect URI,
// preserving any query it already carries. State is passed through only
// when the client supplied one.
func redirectURL(redirectURI, code, state string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("code", code)
	if state != "" {
		q.Set("state", state)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// appName resolves the client application's display name, falling back to
// the raw client id when the lookup fails. Cosmetic only.
func (h *Handler) appName(ctx context.Context, token, clientID string) string {
	app, err := h.Applications.Get(ctx, token, clientID)
	if err != nil || app.Name == "" {
		return clientID
	}
	return app.Name
}

// resolveScopes splits the requested scope string and attaches catalog
// descriptions. An unavailable catalog degrades to bare scope ids.
func (h *Handler) resolveScopes(ctx context.Context, token, scope string) []scopeItem {
	catalog, err := h.OAuth.Scopes(ctx, token)
	if err != nil {
		h.Log.Warn("scope catalog unavailable", zap.Error(err))
		catalog = nil
	}
	ids := oauthstore.SplitScope(scope)
	items := make([]scopeItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, scopeItem{ID: id, Description: catalog[id]})
	}
	return items
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	data := errorData{
		BaseVM:  viewdata.NewBaseVM(w, r, h.Sessions, "Sentinel OAuth Error", "/"),
		Message: apiclient.UserMessage(err, "The authorization request could not be completed."),
	}
	templates.Render(w, r, "oauth_error", data)
}
