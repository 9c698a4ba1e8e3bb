// internal/app/features/oauth/handler_test.go
package oauth_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Gaucho-Racing/Sentinel/internal/app/features/oauth"
	applicationstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/applications"
	authstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/auth"
	oauthstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/oauth"
	"github.com/Gaucho-Racing/Sentinel/internal/app/store/users"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
	"github.com/Gaucho-Racing/Sentinel/internal/testutil"
	"go.uber.org/zap"
)

const authorizeQuery = "client_id=app-1&redirect_uri=https%3A%2F%2Ftelemetry.gauchoracing.com%2Fcallback&scope=read%3Auser&response_type=code&state=xyz"

func newTestHandler(t *testing.T, api *testutil.API) (*oauth.Handler, *session.Manager) {
	t.Helper()
	client := api.Client()
	sm, err := session.NewManager("test-session-key-must-be-32-chars-long", "sentinel_session", ".gauchoracing.com", "sentinel_", false, users.New(client), authstore.New(client), zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	h := oauth.NewHandler(oauthstore.New(client), applicationstore.New(client), sm, zap.NewNop())
	return h, sm
}

// signedInRequest returns a request carrying a session with an access
// token already persisted.
func signedInRequest(t *testing.T, sm *session.Manager, method, target string) *http.Request {
	t.Helper()
	seed := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	sm.SaveTokens(rec, seed, models.TokenResponse{AccessToken: "at-1", TokenType: "Bearer"})

	req := httptest.NewRequest(method, target, nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 && c.Value != "" {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	return req
}

func TestServeAuthorizePromptNoneSkipsConsent(t *testing.T) {
	api := testutil.NewAPI(t)
	var posted bool
	api.Mux.HandleFunc("GET /oauth/authorize", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(t, w, models.AuthorizeValidation{
			ClientID:    "app-1",
			RedirectURI: "https://telemetry.gauchoracing.com/callback",
			Scope:       "read:user",
			Prompt:      "none",
		})
	})
	api.Mux.HandleFunc("POST /oauth/authorize", func(w http.ResponseWriter, r *http.Request) {
		posted = true
		testutil.WriteJSON(t, w, models.AuthorizationCode{Code: "code-123", ClientID: "app-1", Scope: "read:user"})
	})

	h, sm := newTestHandler(t, api)
	req := signedInRequest(t, sm, "GET", "/oauth/authorize?"+authorizeQuery)
	rec := httptest.NewRecorder()
	h.ServeAuthorize(rec, req)

	if !posted {
		t.Fatal("prompt=none should authorize without showing the consent card")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse Location: %v", err)
	}
	if loc.Host != "telemetry.gauchoracing.com" || loc.Path != "/callback" {
		t.Errorf("Location = %q, want the registered callback", loc)
	}
	if got := loc.Query().Get("code"); got != "code-123" {
		t.Errorf("code = %q, want code-123", got)
	}
	if got := loc.Query().Get("state"); got != "xyz" {
		t.Errorf("state = %q, want xyz", got)
	}
}

func TestServeAuthorizeConsentListsRequestedScopes(t *testing.T) {
	api := testutil.NewAPI(t)
	var posted, fetchedScopes, fetchedApp bool
	api.Mux.HandleFunc("GET /oauth/authorize", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("state"); got != "xyz" {
			t.Errorf("forwarded state = %q, want xyz", got)
		}
		testutil.WriteJSON(t, w, models.AuthorizeValidation{
			ClientID: "app-1",
			Scope:    "read:user read:drive",
			Prompt:   "consent",
		})
	})
	api.Mux.HandleFunc("POST /oauth/authorize", func(w http.ResponseWriter, r *http.Request) {
		posted = true
	})
	api.Mux.HandleFunc("GET /oauth/scopes", func(w http.ResponseWriter, r *http.Request) {
		fetchedScopes = true
		testutil.WriteJSON(t, w, map[string]string{
			"read:user":  "Read your profile",
			"read:drive": "Read your Drive access",
		})
	})
	api.Mux.HandleFunc("GET /applications/app-1", func(w http.ResponseWriter, r *http.Request) {
		fetchedApp = true
		testutil.WriteJSON(t, w, testutil.SampleApplication("app-1", "usr-9"))
	})

	h, sm := newTestHandler(t, api)
	req := signedInRequest(t, sm, "GET", "/oauth/authorize?"+authorizeQuery)
	rec := httptest.NewRecorder()
	testutil.ServeQuiet(rec, req, h.ServeAuthorize)

	if posted {
		t.Error("consent prompt must not authorize on its own")
	}
	if !fetchedScopes {
		t.Error("expected the scope catalog to be fetched")
	}
	if !fetchedApp {
		t.Error("expected the application name to be fetched")
	}
}

func TestServeAuthorizeValidationErrorIsTerminal(t *testing.T) {
	api := testutil.NewAPI(t)
	var posted bool
	api.Mux.HandleFunc("GET /oauth/authorize", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteError(w, http.StatusBadRequest, "redirect_uri is invalid")
	})
	api.Mux.HandleFunc("POST /oauth/authorize", func(w http.ResponseWriter, r *http.Request) {
		posted = true
	})

	h, sm := newTestHandler(t, api)
	req := signedInRequest(t, sm, "GET", "/oauth/authorize?"+authorizeQuery)
	rec := httptest.NewRecorder()
	testutil.ServeQuiet(rec, req, h.ServeAuthorize)

	if posted {
		t.Error("a failed validation must not reach the authorize call")
	}
}

func TestHandleAuthorizeRedirectsWithCodeAndRemembersConsent(t *testing.T) {
	api := testutil.NewAPI(t)
	api.Mux.HandleFunc("POST /oauth/authorize", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer at-1" {
			t.Errorf("Authorization = %q, want bearer at-1", got)
		}
		testutil.WriteJSON(t, w, models.AuthorizationCode{Code: "code-456", ClientID: "app-1", Scope: "read:user"})
	})

	h, sm := newTestHandler(t, api)
	req := signedInRequest(t, sm, "POST", "/oauth/authorize?"+authorizeQuery)
	rec := httptest.NewRecorder()
	h.HandleAuthorize(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Location"), "code=code-456") {
		t.Errorf("Location = %q, want it to carry the issued code", rec.Header().Get("Location"))
	}

	var remembered bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sentinel_last_authorized_app-1" && c.MaxAge > 0 {
			remembered = true
		}
	}
	if !remembered {
		t.Error("expected a last-authorized cookie for the client")
	}
}
