// internal/app/features/login/handler_test.go
package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Gaucho-Racing/Sentinel/internal/app/features/login"
	authstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/auth"
	"github.com/Gaucho-Racing/Sentinel/internal/app/store/users"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/testutil"
	"go.uber.org/zap"
)

const sessionKey = "test-session-key-must-be-32-chars-long"

func newTestHandler(t *testing.T, api *testutil.API) (*login.Handler, *session.Manager) {
	t.Helper()
	client := api.Client()
	auth := authstore.New(client)
	sm, err := session.NewManager(sessionKey, "sentinel_session", "", "sentinel_", false, users.New(client), auth, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	h := login.NewHandler(auth, nil, sm, "discord-client-id", "https://discord.com/oauth2/authorize", "https://sso.gauchoracing.com", zap.NewNop())
	return h, sm
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleLoginPersistsTokensAndRedirects(t *testing.T) {
	api := testutil.NewAPI(t)
	api.Mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(t, w, map[string]any{
			"access_token":  "at-1",
			"refresh_token": "rt-1",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	})
	api.Mux.HandleFunc("GET /users/@me", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer at-1" {
			t.Errorf("Authorization = %q, want bearer at-1", got)
		}
		testutil.WriteJSON(t, w, testutil.SampleUser("usr-1"))
	})

	h, _ := newTestHandler(t, api)

	req := postForm("/auth/login", url.Values{
		"email":    {"sam@gauchoracing.com"},
		"password": {"hunter22"},
		"route":    {"/applications"},
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/applications" {
		t.Errorf("Location = %q, want /applications", loc)
	}
	var haveSession bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sentinel_session" && c.MaxAge >= 0 {
			haveSession = true
		}
	}
	if !haveSession {
		t.Error("expected a session cookie to be set")
	}
}

func TestHandleLoginRejectedByAPI(t *testing.T) {
	api := testutil.NewAPI(t)
	api.Mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
	})

	h, _ := newTestHandler(t, api)

	req := postForm("/auth/login", url.Values{
		"email":    {"sam@gauchoracing.com"},
		"password": {"wrong"},
	})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/auth/login" {
		t.Errorf("Location = %q, want /auth/login", loc)
	}
}

func TestHandleLoginBlankFieldsSkipsAPI(t *testing.T) {
	api := testutil.NewAPI(t)
	called := false
	api.Mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		called = true
		testutil.WriteError(w, http.StatusBadRequest, "should not be reached")
	})

	h, _ := newTestHandler(t, api)

	req := postForm("/auth/login", url.Values{"email": {""}, "password": {""}})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)

	if called {
		t.Error("blank credentials should not produce an API call")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
}

func TestServeLoginDiscordExchangesCode(t *testing.T) {
	api := testutil.NewAPI(t)
	api.Mux.HandleFunc("POST /auth/login/discord", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("code"); got != "disc-code" {
			t.Errorf("code = %q, want disc-code", got)
		}
		testutil.WriteJSON(t, w, map[string]any{"access_token": "at-d", "token_type": "Bearer"})
	})
	api.Mux.HandleFunc("GET /users/@me", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(t, w, testutil.SampleUser("usr-1"))
	})

	h, _ := newTestHandler(t, api)

	req := httptest.NewRequest("GET", "/auth/login/discord?code=disc-code&state=%2Fusers", nil)
	rec := httptest.NewRecorder()
	h.ServeLoginDiscord(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/users" {
		t.Errorf("Location = %q, want /users", loc)
	}
}

func TestServeLoginDiscordWithoutCodeGoesHome(t *testing.T) {
	api := testutil.NewAPI(t)
	h, _ := newTestHandler(t, api)

	req := httptest.NewRequest("GET", "/auth/login/discord", nil)
	rec := httptest.NewRecorder()
	h.ServeLoginDiscord(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want /", loc)
	}
}
