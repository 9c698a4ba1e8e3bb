// internal/app/features/applications/handler_test.go
package applications_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/Gaucho-Racing/Sentinel/internal/app/features/applications"
	applicationstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/applications"
	authstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/auth"
	"github.com/Gaucho-Racing/Sentinel/internal/app/store/users"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
	"github.com/Gaucho-Racing/Sentinel/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, api *testutil.API) (*applications.Handler, *session.Manager) {
	t.Helper()
	client := api.Client()
	sm, err := session.NewManager("test-session-key-must-be-32-chars-long", "sentinel_session", "", "sentinel_", false, users.New(client), authstore.New(client), zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	h := applications.NewHandler(applicationstore.New(client), sm, nil, zap.NewNop())
	return h, sm
}

// signedInRequest builds a request with a persisted access token and the
// given user injected into the context.
func signedInRequest(t *testing.T, sm *session.Manager, u models.User, method, target string, form url.Values) *http.Request {
	t.Helper()
	seed := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	sm.SaveTokens(rec, seed, models.TokenResponse{AccessToken: "at-1", TokenType: "Bearer"})

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 && c.Value != "" {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	return session.WithTestUser(req, u)
}

func TestHandleCreateBlankNameSkipsAPI(t *testing.T) {
	api := testutil.NewAPI(t)
	called := false
	api.Mux.HandleFunc("POST /applications", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	h, sm := newTestHandler(t, api)
	u := testutil.SampleUser("usr-1")
	req := signedInRequest(t, sm, u, "POST", "/applications", url.Values{
		"name":          {"   "},
		"redirect_uris": {"https://a.example/cb"},
	})
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if called {
		t.Error("a blank name must not produce an API call")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/applications/new" {
		t.Errorf("Location = %q, want /applications/new", loc)
	}
}

func TestHandleCreateStripsBlankRedirectRows(t *testing.T) {
	api := testutil.NewAPI(t)
	var got models.ClientApplication
	api.Mux.HandleFunc("POST /applications", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		created := got
		created.ID = "app-new"
		testutil.WriteJSON(t, w, created)
	})

	h, sm := newTestHandler(t, api)
	u := testutil.SampleUser("usr-1")
	req := signedInRequest(t, sm, u, "POST", "/applications", url.Values{
		"name":          {"Pit Wall"},
		"redirect_uris": {"https://a.example/cb", "   ", "", "https://b.example/cb"},
	})
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	want := []string{"https://a.example/cb", "https://b.example/cb"}
	if !reflect.DeepEqual(got.RedirectURIs, want) {
		t.Errorf("redirect_uris = %v, want %v", got.RedirectURIs, want)
	}
	if got.UserID != "usr-1" {
		t.Errorf("owner = %q, want the signed-in user", got.UserID)
	}
	if loc := rec.Header().Get("Location"); loc != "/applications/app-new" {
		t.Errorf("Location = %q, want /applications/app-new", loc)
	}
}

func TestServeNewDoesNotFetch(t *testing.T) {
	api := testutil.NewAPI(t)
	called := false
	api.Mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		called = true
		testutil.WriteError(w, http.StatusNotFound, "unexpected call")
	})

	h, sm := newTestHandler(t, api)
	u := testutil.SampleUser("usr-1")
	req := signedInRequest(t, sm, u, "GET", "/applications/new", nil)
	rec := httptest.NewRecorder()
	testutil.ServeQuiet(rec, req, h.ServeNew)

	if called {
		t.Error("the new-application form must not hit the API")
	}
}

func TestServeListScopesToOwnerUnlessAdmin(t *testing.T) {
	api := testutil.NewAPI(t)
	var allCalls, ownCalls int
	api.Mux.HandleFunc("GET /applications", func(w http.ResponseWriter, r *http.Request) {
		allCalls++
		testutil.WriteJSON(t, w, []models.ClientApplication{})
	})
	api.Mux.HandleFunc("GET /users/usr-1/applications", func(w http.ResponseWriter, r *http.Request) {
		ownCalls++
		testutil.WriteJSON(t, w, []models.ClientApplication{testutil.SampleApplication("app-1", "usr-1")})
	})

	h, sm := newTestHandler(t, api)

	req := signedInRequest(t, sm, testutil.SampleUser("usr-1"), "GET", "/applications", nil)
	testutil.ServeQuiet(httptest.NewRecorder(), req, h.ServeList)
	if ownCalls != 1 || allCalls != 0 {
		t.Fatalf("member list: own=%d all=%d, want 1/0", ownCalls, allCalls)
	}

	req = signedInRequest(t, sm, testutil.SampleAdmin("usr-1"), "GET", "/applications", nil)
	testutil.ServeQuiet(httptest.NewRecorder(), req, h.ServeList)
	if allCalls != 1 {
		t.Fatalf("admin list: all=%d, want 1", allCalls)
	}
}

func TestHandleUpdateMergesOntoCanonicalCopy(t *testing.T) {
	api := testutil.NewAPI(t)
	existing := testutil.SampleApplication("app-1", "usr-1")
	existing.Secret = "shh"
	var saved models.ClientApplication
	api.Mux.HandleFunc("GET /applications/app-1", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(t, w, existing)
	})
	api.Mux.HandleFunc("POST /applications", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&saved); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		testutil.WriteJSON(t, w, saved)
	})

	h, sm := newTestHandler(t, api)
	req := signedInRequest(t, sm, testutil.SampleUser("usr-1"), "POST", "/applications/app-1/edit", url.Values{
		"name":          {"Renamed"},
		"redirect_uris": {"https://a.example/cb", ""},
	})
	req = testutil.WithChiURLParam(req, "id", "app-1")
	rec := httptest.NewRecorder()
	h.HandleUpdate(rec, req)

	if saved.Name != "Renamed" {
		t.Errorf("saved name = %q, want Renamed", saved.Name)
	}
	if saved.Secret != "shh" || saved.UserID != "usr-1" {
		t.Error("fields absent from the form must survive the round trip")
	}
	if want := []string{"https://a.example/cb"}; !reflect.DeepEqual(saved.RedirectURIs, want) {
		t.Errorf("redirect_uris = %v, want %v", saved.RedirectURIs, want)
	}
	if loc := rec.Header().Get("Location"); loc != "/applications/app-1" {
		t.Errorf("Location = %q, want /applications/app-1", loc)
	}
}
