// internal/testutil/testutil.go
package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Gaucho-Racing/Sentinel/internal/app/store/apiclient"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// ServeQuiet invokes a handler and swallows template-render panics.
// Handler tests run without a booted template engine; reaching the render
// call means the handler logic under test already ran.
func ServeQuiet(w http.ResponseWriter, r *http.Request, h http.HandlerFunc) {
	defer func() {
		_ = recover()
	}()
	h(w, r)
}

// API is a fake Sentinel API for handler tests. Register endpoints on Mux,
// then point an apiclient at URL.
type API struct {
	Mux    *http.ServeMux
	Server *httptest.Server
}

// NewAPI starts a fake API server that shuts down with the test.
func NewAPI(t *testing.T) *API {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &API{Mux: mux, Server: srv}
}

// Client returns an API client pointed at the fake server.
func (a *API) Client() *apiclient.Client {
	return apiclient.New(a.Server.URL, zap.NewNop())
}

// WriteJSON encodes v onto a fake endpoint's response.
func WriteJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

// WriteError writes a Sentinel-style JSON error body.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// DrainNotices replays the session cookies a handler wrote and pops any
// queued notices, the way the next page render would.
func DrainNotices(t *testing.T, sm *session.Manager, rec *httptest.ResponseRecorder) []session.Notice {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 && c.Value != "" {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	return sm.PopNotices(httptest.NewRecorder(), req)
}

// SampleUser builds a populated member user for tests.
func SampleUser(id string) models.User {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return models.User{
		ID:        id,
		Username:  "sample",
		FirstName: "Sam",
		LastName:  "Pell",
		Email:     "sam@gauchoracing.com",
		Verified:  true,
		Subteams:  []models.Subteam{{ID: "st-ev", Name: "Electronics", CreatedAt: now}},
		Roles:     []string{"d_member"},
		UpdatedAt: now,
		CreatedAt: now,
	}
}

// SampleAdmin builds a user carrying the admin role.
func SampleAdmin(id string) models.User {
	u := SampleUser(id)
	u.Username = "admin"
	u.Roles = append(u.Roles, "d_admin")
	return u
}

// SampleApplication builds a client application owned by userID.
func SampleApplication(id, userID string) models.ClientApplication {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return models.ClientApplication{
		ID:           id,
		UserID:       userID,
		Name:         "Race Telemetry",
		RedirectURIs: []string{"https://telemetry.gauchoracing.com/callback"},
		UpdatedAt:    now,
		CreatedAt:    now,
	}
}
