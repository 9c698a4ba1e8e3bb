// internal/app/features/analytics/handler_test.go
package analytics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gaucho-Racing/Sentinel/internal/app/features/analytics"
	authstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/auth"
	userstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/users"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
	"github.com/Gaucho-Racing/Sentinel/internal/testutil"
	"go.uber.org/zap"
)

func TestServeDashboardFetchesRosterAndLogins(t *testing.T) {
	api := testutil.NewAPI(t)
	var users, logins int
	api.Mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		users++
		testutil.WriteJSON(t, w, []models.User{testutil.SampleUser("usr-1")})
	})
	api.Mux.HandleFunc("GET /logins", func(w http.ResponseWriter, r *http.Request) {
		logins++
		testutil.WriteJSON(t, w, []models.UserLogin{})
	})

	client := api.Client()
	sm, err := session.NewManager("test-session-key-must-be-32-chars-long", "sentinel_session", "", "sentinel_", false, userstore.New(client), authstore.New(client), zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	h := analytics.NewHandler(userstore.New(client), sm, zap.NewNop())

	req := session.WithTestUser(httptest.NewRequest("GET", "/analytics", nil), testutil.SampleAdmin("usr-1"))
	rec := httptest.NewRecorder()
	testutil.ServeQuiet(rec, req, h.ServeDashboard)

	if users != 1 || logins != 1 {
		t.Errorf("fetches = users %d, logins %d; want 1 each", users, logins)
	}
}

func TestServeDashboardNoticesLoginFeedFailure(t *testing.T) {
	api := testutil.NewAPI(t)
	api.Mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteJSON(t, w, []models.User{testutil.SampleUser("usr-1")})
	})
	api.Mux.HandleFunc("GET /logins", func(w http.ResponseWriter, r *http.Request) {
		testutil.WriteError(w, http.StatusForbidden, "admin only")
	})

	client := api.Client()
	sm, err := session.NewManager("test-session-key-must-be-32-chars-long", "sentinel_session", "", "sentinel_", false, userstore.New(client), authstore.New(client), zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	h := analytics.NewHandler(userstore.New(client), sm, zap.NewNop())

	req := session.WithTestUser(httptest.NewRequest("GET", "/analytics", nil), testutil.SampleUser("usr-1"))
	rec := httptest.NewRecorder()
	testutil.ServeQuiet(rec, req, h.ServeDashboard)

	notices := testutil.DrainNotices(t, sm, rec)
	if len(notices) == 0 {
		t.Fatal("expected a notice after the login feed fetch was rejected")
	}
}
