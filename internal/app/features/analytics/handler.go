// internal/app/features/analytics/handler.go
package analytics

import (
	"context"
	"net/http"
	"sync"

	"github.com/Gaucho-Racing/Sentinel/internal/app/store/apiclient"
	userstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/users"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/timeouts"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/viewdata"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the team analytics dashboard. All numbers are computed
// here from the roster and the login feed; the API keeps no aggregate
// endpoints.
type Handler struct {
	Users    *userstore.Store
	Sessions *session.Manager
	Log      *zap.Logger
}

func NewHandler(us *userstore.Store, sm *session.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    us,
		Sessions: sm,
		Log:      logger,
	}
}

type dashboardData struct {
	viewdata.BaseVM
	TotalUsers    int
	VerifiedUsers int
	TotalLogins   int

	Genders      []nameCount
	GradYears    []nameCount
	Subteams     []nameCount
	Roles        []nameCount
	Destinations []nameCount
	LoginTypes   []nameCount
	LoginSeries  []dayCount
}

// ServeDashboard handles GET /analytics. Roster and login feed are two
// independent fetches; either failing collapses its charts to empty and
// queues a notice.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	token := h.Sessions.AccessToken(r)
	vm := viewdata.NewBaseVM(w, r, h.Sessions, "Analytics", "/")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var (
		wg        sync.WaitGroup
		roster    []models.User
		logins    []models.UserLogin
		rosterErr error
		loginsErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		roster, rosterErr = h.Users.List(ctx, token)
	}()
	go func() {
		defer wg.Done()
		logins, loginsErr = h.Users.AllLogins(ctx, token)
	}()
	wg.Wait()

	if rosterErr != nil {
		h.Log.Warn("analytics roster fetch failed", zap.Error(rosterErr))
		h.Sessions.Flash(w, r, "error", apiclient.UserMessage(rosterErr, "Could not load users."))
	}
	if loginsErr != nil {
		h.Log.Warn("analytics login feed fetch failed", zap.Error(loginsErr))
		h.Sessions.Flash(w, r, "error", apiclient.UserMessage(loginsErr, "Could not load the login feed."))
	}

	verified := 0
	for _, u := range roster {
		if u.Verified {
			verified++
		}
	}

	data := dashboardData{
		BaseVM:        vm,
		TotalUsers:    len(roster),
		VerifiedUsers: verified,
		TotalLogins:   len(logins),
		Genders:       genderCounts(roster),
		GradYears:     gradYearCounts(roster),
		Subteams:      subteamCounts(roster),
		Roles:         roleCounts(roster),
		Destinations:  destinationCounts(logins),
		LoginTypes:    loginTypeCounts(logins),
		LoginSeries:   loginSeries(logins),
	}
	templates.Render(w, r, "analytics", data)
}
