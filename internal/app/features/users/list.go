// internal/app/features/users/list.go
package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/Gaucho-Racing/Sentinel/internal/app/store/apiclient"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/timeouts"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/viewdata"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type listData struct {
	viewdata.BaseVM
	Users  []models.User
	Search string
	Total  int
}

// ServeList handles GET /users, the member directory. The API returns the
// full roster; filtering happens here against the search box.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	token := h.Sessions.AccessToken(r)
	search := query.Get(r, "search")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()
	all, err := h.Users.List(ctx, token)
	if err != nil {
		h.Log.Warn("list users failed", zap.Error(err))
		h.Sessions.Flash(w, r, "error", apiclient.UserMessage(err, "Could not load the member directory."))
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(w, r, h.Sessions, "Users", "/"),
		Users:  filterUsers(all, search),
		Search: search,
		Total:  len(all),
	}
	templates.Render(w, r, "users_list", data)
}

// filterUsers keeps users whose name, username, or email contains the
// needle, case-insensitively. An empty needle keeps everyone.
func filterUsers(all []models.User, needle string) []models.User {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return all
	}
	out := make([]models.User, 0, len(all))
	for _, u := range all {
		hay := strings.ToLower(u.FullName() + " " + u.Username + " " + u.Email)
		if strings.Contains(hay, needle) {
			out = append(out, u)
		}
	}
	return out
}
