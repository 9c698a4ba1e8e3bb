// Package viewdata builds the view-model fields every page shares.
package viewdata

import (
	"html/template"
	"net/http"

	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/microcosm-cc/bluemonday"
)

// SiteName is the display name used across page chrome.
const SiteName = "Sentinel"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// User context (from the credential check)
	IsLoggedIn bool
	UserID     string
	UserName   string
	AvatarURL  string
	IsAdmin    bool

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// One-shot notifications drained from the session
	Notices []session.Notice
}

// uiPolicy sanitizes API-provided strings that pages render as HTML,
// such as the ping banner.
var uiPolicy = bluemonday.UGCPolicy()

// SafeHTML sanitizes a server-provided string for direct HTML rendering.
func SafeHTML(s string) template.HTML {
	return template.HTML(uiPolicy.Sanitize(s))
}

// NewBaseVM creates a fully populated BaseVM for a page. The session
// manager may be nil in tests; notices are then skipped.
func NewBaseVM(w http.ResponseWriter, r *http.Request, m *session.Manager, title, backDefault string) BaseVM {
	vm := BaseVM{
		SiteName:    SiteName,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: httpnav.CurrentPath(r),
	}

	if u, ok := session.CurrentUser(r); ok && u.ID != "" {
		vm.IsLoggedIn = true
		vm.UserID = u.ID
		vm.UserName = u.FullName()
		vm.AvatarURL = u.AvatarURL
		vm.IsAdmin = u.IsAdmin()
	}

	if m != nil {
		vm.Notices = m.PopNotices(w, r)
	}

	return vm
}
