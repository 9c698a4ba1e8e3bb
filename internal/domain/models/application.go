package models

import (
	"strings"
	"time"
)

// ClientApplication is a registered OAuth client. The secret is only
// displayed to owners and admins; the server enforces that a usable
// application carries at least one non-empty redirect URI.
type ClientApplication struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Secret       string    `json:"secret"`
	Name         string    `json:"name"`
	RedirectURIs []string  `json:"redirect_uris"`
	UpdatedAt    time.Time `json:"updated_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// InitClientApplication is the blank value used by the "new application"
// pseudo-route before the first save.
func InitClientApplication() ClientApplication {
	return ClientApplication{RedirectURIs: []string{}}
}

// CleanRedirectURIs strips blank rows from the redirect URI list. Blank
// entries are kept while editing so a freshly added row does not vanish
// under the user's cursor; they are dropped only at submit time.
func (c ClientApplication) CleanRedirectURIs() []string {
	out := make([]string, 0, len(c.RedirectURIs))
	for _, uri := range c.RedirectURIs {
		if trimmed := strings.TrimSpace(uri); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
