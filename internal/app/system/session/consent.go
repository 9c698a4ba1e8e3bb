// internal/app/system/session/consent.go
package session

import (
	"net/http"
	"strconv"
	"time"
)

const lastAuthorizedPrefix = "last_authorized_"

// consentTTL bounds how long a remembered approval lasts. The server
// applies its own window; this only gates the local hint.
const consentTTL = 7 * 24 * time.Hour

// RememberConsent records on the shared domain that this browser approved
// the given client, as a unix timestamp. Cleared by Logout along with the
// other prefixed cookies.
func (m *Manager) RememberConsent(w http.ResponseWriter, clientID string) {
	stamp := strconv.FormatInt(time.Now().Unix(), 10)
	m.setSharedCookie(w, lastAuthorizedPrefix+clientID, stamp, int(consentTTL.Seconds()))
}

// ConsentRemembered reports whether this browser holds an unexpired
// approval record for the client.
func (m *Manager) ConsentRemembered(r *http.Request, clientID string) bool {
	c, err := r.Cookie(m.cookiePrefix + lastAuthorizedPrefix + clientID)
	if err != nil || c.Value == "" {
		return false
	}
	unix, err := strconv.ParseInt(c.Value, 10, 64)
	if err != nil {
		return false
	}
	return time.Since(time.Unix(unix, 0)) < consentTTL
}
