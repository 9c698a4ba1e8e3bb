// internal/app/features/oauth/handler.go
package oauth

import (
	applicationstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/applications"
	oauthstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/oauth"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"go.uber.org/zap"
)

// Handler drives the authorization consent flow for client applications.
// The Sentinel API is the authority for every decision here; the console
// only validates, prompts, and forwards.
type Handler struct {
	OAuth        *oauthstore.Store
	Applications *applicationstore.Store
	Sessions     *session.Manager
	Log          *zap.Logger
}

func NewHandler(oa *oauthstore.Store, apps *applicationstore.Store, sm *session.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		OAuth:        oa,
		Applications: apps,
		Sessions:     sm,
		Log:          logger,
	}
}
