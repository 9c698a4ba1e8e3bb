// internal/app/features/applications/handler.go
package applications

import (
	uierrors "github.com/Gaucho-Racing/Sentinel/internal/app/features/errors"
	applicationstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/applications"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the applications feature.
type Handler struct {
	Applications *applicationstore.Store
	Sessions     *session.Manager
	ErrLog       *uierrors.ErrorLogger
	Log          *zap.Logger
}

func NewHandler(apps *applicationstore.Store, sm *session.Manager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Applications: apps,
		Sessions:     sm,
		ErrLog:       errLog,
		Log:          logger,
	}
}

// canEdit is the client-side affordance gate: owner or admin. Advisory
// only; the API re-checks every write.
func canEdit(u models.User, app models.ClientApplication) bool {
	return u.ID != "" && (u.ID == app.UserID || u.IsAdmin())
}
