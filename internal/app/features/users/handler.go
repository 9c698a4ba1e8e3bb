// internal/app/features/users/handler.go
package users

import (
	uierrors "github.com/Gaucho-Racing/Sentinel/internal/app/features/errors"
	userstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/users"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the users feature.
type Handler struct {
	Users    *userstore.Store
	Sessions *session.Manager
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(us *userstore.Store, sm *session.Manager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    us,
		Sessions: sm,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// selfOrAdmin gates edit affordances and the grant/reset actions.
// Advisory only; the API re-checks every write.
func selfOrAdmin(current models.User, targetID string) bool {
	return current.ID != "" && (current.ID == targetID || current.IsAdmin())
}
