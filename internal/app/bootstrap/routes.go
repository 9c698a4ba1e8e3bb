// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	analyticsfeature "github.com/Gaucho-Racing/Sentinel/internal/app/features/analytics"
	applicationsfeature "github.com/Gaucho-Racing/Sentinel/internal/app/features/applications"
	errorsfeature "github.com/Gaucho-Racing/Sentinel/internal/app/features/errors"
	homefeature "github.com/Gaucho-Racing/Sentinel/internal/app/features/home"
	loginfeature "github.com/Gaucho-Racing/Sentinel/internal/app/features/login"
	logoutfeature "github.com/Gaucho-Racing/Sentinel/internal/app/features/logout"
	oauthfeature "github.com/Gaucho-Racing/Sentinel/internal/app/features/oauth"
	usersfeature "github.com/Gaucho-Racing/Sentinel/internal/app/features/users"
	applicationstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/applications"
	authstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/auth"
	oauthstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/oauth"
	statusstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/status"
	userstore "github.com/Gaucho-Racing/Sentinel/internal/app/store/users"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/session"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app. WAFFLE calls it after configuration, backend connections, and
// Startup have completed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) (http.Handler, error) {
	// Typed stores over the shared Sentinel API client.
	users := userstore.New(deps.API)
	auth := authstore.New(deps.API)
	apps := applicationstore.New(deps.API)
	oauth := oauthstore.New(deps.API)
	status := statusstore.New(deps.API)

	// Session manager owns both token cookies and the per-browser user
	// store. Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := session.NewManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.CookiePrefix, secure, users, auth, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup. Dev mode
	// enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Friendly pages for unmatched routes. Set before any Mount so the
	// feature subrouters inherit them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorsfeature.RenderError(w, r, "Page not found", "There's nothing at "+r.URL.Path+".")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errorsfeature.RenderError(w, r, "Method not allowed", "That action isn't supported here.")
	})

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(status, sessionMgr, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(auth, status, sessionMgr, appCfg.DiscordClientID, appCfg.DiscordAuthURL, appCfg.BaseURL, logger)
	r.Mount("/auth", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// OAuth consent flow
	oauthHandler := oauthfeature.NewHandler(oauth, apps, sessionMgr, logger)
	r.Mount("/oauth", oauthfeature.Routes(oauthHandler, sessionMgr))

	// Member directory and profiles
	usersHandler := usersfeature.NewHandler(users, sessionMgr, errLog, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, sessionMgr))
	r.With(sessionMgr.RequireAuth).Get("/profile", usersHandler.ServeMe)

	// Client application management
	appsHandler := applicationsfeature.NewHandler(apps, sessionMgr, errLog, logger)
	r.Mount("/applications", applicationsfeature.Routes(appsHandler, sessionMgr))

	// Analytics dashboard
	analyticsHandler := analyticsfeature.NewHandler(users, sessionMgr, logger)
	r.Mount("/analytics", analyticsfeature.Routes(analyticsHandler, sessionMgr))

	return r, nil
}
