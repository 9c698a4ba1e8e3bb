// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging, timeouts). AppConfig is everything specific to the Sentinel
// web console: where the Sentinel API lives, how session cookies are
// signed and scoped, and the Discord OAuth entry point.
type AppConfig struct {
	// Sentinel API configuration
	APIBaseURL string // Base URL of the Sentinel REST API (e.g., https://api.gauchoracing.com)

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for the signed session
	SessionDomain string // Shared parent domain for mirror cookies (e.g., ".gauchoracing.com"; blank disables mirroring)
	CookiePrefix  string // Namespace prefix for shared-domain cookies (drives bulk delete on logout)

	// Discord OAuth configuration
	DiscordClientID string // Discord application client ID
	DiscordAuthURL  string // Discord authorize endpoint

	// Base URL of this console, used for the Discord callback
	BaseURL string // e.g., "https://sso.gauchoracing.com"

	// Tracing configuration
	OTLPEndpoint string // OTLP gRPC collector endpoint (blank disables tracing)
	OTLPInsecure bool   // Use an insecure OTLP connection (dev collectors)
}
