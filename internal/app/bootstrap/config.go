// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the Sentinel web
// console. These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: SENTINELWEB_API_BASE_URL, SENTINELWEB_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:7999", Desc: "Base URL of the Sentinel REST API"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "sentinel_session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Shared parent domain for mirror cookies (blank disables mirroring)"},
	{Name: "cookie_prefix", Default: "sentinel_", Desc: "Prefix for shared-domain cookies"},

	{Name: "discord_client_id", Default: "", Desc: "Discord OAuth2 client ID"},
	{Name: "discord_auth_url", Default: "https://discord.com/oauth2/authorize", Desc: "Discord authorize endpoint"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL of this console (for the Discord callback)"},

	{Name: "otlp_endpoint", Default: "", Desc: "OTLP gRPC collector endpoint (blank disables tracing)"},
	{Name: "otlp_insecure", Default: true, Desc: "Use an insecure OTLP connection"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// SENTINELWEB_* environment variables, and command-line flags, with
// precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SENTINELWEB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: appValues.String("api_base_url"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		CookiePrefix:  appValues.String("cookie_prefix"),

		DiscordClientID: appValues.String("discord_client_id"),
		DiscordAuthURL:  appValues.String("discord_auth_url"),

		BaseURL: appValues.String("base_url"),

		OTLPEndpoint: appValues.String("otlp_endpoint"),
		OTLPInsecure: appValues.Bool("otlp_insecure"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation, catching broken
// URLs and cookie-domain mistakes before anything starts.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validateHTTPURL(appCfg.APIBaseURL); err != nil {
		logger.Error("invalid api_base_url", zap.Error(err))
		return fmt.Errorf("invalid api_base_url: %w", err)
	}
	if err := validateHTTPURL(appCfg.BaseURL); err != nil {
		logger.Error("invalid base_url", zap.Error(err))
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if appCfg.SessionDomain != "" && !strings.HasPrefix(appCfg.SessionDomain, ".") {
		return fmt.Errorf("session_domain %q must start with a dot for cross-subdomain cookies", appCfg.SessionDomain)
	}
	if coreCfg.Env == "prod" && appCfg.SessionKey == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("session_key must be changed from the dev default in prod")
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
