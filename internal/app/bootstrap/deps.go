// internal/app/bootstrap/deps.go
package bootstrap

import (
	"context"

	"github.com/Gaucho-Racing/Sentinel/internal/app/store/apiclient"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Deps holds backend dependencies for the app. The console keeps no
// database of its own; the one backend is the remote Sentinel API.
type Deps struct {
	API *apiclient.Client
}

// ConnectBackends builds the Sentinel API client. There is no persistent
// connection to establish, so this cannot fail against a down API; the
// first request will surface that instead.
func ConnectBackends(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (Deps, error) {
	client := apiclient.New(appCfg.APIBaseURL, logger)
	logger.Info("sentinel api client ready", zap.String("base_url", appCfg.APIBaseURL))
	return Deps{API: client}, nil
}

// EnsureSchema is a no-op: all durable state lives behind the API.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	return nil
}
