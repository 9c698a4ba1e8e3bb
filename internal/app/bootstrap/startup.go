// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/Gaucho-Racing/Sentinel/internal/app/resources"
	"github.com/Gaucho-Racing/Sentinel/internal/app/system/telemetry"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// tracerShutdown is set by Startup and drained by Shutdown.
var tracerShutdown func(context.Context) error

// Startup runs one-time application initialization after backends are
// connected but before the HTTP handler is built: shared templates and
// the trace exporter.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()
	tracerShutdown = telemetry.Setup("sentinel-web", appCfg.OTLPEndpoint, appCfg.OTLPInsecure, logger)
	return nil
}
