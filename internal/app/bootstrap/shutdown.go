// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown flushes the trace exporter. The API client holds no
// connections that need closing.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps Deps, logger *zap.Logger) error {
	if tracerShutdown != nil {
		if err := tracerShutdown(ctx); err != nil {
			logger.Error("trace exporter shutdown failed", zap.Error(err))
			return err
		}
	}
	return nil
}
