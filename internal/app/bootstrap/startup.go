// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/academyhub/internal/app/system/timezones"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup loads the timezone catalog batches are validated against and
// seeds the sample academy when configured.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := timezones.Load(); err != nil {
		logger.Error("timezone catalog failed to load", zap.Error(err))
		return fmt.Errorf("load timezones: %w", err)
	}

	if appCfg.SeedDemoData {
		if err := deps.Service.Seed(ctx); err != nil {
			logger.Error("seeding demo data failed", zap.Error(err))
			return fmt.Errorf("seed demo data: %w", err)
		}
	}
	return nil
}
