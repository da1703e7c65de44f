// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	auditlogfeature "github.com/dalemusser/academyhub/internal/app/features/auditlog"
	batchesfeature "github.com/dalemusser/academyhub/internal/app/features/batches"
	coachesfeature "github.com/dalemusser/academyhub/internal/app/features/coaches"
	dashboardfeature "github.com/dalemusser/academyhub/internal/app/features/dashboard"
	demosfeature "github.com/dalemusser/academyhub/internal/app/features/demos"
	errorsfeature "github.com/dalemusser/academyhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/academyhub/internal/app/features/health"
	studentsfeature "github.com/dalemusser/academyhub/internal/app/features/students"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root router. WAFFLE calls it after ConnectDB,
// EnsureSchema and Startup have run.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	return newRouter(appCfg, deps, logger), nil
}

func newRouter(appCfg AppConfig, deps DBDeps, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(deps.Metrics.Middleware)

	errorsHandler := errorsfeature.NewHandler(logger)
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Probes and scrape target
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, deps.Service, logger)))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	// Entity surfaces
	pageSize := appCfg.DefaultPageSize
	r.Mount("/demos", demosfeature.Routes(demosfeature.NewHandler(deps.Service, pageSize, logger)))
	r.Mount("/batches", batchesfeature.Routes(batchesfeature.NewHandler(deps.Service, pageSize, logger)))
	r.Mount("/students", studentsfeature.Routes(studentsfeature.NewHandler(deps.Service, pageSize, logger)))
	r.Mount("/coaches", coachesfeature.Routes(coachesfeature.NewHandler(deps.Service, pageSize, logger)))

	// Stat cards and the generic collection query
	dashboardfeature.MountRoutes(r, dashboardfeature.NewHandler(deps.Service, pageSize, logger))

	// Audit history (MongoDB only)
	var events auditlogfeature.EventReader
	if deps.AuditStore != nil {
		events = deps.AuditStore
	}
	r.Mount("/audit", auditlogfeature.Routes(auditlogfeature.NewHandler(events, logger)))

	return r
}
