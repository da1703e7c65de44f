// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/academyhub/internal/app/academy"
	"github.com/dalemusser/academyhub/internal/app/store/audit"
	"github.com/dalemusser/academyhub/internal/app/system/auditlog"
	"github.com/dalemusser/academyhub/internal/app/system/latency"
	"github.com/dalemusser/academyhub/internal/app/system/metrics"
	"github.com/dalemusser/academyhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB connects the optional MongoDB audit sink and builds the
// in-memory academy Service on top of it.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.PingTimeout,
		Audit:  appCfg.AuditTimeout,
		Query:  appCfg.QueryTimeout,
		Schema: appCfg.SchemaTimeout,
	}, logger)

	var deps DBDeps

	if appCfg.MongoURI != "" {
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(appCfg.MongoURI))
		if err != nil {
			return DBDeps{}, fmt.Errorf("connect MongoDB: %w", err)
		}
		pctx, cancel := timeouts.WithPing(ctx)
		defer cancel()
		if err := client.Ping(pctx, readpref.Primary()); err != nil {
			_ = client.Disconnect(context.WithoutCancel(ctx))
			return DBDeps{}, fmt.Errorf("ping MongoDB: %w", err)
		}
		deps.MongoClient = client
		deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
		deps.AuditStore = audit.New(deps.MongoDatabase)
		logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	} else {
		logger.Info("no mongo_uri configured; audit events go to the log only")
	}

	if appCfg.MetricsEnabled {
		deps.Metrics = metrics.New()
	}

	deps.Service = academy.New(serviceOptions(appCfg, deps, logger))
	return deps, nil
}

func serviceOptions(appCfg AppConfig, deps DBDeps, logger *zap.Logger) academy.Options {
	delay := latency.None()
	if appCfg.LatencyMax > 0 {
		delay = latency.Uniform(appCfg.LatencyMin, appCfg.LatencyMax)
	}

	var adminID primitive.ObjectID
	if appCfg.DefaultAdminID != "" {
		// ValidateConfig has already rejected malformed ids.
		adminID, _ = primitive.ObjectIDFromHex(appCfg.DefaultAdminID)
	}

	var sink auditlog.Sink
	if deps.AuditStore != nil {
		sink = deps.AuditStore
	}

	return academy.Options{
		Delay:          delay,
		DemoDuration:   appCfg.DefaultDemoDuration,
		MeetingBaseURL: appCfg.MeetingBaseURL,
		MaxStudents:    appCfg.DefaultMaxStudents,
		DefaultAdminID: adminID,
		Audit: auditlog.New(sink, logger, auditlog.Config{
			Lifecycle: appCfg.AuditLogLifecycle,
			Admin:     appCfg.AuditLogAdmin,
		}),
		Metrics: deps.Metrics,
		Logger:  logger,
	}
}

// EnsureSchema creates the audit collection, validator and indexes when
// MongoDB is configured.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.AuditStore == nil {
		return nil
	}
	sctx, cancel := timeouts.WithSchema(ctx)
	defer cancel()
	if err := deps.AuditStore.EnsureSchema(sctx); err != nil {
		logger.Error("audit schema setup failed", zap.Error(err))
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	logger.Info("audit schema ensured")
	return nil
}
