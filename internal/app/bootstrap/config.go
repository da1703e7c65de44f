// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/academyhub/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for AcademyHub.
// Each key can be set in a config file (latency_min), the environment
// (ACADEMYHUB_LATENCY_MIN) or on the command line (--latency_min).
var appConfigKeys = []config.AppKey{
	{Name: "latency_min", Default: "200ms", Desc: "Lower bound of simulated store latency"},
	{Name: "latency_max", Default: "500ms", Desc: "Upper bound of simulated store latency"},

	{Name: "default_max_students", Default: 10, Desc: "Capacity for batches created without max_students"},
	{Name: "default_demo_duration", Default: "1h", Desc: "Demo length when scheduled_end is omitted"},
	{Name: "meeting_base_url", Default: "https://meet.academyhub.local/", Desc: "Prefix for generated demo meeting links"},
	{Name: "default_admin_id", Default: "", Desc: "Admin ObjectID stamped on demos booked without one (blank generates one per process)"},
	{Name: "default_page_size", Default: 10, Desc: "Rows per page when ?size= is absent"},
	{Name: "seed_demo_data", Default: true, Desc: "Seed a sample academy when the store is empty"},

	// MongoDB (audit history only)
	{Name: "mongo_uri", Default: "", Desc: "MongoDB connection URI (blank runs without a database)"},
	{Name: "mongo_database", Default: "academy_hub", Desc: "MongoDB database name"},

	// Audit logging
	{Name: "audit_log_lifecycle", Default: "all", Desc: "Lifecycle event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "metrics_enabled", Default: true, Desc: "Record Prometheus metrics and serve /metrics"},

	// MongoDB deadlines
	{Name: "timeout_ping", Default: "2s", Desc: "Deadline for MongoDB pings"},
	{Name: "timeout_audit", Default: "3s", Desc: "Deadline for one audit event write"},
	{Name: "timeout_query", Default: "10s", Desc: "Deadline for audit history reads"},
	{Name: "timeout_schema", Default: "30s", Desc: "Deadline for index creation at startup"},
}

// LoadConfig loads WAFFLE core config and the AcademyHub app config.
// Precedence is flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "ACADEMYHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		LatencyMin: appValues.Duration("latency_min", 200*time.Millisecond),
		LatencyMax: appValues.Duration("latency_max", 500*time.Millisecond),

		DefaultMaxStudents:  appValues.Int("default_max_students"),
		DefaultDemoDuration: appValues.Duration("default_demo_duration", time.Hour),
		MeetingBaseURL:      appValues.String("meeting_base_url"),
		DefaultAdminID:      strings.TrimSpace(appValues.String("default_admin_id")),
		DefaultPageSize:     appValues.Int("default_page_size"),
		SeedDemoData:        appValues.Bool("seed_demo_data"),

		MongoURI:      strings.TrimSpace(appValues.String("mongo_uri")),
		MongoDatabase: appValues.String("mongo_database"),

		AuditLogLifecycle: strings.ToLower(appValues.String("audit_log_lifecycle")),
		AuditLogAdmin:     strings.ToLower(appValues.String("audit_log_admin")),

		MetricsEnabled: appValues.Bool("metrics_enabled"),

		PingTimeout:   appValues.Duration("timeout_ping", 0),
		AuditTimeout:  appValues.Duration("timeout_audit", 0),
		QueryTimeout:  appValues.Duration("timeout_query", 0),
		SchemaTimeout: appValues.Duration("timeout_schema", 0),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig rejects settings that would make the service misbehave
// before any store is built.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	var problems []string

	if appCfg.LatencyMin < 0 || appCfg.LatencyMax < 0 {
		problems = append(problems, "latency_min and latency_max must not be negative")
	}
	if appCfg.LatencyMin > appCfg.LatencyMax {
		problems = append(problems, fmt.Sprintf("latency_min (%s) exceeds latency_max (%s)", appCfg.LatencyMin, appCfg.LatencyMax))
	}
	if appCfg.DefaultMaxStudents <= 0 {
		problems = append(problems, "default_max_students must be positive")
	}
	if appCfg.DefaultDemoDuration <= 0 {
		problems = append(problems, "default_demo_duration must be positive")
	}
	if appCfg.DefaultPageSize <= 0 {
		problems = append(problems, "default_page_size must be positive")
	}
	if appCfg.DefaultAdminID != "" {
		if _, err := primitive.ObjectIDFromHex(appCfg.DefaultAdminID); err != nil {
			problems = append(problems, "default_admin_id is not a valid ObjectID")
		}
	}
	if !auditlog.Valid(appCfg.AuditLogLifecycle) {
		problems = append(problems, "audit_log_lifecycle must be one of all, db, log, off")
	}
	if !auditlog.Valid(appCfg.AuditLogAdmin) {
		problems = append(problems, "audit_log_admin must be one of all, db, log, off")
	}

	if appCfg.MongoURI != "" {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			problems = append(problems, "invalid MongoDB URI: "+err.Error())
		}
		if strings.TrimSpace(appCfg.MongoDatabase) == "" {
			problems = append(problems, "mongo_database is required when mongo_uri is set")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
