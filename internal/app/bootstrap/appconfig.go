// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds AcademyHub configuration that WAFFLE's CoreConfig does not
// cover. Values come from config files, ACADEMYHUB_* environment variables
// and flags (see LoadConfig).
type AppConfig struct {
	// Simulated store latency. Every store call waits a uniform random
	// duration in [LatencyMin, LatencyMax]; both zero disables the wait.
	LatencyMin time.Duration
	LatencyMax time.Duration

	// Domain defaults
	DefaultMaxStudents  int           // capacity for batches created without one
	DefaultDemoDuration time.Duration // scheduled_end offset when a demo omits it
	MeetingBaseURL      string        // prefix for generated meeting links
	DefaultAdminID      string        // hex ObjectID stamped on demos booked without an admin
	DefaultPageSize     int           // list endpoints without ?size=
	SeedDemoData        bool          // populate a sample academy on an empty store

	// Optional MongoDB audit sink. Blank URI runs without a database.
	MongoURI      string
	MongoDatabase string

	// Audit destinations per category: "all", "db", "log" or "off".
	AuditLogLifecycle string
	AuditLogAdmin     string

	MetricsEnabled bool

	// Deadlines for MongoDB work. Zero keeps the built-in default.
	PingTimeout   time.Duration
	AuditTimeout  time.Duration
	QueryTimeout  time.Duration
	SchemaTimeout time.Duration
}
