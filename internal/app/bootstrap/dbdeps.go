// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/academyhub/internal/app/academy"
	"github.com/dalemusser/academyhub/internal/app/store/audit"
	"github.com/dalemusser/academyhub/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the back ends built in ConnectDB. The Mongo fields and
// AuditStore are nil when no mongo_uri is configured; Metrics is nil when
// metrics are disabled.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	AuditStore    *audit.Store

	Service *academy.Service
	Metrics *metrics.Recorder
}
