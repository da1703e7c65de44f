// Package academy is the call/return surface the dashboards use. A Service
// owns one store per entity, checks cross-entity references before writes,
// keeps batch membership and each student's batch reference in step, and
// records audit events and operation metrics for every call.
package academy

import (
	"sync"
	"time"

	batchstore "github.com/dalemusser/academyhub/internal/app/store/batches"
	coachstore "github.com/dalemusser/academyhub/internal/app/store/coaches"
	demostore "github.com/dalemusser/academyhub/internal/app/store/demos"
	metricsstore "github.com/dalemusser/academyhub/internal/app/store/metrics"
	"github.com/dalemusser/academyhub/internal/app/store/queries/resolver"
	studentstore "github.com/dalemusser/academyhub/internal/app/store/students"
	"github.com/dalemusser/academyhub/internal/app/system/auditlog"
	"github.com/dalemusser/academyhub/internal/app/system/latency"
	"github.com/dalemusser/academyhub/internal/app/system/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Options configures a Service. The zero value is usable: no latency, one
// hour demos, ten seat batches, no audit sink, no metrics.
type Options struct {
	Delay          latency.Hook
	DemoDuration   time.Duration
	MeetingBaseURL string
	MaxStudents    int

	// DefaultAdminID is stamped on demos booked without an admin. When zero
	// a process-wide identity is generated once.
	DefaultAdminID primitive.ObjectID

	Audit   *auditlog.Logger
	Metrics *metrics.Recorder
	Logger  *zap.Logger
	Now     func() time.Time
}

type Service struct {
	demos    *demostore.Store
	batches  *batchstore.Store
	students *studentstore.Store
	coaches  *coachstore.Store
	resolve  *resolver.Resolver

	audit        *auditlog.Logger
	metrics      *metrics.Recorder
	log          *zap.Logger
	defaultAdmin primitive.ObjectID

	// membership serializes writes that touch a batch's student list and
	// the students' batch reference together. Writes that add or drop a
	// coach reference (batch or demo coach, coach delete) take it too.
	membership sync.Mutex
}

func New(opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	admin := opts.DefaultAdminID
	if admin.IsZero() {
		admin = primitive.NewObjectID()
	}

	s := &Service{
		demos: demostore.New(demostore.Options{
			Duration:       opts.DemoDuration,
			MeetingBaseURL: opts.MeetingBaseURL,
			Delay:          opts.Delay,
			Now:            opts.Now,
		}),
		batches: batchstore.New(batchstore.Options{
			MaxStudents: opts.MaxStudents,
			Delay:       opts.Delay,
			Now:         opts.Now,
		}),
		students:     studentstore.New(opts.Delay),
		coaches:      coachstore.New(opts.Delay),
		audit:        opts.Audit,
		metrics:      opts.Metrics,
		log:          log,
		defaultAdmin: admin,
	}
	s.resolve = resolver.New(s.demos, s.batches, s.students, s.coaches, log)
	return s
}

// DefaultAdminID is the admin stamped on demos booked without one.
func (s *Service) DefaultAdminID() primitive.ObjectID { return s.defaultAdmin }

// Counts returns the dashboard totals and refreshes the record gauges.
func (s *Service) Counts() metricsstore.Counts {
	c := metricsstore.FetchDashboardCounts(s.demos, s.batches, s.students, s.coaches)
	s.metrics.SetRecords("demo", c.DemosByStatus)
	s.metrics.SetRecords("batch", c.BatchesByStatus)
	s.metrics.SetRecords("student", map[string]int{
		"ACTIVE":   c.ActiveStudents,
		"INACTIVE": c.Students - c.ActiveStudents,
	})
	s.metrics.SetRecords("coach", map[string]int{
		"ACTIVE":   c.ActiveCoaches,
		"INACTIVE": c.Coaches - c.ActiveCoaches,
	})
	return c
}

// observe is deferred by every public operation with a pointer to its
// named error result.
func (s *Service) observe(entity, op string, start time.Time, err *error) {
	s.metrics.Observe(entity, op, start, *err)
}

func idPtr(id primitive.ObjectID) *primitive.ObjectID { return &id }
