// Package metrics exports Prometheus counters and histograms for service
// operations and HTTP requests. A nil *Recorder records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "academyhub"

type Recorder struct {
	gatherer prometheus.Gatherer

	opsTotal     *prometheus.CounterVec
	opDuration   *prometheus.HistogramVec
	httpTotal    *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	records      *prometheus.GaugeVec
}

// New registers the collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return newWith(reg, reg)
}

func newWith(reg prometheus.Registerer, g prometheus.Gatherer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		gatherer: g,
		opsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Service operations by entity, operation and error kind.",
			},
			[]string{"entity", "op", "result"},
		),
		opDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Service operation latency, including simulated I/O.",
				Buckets:   []float64{.001, .01, .05, .1, .2, .3, .4, .5, .75, 1, 2},
			},
			[]string{"entity", "op"},
		),
		httpTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status code.",
			},
			[]string{"method", "route", "status_code"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		records: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "records",
				Help:      "Stored records by entity and status.",
			},
			[]string{"entity", "status"},
		),
	}
}

// Observe records one finished operation. Callers defer it with the time the
// operation began and its final error.
func (r *Recorder) Observe(entity, op string, start time.Time, err error) {
	if r == nil {
		return
	}
	r.opsTotal.WithLabelValues(entity, op, storeerr.Kind(err)).Inc()
	r.opDuration.WithLabelValues(entity, op).Observe(time.Since(start).Seconds())
}

// SetRecords publishes the per-status record counts for an entity.
func (r *Recorder) SetRecords(entity string, byStatus map[string]int) {
	if r == nil {
		return
	}
	for status, n := range byStatus {
		r.records.WithLabelValues(entity, status).Set(float64(n))
	}
}

// Middleware records request counts and latency by chi route pattern so
// identities in paths do not explode label cardinality.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.httpTotal.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
		r.httpDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
