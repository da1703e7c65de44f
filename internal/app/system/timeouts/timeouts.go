// Package timeouts holds the deadlines put on I/O that leaves the process.
// The in-memory stores always run to completion and take no deadline; these
// values only bound MongoDB work.
//
//   - Ping: health checks and the connect-time ping
//   - Audit: writing one audit event
//   - Query: reading audit history
//   - Schema: creating indexes at startup
package timeouts

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultAudit  = 3 * time.Second
	DefaultQuery  = 10 * time.Second
	DefaultSchema = 30 * time.Second
)

var (
	ping   atomic.Int64
	audit  atomic.Int64
	query  atomic.Int64
	schema atomic.Int64
)

func init() { Reset() }

func Ping() time.Duration   { return time.Duration(ping.Load()) }
func Audit() time.Duration  { return time.Duration(audit.Load()) }
func Query() time.Duration  { return time.Duration(query.Load()) }
func Schema() time.Duration { return time.Duration(schema.Load()) }

// Config overrides the defaults. Zero fields keep the current value.
type Config struct {
	Ping   time.Duration
	Audit  time.Duration
	Query  time.Duration
	Schema time.Duration
}

// Configure applies cfg and logs the effective values.
func Configure(cfg Config, logger *zap.Logger) {
	set := func(v *atomic.Int64, d time.Duration) {
		if d > 0 {
			v.Store(int64(d))
		}
	}
	set(&ping, cfg.Ping)
	set(&audit, cfg.Audit)
	set(&query, cfg.Query)
	set(&schema, cfg.Schema)

	if logger != nil {
		logger.Info("timeouts configured",
			zap.Duration("ping", Ping()),
			zap.Duration("audit", Audit()),
			zap.Duration("query", Query()),
			zap.Duration("schema", Schema()),
		)
	}
}

// Reset restores the defaults. Tests use it to undo Configure.
func Reset() {
	ping.Store(int64(DefaultPing))
	audit.Store(int64(DefaultAudit))
	query.Store(int64(DefaultQuery))
	schema.Store(int64(DefaultSchema))
}

func WithPing(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Ping())
}

func WithAudit(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Audit())
}

func WithQuery(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Query())
}

func WithSchema(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, Schema())
}
