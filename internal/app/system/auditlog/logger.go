// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"

	"github.com/dalemusser/academyhub/internal/app/store/audit"
	"github.com/dalemusser/academyhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Destination settings for a category.
const (
	All = "all" // MongoDB + zap
	DB  = "db"  // MongoDB only
	Log = "log" // zap only
	Off = "off"
)

// Config holds audit logging configuration per category.
type Config struct {
	// Lifecycle controls demo transitions, outcomes and batch status changes.
	Lifecycle string
	// Admin controls create/update/delete and membership changes.
	Admin string
}

// Valid reports whether s is a recognized destination setting.
func Valid(s string) bool {
	switch s {
	case All, DB, Log, Off:
		return true
	}
	return false
}

// Sink persists audit events. *audit.Store satisfies it.
type Sink interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger writes audit events to zap and, when a sink is configured, to
// MongoDB. A nil *Logger is a no-op.
type Logger struct {
	sink   Sink
	zapLog *zap.Logger
	config Config
}

// New creates a Logger. sink may be nil when no database is configured;
// "db" destinations are then dropped and "all" logs to zap only.
func New(sink Sink, zapLog *zap.Logger, config Config) *Logger {
	if zapLog == nil {
		zapLog = zap.NewNop()
	}
	return &Logger{sink: sink, zapLog: zapLog, config: config}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.String("entity", event.Entity),
		zap.String("entity_id", event.EntityID.Hex()),
		zap.Bool("success", event.Success),
	}
	if event.From != "" || event.To != "" {
		fields = append(fields, zap.String("from", event.From), zap.String("to", event.To))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an event according to its category's setting. Unknown
// categories are logged everywhere.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryLifecycle:
		setting = l.config.Lifecycle
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = All
	}
	if setting == "" {
		setting = All
	}
	if setting == Off {
		return
	}

	if setting == All || setting == Log {
		l.logToZap(event)
	}

	if (setting == All || setting == DB) && l.sink != nil {
		wctx, cancel := timeouts.WithAudit(context.WithoutCancel(ctx))
		defer cancel()
		if err := l.sink.Log(wctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Admin Events ---

// Admin logs a successful create/update/delete or membership change.
func (l *Logger) Admin(ctx context.Context, eventType, entity string, id primitive.ObjectID, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		Entity:    entity,
		EntityID:  id,
		Success:   true,
		Details:   details,
	})
}

// --- Lifecycle Events ---

// Transition logs a status change that was applied.
func (l *Logger) Transition(ctx context.Context, eventType, entity string, id primitive.ObjectID, from, to string, details map[string]string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryLifecycle,
		EventType: eventType,
		Entity:    entity,
		EntityID:  id,
		From:      from,
		To:        to,
		Success:   true,
		Details:   details,
	})
}

// TransitionRejected logs a status change that was refused.
func (l *Logger) TransitionRejected(ctx context.Context, eventType, entity string, id primitive.ObjectID, from, to, reason string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryLifecycle,
		EventType:     eventType,
		Entity:        entity,
		EntityID:      id,
		From:          from,
		To:            to,
		Success:       false,
		FailureReason: reason,
	})
}
