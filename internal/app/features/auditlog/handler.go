// internal/app/features/auditlog/handler.go
package auditlog

import (
	"context"

	"github.com/dalemusser/academyhub/internal/app/store/audit"
	"go.uber.org/zap"
)

// EventReader is the read side of the audit store.
type EventReader interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]audit.Event, error)
	CountByFilter(ctx context.Context, filter audit.QueryFilter) (int64, error)
}

type Handler struct {
	Events EventReader // nil when no database is configured
	Log    *zap.Logger
}

// NewHandler constructs an audit history handler. events may be nil.
func NewHandler(events EventReader, logger *zap.Logger) *Handler {
	return &Handler{Events: events, Log: logger}
}
