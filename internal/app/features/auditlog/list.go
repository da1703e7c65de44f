// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"time"

	apierrors "github.com/dalemusser/academyhub/internal/app/features/errors"
	"github.com/dalemusser/academyhub/internal/app/store/audit"
	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/app/system/normalize"
	"github.com/dalemusser/academyhub/internal/app/system/paging"
	"github.com/dalemusser/academyhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const pageSize = 50

type listResponse struct {
	Events []audit.Event `json:"events"`
	Range  paging.Range  `json:"range"`
}

// ServeList handles GET /audit?entity=&entity_id=&category=&event_type=&start_date=&end_date=&page=&size=.
// Dates are YYYY-MM-DD in UTC; end_date is inclusive.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if h.Events == nil {
		apierrors.JSON(w, http.StatusServiceUnavailable, apierrors.Body{
			Error:   "unavailable",
			Message: "audit history needs a database; set mongo_uri",
		})
		return
	}

	filter, index, size, err := parseFilter(r)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithQuery(r.Context())
	defer cancel()

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		h.Log.Error("failed to query audit events", zap.Error(err))
		apierrors.Write(w, h.Log, err)
		return
	}
	total, err := h.Events.CountByFilter(ctx, filter)
	if err != nil {
		h.Log.Error("failed to count audit events", zap.Error(err))
		apierrors.Write(w, h.Log, err)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}

	apierrors.JSON(w, http.StatusOK, listResponse{
		Events: events,
		Range:  paging.ComputeRange(index, size, len(events), int(total)),
	})
}

func parseFilter(r *http.Request) (audit.QueryFilter, int, int, error) {
	var fields []storeerr.FieldError
	filter := audit.QueryFilter{
		Entity:    normalize.QueryParam(query.Get(r, "entity")),
		Category:  normalize.QueryParam(query.Get(r, "category")),
		EventType: normalize.QueryParam(query.Get(r, "event_type")),
	}

	if raw := normalize.QueryParam(query.Get(r, "entity_id")); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			fields = append(fields, storeerr.FieldError{Field: "entity_id", Message: "not a valid id"})
		} else {
			filter.EntityID = &id
		}
	}
	if raw := normalize.QueryParam(query.Get(r, "start_date")); raw != "" {
		if t, err := time.Parse(time.DateOnly, raw); err == nil {
			filter.StartTime = &t
		} else {
			fields = append(fields, storeerr.FieldError{Field: "start_date", Message: "use YYYY-MM-DD"})
		}
	}
	if raw := normalize.QueryParam(query.Get(r, "end_date")); raw != "" {
		if t, err := time.Parse(time.DateOnly, raw); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			filter.EndTime = &end
		} else {
			fields = append(fields, storeerr.FieldError{Field: "end_date", Message: "use YYYY-MM-DD"})
		}
	}

	index, size := paging.ParsePage(r, pageSize)
	if index < 0 {
		fields = append(fields, storeerr.FieldError{Field: "page", Message: "page index must not be negative"})
	}
	if size <= 0 {
		fields = append(fields, storeerr.FieldError{Field: "size", Message: "page size must be positive"})
	}
	if len(fields) > 0 {
		return filter, 0, 0, storeerr.Invalid("audit", "query", fields...)
	}

	filter.Limit = int64(size)
	filter.Offset = int64(index) * int64(size)
	return filter, index, size, nil
}
