// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/academyhub/internal/app/academy"
	apierrors "github.com/dalemusser/academyhub/internal/app/features/errors"
	"github.com/dalemusser/academyhub/internal/app/system/formutil"
	"github.com/dalemusser/academyhub/internal/app/system/normalize"
	"github.com/dalemusser/academyhub/internal/app/system/paging"
	"github.com/dalemusser/academyhub/internal/app/system/tablequery"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the stat cards and the generic collection query.
type Handler struct {
	Svc      *academy.Service
	PageSize int
	Log      *zap.Logger
}

func NewHandler(svc *academy.Service, pageSize int, logger *zap.Logger) *Handler {
	if pageSize <= 0 {
		pageSize = paging.DefaultPageSize
	}
	return &Handler{Svc: svc, PageSize: pageSize, Log: logger}
}

// ServeCounts handles GET /counts.
func (h *Handler) ServeCounts(w http.ResponseWriter, r *http.Request) {
	apierrors.JSON(w, http.StatusOK, h.Svc.Counts())
}

// HandleQuery handles POST /query/{collection} with a JSON query body:
//
//	{"search":"asha","filters":{"status":"BOOKED"},"sort":{"field":"created_at","direction":"desc"},"page":{"index":0,"size":10}}
//
// An empty body queries the first page with no search, filter or sort.
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	collection := normalize.QueryParam(chi.URLParam(r, "collection"))

	q := tablequery.Query{Page: tablequery.Page{Size: h.PageSize}}
	if r.ContentLength != 0 {
		if err := formutil.DecodeJSON(w, r, &q); err != nil {
			apierrors.Write(w, h.Log, err)
			return
		}
	}
	if q.Page.Size > paging.MaxPageSize {
		q.Page.Size = paging.MaxPageSize
	}

	res, err := h.Svc.Query(r.Context(), collection, q)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, res)
}
