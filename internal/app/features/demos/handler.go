package demos

import (
	"net/http"

	"github.com/dalemusser/academyhub/internal/app/academy"
	apierrors "github.com/dalemusser/academyhub/internal/app/features/errors"
	"github.com/dalemusser/academyhub/internal/app/system/formutil"
	"github.com/dalemusser/academyhub/internal/app/system/paging"
	"github.com/dalemusser/academyhub/internal/app/system/tablequery"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the demo endpoints.
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

// ServeList handles GET /demos?q=&status=&coach_id=&sort=&dir=&page=&size=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := tablequery.FromRequest(r, h.PageSize, academy.DemoFilters...)
	res, err := h.Svc.QueryDemos(r.Context(), q)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, res)
}

// HandleCreate handles POST /demos.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in models.NewDemo
	if err := formutil.DecodeJSON(w, r, &in); err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	d, err := h.Svc.BookDemo(r.Context(), in)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusCreated, d)
}

// ServeDemo handles GET /demos/{id}.
func (h *Handler) ServeDemo(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	d, err := h.Svc.GetDemo(r.Context(), id)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, d)
}

// ServeDetail handles GET /demos/{id}/detail: the demo with its coach.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	v, err := h.Svc.DemoDetail(r.Context(), id)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, v)
}

// HandleUpdate handles PATCH /demos/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	var p models.DemoPatch
	if err := formutil.DecodeJSON(w, r, &p); err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	d, err := h.Svc.UpdateDemo(r.Context(), id, p)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, d)
}

type statusRequest struct {
	Status models.DemoStatus `json:"status"`
}

// HandleTransition handles POST /demos/{id}/status {"status": "..."}.
func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	var req statusRequest
	if err := formutil.DecodeJSON(w, r, &req); err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	d, err := h.Svc.TransitionDemo(r.Context(), id, req.Status)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, d)
}

// HandleOutcome handles POST /demos/{id}/outcome. The body is an outcome
// patch; "status" may be omitted to record metadata only.
func (h *Handler) HandleOutcome(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	var p models.OutcomePatch
	if err := formutil.DecodeJSON(w, r, &p); err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	d, err := h.Svc.UpdateDemoOutcome(r.Context(), id, p)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, d)
}

// HandleDelete handles DELETE /demos/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	if err := h.Svc.DeleteDemo(r.Context(), id); err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
