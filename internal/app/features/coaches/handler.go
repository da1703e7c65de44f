package coaches

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

func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.QueryCoaches(r.Context(), tablequery.FromRequest(r, h.PageSize, academy.CoachFilters...))
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, res)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in models.NewCoach
	if err := formutil.DecodeJSON(w, r, &in); err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	c, err := h.Svc.CreateCoach(r.Context(), in)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusCreated, c)
}

func (h *Handler) ServeCoach(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	c, err := h.Svc.GetCoach(r.Context(), id)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, c)
}

// ServeDetail returns the coach with the batches they teach.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	v, err := h.Svc.CoachDetail(r.Context(), id)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, v)
}

// ServeBatches handles GET /coaches/{id}/batches.
func (h *Handler) ServeBatches(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	out, err := h.Svc.BatchesForCoach(r.Context(), id)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, out)
}

// ServeDemos handles GET /coaches/{id}/demos.
func (h *Handler) ServeDemos(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	out, err := h.Svc.DemosForCoach(r.Context(), id)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, out)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	var p models.CoachPatch
	if err := formutil.DecodeJSON(w, r, &p); err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	c, err := h.Svc.UpdateCoach(r.Context(), id, p)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, c)
}

type statusRequest struct {
	Status models.CoachStatus `json:"status"`
}

func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
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
	c, err := h.Svc.SetCoachStatus(r.Context(), id, req.Status)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, c)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	if err := h.Svc.DeleteCoach(r.Context(), id); err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
