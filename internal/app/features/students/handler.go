package students

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
	res, err := h.Svc.QueryStudents(r.Context(), tablequery.FromRequest(r, h.PageSize, academy.StudentFilters...))
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, res)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in models.NewStudent
	if err := formutil.DecodeJSON(w, r, &in); err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	st, err := h.Svc.CreateStudent(r.Context(), in)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusCreated, st)
}

func (h *Handler) ServeStudent(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	st, err := h.Svc.GetStudent(r.Context(), id)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, st)
}

// ServeDetail returns the student with their batch summary.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	v, err := h.Svc.StudentDetail(r.Context(), id)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, v)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	var p models.StudentPatch
	if err := formutil.DecodeJSON(w, r, &p); err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	st, err := h.Svc.UpdateStudent(r.Context(), id, p)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, st)
}

type statusRequest struct {
	Status models.StudentStatus `json:"status"`
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
	st, err := h.Svc.SetStudentStatus(r.Context(), id, req.Status)
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, st)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	if err := h.Svc.DeleteStudent(r.Context(), id); err != nil {
		apierrors.Write(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
