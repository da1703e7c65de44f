package batches

import (
	"net/http"

	"github.com/dalemusser/academyhub/internal/app/academy"
	apierrors "github.com/dalemusser/academyhub/internal/app/features/errors"
	"github.com/dalemusser/academyhub/internal/app/system/formutil"
	"github.com/dalemusser/academyhub/internal/app/system/paging"
	"github.com/dalemusser/academyhub/internal/app/system/tablequery"
	"github.com/dalemusser/academyhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the batch endpoints.
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

func (h *Handler) fail(w http.ResponseWriter, err error) {
	apierrors.Write(w, h.Log, err)
}

// ServeList handles GET /batches?q=&status=&coach_id=&level=&timezone=&sort=&dir=&page=&size=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	res, err := h.Svc.QueryBatches(r.Context(), tablequery.FromRequest(r, h.PageSize, academy.BatchFilters...))
	if err != nil {
		h.fail(w, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, res)
}

// HandleCreate handles POST /batches.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in models.NewBatch
	if err := formutil.DecodeJSON(w, r, &in); err != nil {
		h.fail(w, err)
		return
	}
	b, err := h.Svc.CreateBatch(r.Context(), in)
	if err != nil {
		h.fail(w, err)
		return
	}
	apierrors.JSON(w, http.StatusCreated, b)
}

// ServeBatch handles GET /batches/{id}.
func (h *Handler) ServeBatch(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		h.fail(w, err)
		return
	}
	b, err := h.Svc.GetBatch(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, b)
}

// ServeDetail handles GET /batches/{id}/detail: the batch with its coach
// and student records embedded.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		h.fail(w, err)
		return
	}
	v, err := h.Svc.BatchDetail(r.Context(), id)
	if err != nil {
		h.fail(w, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, v)
}

// HandleUpdate handles PATCH /batches/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		h.fail(w, err)
		return
	}
	var p models.BatchPatch
	if err := formutil.DecodeJSON(w, r, &p); err != nil {
		h.fail(w, err)
		return
	}
	b, err := h.Svc.UpdateBatch(r.Context(), id, p)
	if err != nil {
		h.fail(w, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, b)
}

// HandleDelete handles DELETE /batches/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := h.Svc.DeleteBatch(r.Context(), id); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addStudentRequest struct {
	StudentID primitive.ObjectID `json:"student_id"`
}

// HandleAddStudent handles POST /batches/{id}/students {"student_id": "..."}.
func (h *Handler) HandleAddStudent(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		h.fail(w, err)
		return
	}
	var req addStudentRequest
	if err := formutil.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}
	if req.StudentID.IsZero() {
		apierrors.BadRequest(w, "student_id is required")
		return
	}
	b, err := h.Svc.AddStudent(r.Context(), id, req.StudentID)
	if err != nil {
		h.fail(w, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, b)
}

// HandleRemoveStudent handles DELETE /batches/{id}/students/{studentID}.
func (h *Handler) HandleRemoveStudent(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		h.fail(w, err)
		return
	}
	sid, err := formutil.PathID(r, "studentID")
	if err != nil {
		h.fail(w, err)
		return
	}
	b, err := h.Svc.RemoveStudent(r.Context(), id, sid)
	if err != nil {
		h.fail(w, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, b)
}

type coachRequest struct {
	CoachID *primitive.ObjectID `json:"coach_id"`
}

// HandleAssignCoach handles POST /batches/{id}/coach {"coach_id": "..."};
// a null coach_id unassigns.
func (h *Handler) HandleAssignCoach(w http.ResponseWriter, r *http.Request) {
	id, err := formutil.PathID(r, "id")
	if err != nil {
		h.fail(w, err)
		return
	}
	var req coachRequest
	if err := formutil.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}
	b, err := h.Svc.AssignCoach(r.Context(), id, req.CoachID)
	if err != nil {
		h.fail(w, err)
		return
	}
	apierrors.JSON(w, http.StatusOK, b)
}

// status returns a handler that requests the fixed administrative status.
func (h *Handler) status(to models.BatchStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := formutil.PathID(r, "id")
		if err != nil {
			h.fail(w, err)
			return
		}
		b, err := h.Svc.TransitionBatch(r.Context(), id, to)
		if err != nil {
			h.fail(w, err)
			return
		}
		apierrors.JSON(w, http.StatusOK, b)
	}
}

type statusRequest struct {
	Status models.BatchStatus `json:"status"`
}

// HandleTransition handles POST /batches/{id}/status {"status": "..."}.
func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := formutil.DecodeJSON(w, r, &req); err != nil {
		h.fail(w, err)
		return
	}
	h.status(req.Status)(w, r)
}
