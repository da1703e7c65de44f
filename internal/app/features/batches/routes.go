// internal/app/features/batches/routes.go
package batches

import (
	"github.com/dalemusser/academyhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns the router mounted at /batches.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	r.Get("/{id}", h.ServeBatch)
	r.Get("/{id}/detail", h.ServeDetail)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	// MEMBERSHIP
	r.Post("/{id}/students", h.HandleAddStudent)
	r.Delete("/{id}/students/{studentID}", h.HandleRemoveStudent)
	r.Post("/{id}/coach", h.HandleAssignCoach)

	// STATUS
	r.Post("/{id}/activate", h.status(models.BatchActive))
	r.Post("/{id}/deactivate", h.status(models.BatchInactive))
	r.Post("/{id}/status", h.HandleTransition)

	return r
}
