// internal/app/features/coaches/routes.go
package coaches

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.ServeCoach)
	r.Get("/{id}/detail", h.ServeDetail)
	r.Patch("/{id}", h.HandleUpdate)
	r.Post("/{id}/status", h.HandleStatus)
	r.Delete("/{id}", h.HandleDelete)

	// RELATIONSHIPS
	r.Get("/{id}/batches", h.ServeBatches)
	r.Get("/{id}/demos", h.ServeDemos)
	return r
}
