// internal/app/features/demos/routes.go
package demos

import "github.com/go-chi/chi/v5"

// Routes returns the router mounted at /demos.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	r.Get("/{id}", h.ServeDemo)
	r.Get("/{id}/detail", h.ServeDetail)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	// LIFECYCLE
	r.Post("/{id}/status", h.HandleTransition)
	r.Post("/{id}/outcome", h.HandleOutcome)

	return r
}
