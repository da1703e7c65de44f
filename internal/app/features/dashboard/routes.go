// internal/app/features/dashboard/routes.go
package dashboard

import "github.com/go-chi/chi/v5"

// MountRoutes registers the dashboard endpoints on the root router so /counts
// and /query/{collection} sit beside the entity mounts.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/counts", h.ServeCounts)
	r.Post("/query/{collection}", h.HandleQuery)
}
