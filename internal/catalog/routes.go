package catalog

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-pos/meridian-pos/internal/auth"
)

// MountRoutes attaches catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser())
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin))
		r.Post("/", h.create)
		r.Post("/{id}/adjust", h.adjust)
	})
}
