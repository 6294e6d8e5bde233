package suppliers

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-pos/meridian-pos/internal/auth"
)

// MountRoutes attaches supplier registry routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser())
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin))
		r.Post("/", h.create)
		r.Put("/{id}", h.replace)
	})
}
