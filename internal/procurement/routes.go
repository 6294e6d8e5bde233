package procurement

import (
	"github.com/go-chi/chi/v5"

	"github.com/meridian-pos/meridian-pos/internal/auth"
)

// MountRoutes attaches purchase order routes. Procurement is an admin-only
// surface.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin))
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
		r.Post("/", h.create)
		r.Post("/{id}/receive", h.receive)
		r.Post("/suggest", h.suggest)
	})
}
