package sales

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-pos/meridian-pos/internal/auth"
	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
)

// Handler exposes the order ledger over HTTP. Checkout itself is mounted
// under the cart routes, where the staged cart lives.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a sales Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser())
		r.Get("/", h.list)
		r.Get("/{id}", h.show)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.List())
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}
