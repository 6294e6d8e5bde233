package export

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-pos/meridian-pos/internal/auth"
	"github.com/meridian-pos/meridian-pos/internal/store"
)

// Handler streams CSV exports of the engine collections.
type Handler struct {
	logger *slog.Logger
	store  *store.Store
}

// NewHandler constructs an export Handler.
func NewHandler(logger *slog.Logger, st *store.Store) *Handler {
	return &Handler{logger: logger, store: st}
}

// MountRoutes attaches export routes. Exports are an admin-only surface.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin))
		r.Get("/products.csv", h.products)
		r.Get("/orders.csv", h.orders)
		r.Get("/purchase-orders.csv", h.purchaseOrders)
	})
}

func (h *Handler) products(w http.ResponseWriter, r *http.Request) {
	h.stream(w, "products.csv", WriteProducts)
}

func (h *Handler) orders(w http.ResponseWriter, r *http.Request) {
	h.stream(w, "orders.csv", WriteOrders)
}

func (h *Handler) purchaseOrders(w http.ResponseWriter, r *http.Request) {
	h.stream(w, "purchase-orders.csv", WritePurchaseOrders)
}

func (h *Handler) stream(w http.ResponseWriter, filename string, write func(io.Writer, store.State) error) {
	state := h.store.Current()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := write(w, state); err != nil {
		h.logger.Error("csv export", slog.String("file", filename), slog.Any("error", err))
	}
}
