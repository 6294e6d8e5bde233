package cart

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-pos/meridian-pos/internal/auth"
	"github.com/meridian-pos/meridian-pos/internal/observability"
	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/store"
)

// ProductFinder resolves live products for staging; satisfied by the catalog
// service.
type ProductFinder interface {
	Get(productID string) (store.Product, error)
}

// CheckoutService commits a staged cart; satisfied by the sales service.
type CheckoutService interface {
	Checkout(c Cart, cashierID string) (store.Order, error)
}

// Handler exposes the session cart over HTTP.
type Handler struct {
	logger    *slog.Logger
	products  ProductFinder
	checkout  CheckoutService
	metrics   *observability.Metrics
	validator *validator.Validate
}

// NewHandler constructs a cart Handler. Metrics may be nil.
func NewHandler(logger *slog.Logger, products ProductFinder, checkout CheckoutService, metrics *observability.Metrics) *Handler {
	return &Handler{logger: logger, products: products, checkout: checkout, metrics: metrics, validator: validator.New()}
}

// MountRoutes attaches cart routes. Everything requires a signed-in cashier
// or admin; the cart is scoped to their session.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser())
		r.Get("/", h.show)
		r.Post("/items", h.addItem)
		r.Put("/items/{productID}", h.setQuantity)
		r.Delete("/", h.clear)
		r.Post("/checkout", h.doCheckout)
	})
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type setQuantityRequest struct {
	Qty int `json:"qty"`
}

type cartResponse struct {
	Lines []Line  `json:"lines"`
	Total float64 `json:"total"`
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	c := FromSession(shared.SessionFromContext(r.Context()))
	httpx.JSON(w, http.StatusOK, cartResponse{Lines: c.Lines, Total: c.Total()})
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	product, err := h.products.Get(req.ProductID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	c := FromSession(sess)
	c.AddLine(product)
	ToSession(sess, c)
	httpx.JSON(w, http.StatusOK, cartResponse{Lines: c.Lines, Total: c.Total()})
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}

	productID := chi.URLParam(r, "productID")
	stock := 0
	if product, err := h.products.Get(productID); err == nil {
		stock = product.Stock
	}

	sess := shared.SessionFromContext(r.Context())
	c := FromSession(sess)
	c.SetQuantity(productID, req.Qty, stock)
	ToSession(sess, c)
	httpx.JSON(w, http.StatusOK, cartResponse{Lines: c.Lines, Total: c.Total()})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	c := FromSession(sess)
	c.Clear()
	ToSession(sess, c)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) doCheckout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	c := FromSession(sess)

	order, err := h.checkout.Checkout(c, auth.CurrentUserID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	c.Clear()
	ToSession(sess, c)
	h.metrics.CountCheckout()
	h.logger.Info("checkout committed",
		slog.String("order_id", order.ID),
		slog.Int("lines", len(order.Items)),
		slog.Float64("total", order.Total))
	httpx.JSON(w, http.StatusCreated, order)
}
