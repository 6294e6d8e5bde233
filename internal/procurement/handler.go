package procurement

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-pos/meridian-pos/internal/auth"
	"github.com/meridian-pos/meridian-pos/internal/platform/httpx"
	"github.com/meridian-pos/meridian-pos/internal/store"
)

// Handler exposes purchase orders over HTTP.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a procurement Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

type createPORequest struct {
	SupplierID string `json:"supplier_id" validate:"required"`
	ProductID  string `json:"product_id" validate:"required"`
	Qty        int    `json:"qty" validate:"required,gt=0"`
	// UnitCost arrives as free text; negative or unparseable input is
	// coerced to zero.
	UnitCost string `json:"unit_cost"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.List())
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	po, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, po)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createPORequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	unitCost, err := strconv.ParseFloat(req.UnitCost, 64)
	if err != nil {
		unitCost = 0
	}

	po, err := h.service.CreateManual(req.SupplierID, req.ProductID, req.Qty, unitCost, auth.CurrentUserID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("purchase order created",
		slog.String("id", po.ID),
		slog.String("product_id", po.ProductID),
		slog.Int("qty", po.Qty))
	httpx.JSON(w, http.StatusCreated, po)
}

func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	po, err := h.service.Receive(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, po)
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.SuggestReorders(auth.CurrentUserID(r))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if created == nil {
		created = []store.PurchaseOrder{}
	}
	httpx.JSON(w, http.StatusOK, created)
}
